// Package guard enforces access control as composable chi middleware.
//
// Each guard evaluates one question and returns a typed Decision:
// authentication, role permission, super admin, tenant scope, or
// module access. Non-allow decisions are written as a fixed JSON body
// with a stable code clients branch on; the handler never runs. Every
// guard fails closed: a missing dependency, an unloadable tenant, or
// an unknown input denies rather than allows.
//
// Ordering matters. Actor extraction comes first, then authentication,
// then cheap role checks, then scope, then module access (country
// rollout before tier). Scope violations answer 404, not 403, so
// responses do not reveal that an out-of-scope resource exists.
//
//	chain := guard.NewChain(
//		guard.WithRegistry(registry),
//		guard.WithRollout(policies),
//		guard.WithEntitlements(svc),
//		guard.WithRecorder(recorder),
//		guard.WithTenantLoader(loadTenant),
//	)
//
//	r := chi.NewRouter()
//	r.Use(guard.ActorMiddleware(secret))
//	r.Route("/tenants/{tenantID}", func(r chi.Router) {
//		r.Use(chain.RequireAuth)
//		r.Use(chain.EnforceTenantScope(resolveTarget))
//		r.With(chain.RequireModuleAccess("pos", resolveTarget)).
//			Get("/pos", posHandler)
//	})
package guard
