package guard

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/google/uuid"

	"github.com/hiddenbraintechnologies-sys/Enterprise-Tenant-Manager-sub003/pkg/audit"
	"github.com/hiddenbraintechnologies-sys/Enterprise-Tenant-Manager-sub003/pkg/entitlement"
	"github.com/hiddenbraintechnologies-sys/Enterprise-Tenant-Manager-sub003/pkg/permission"
	"github.com/hiddenbraintechnologies-sys/Enterprise-Tenant-Manager-sub003/pkg/rollout"
	"github.com/hiddenbraintechnologies-sys/Enterprise-Tenant-Manager-sub003/pkg/scope"
)

// TargetResolver extracts the target tenant identity from a request,
// typically from a chi URL parameter plus a tenant directory lookup.
// ok is false when the request carries no tenant target.
type TargetResolver func(r *http.Request) (tenantID uuid.UUID, countryCode string, ok bool)

// TenantLoader fetches the tenant's current entitlement state. Guards
// call it per request rather than caching the tier on the session, so a
// downgrade takes effect on the next request, not the next login.
type TenantLoader func(ctx context.Context, tenantID uuid.UUID) (entitlement.Tenant, error)

// Chain bundles the guard dependencies so route files compose
// middlewares without re-threading registries and stores everywhere.
// Every guard fails closed when its dependency is missing.
type Chain struct {
	registry     *permission.Registry
	policies     rollout.Provider
	entitlements *entitlement.Service
	recorder     *audit.Recorder
	tenants      TenantLoader
	upgradeURL   UpgradeURLFunc
	log          *slog.Logger
}

// Option configures a Chain.
type Option func(*Chain)

// WithRegistry sets the permission registry.
func WithRegistry(reg *permission.Registry) Option {
	return func(c *Chain) { c.registry = reg }
}

// WithRollout sets the country rollout policy provider.
func WithRollout(p rollout.Provider) Option {
	return func(c *Chain) { c.policies = p }
}

// WithEntitlements sets the entitlement service.
func WithEntitlements(svc *entitlement.Service) Option {
	return func(c *Chain) { c.entitlements = svc }
}

// WithRecorder sets the audit recorder for denial events.
func WithRecorder(rec *audit.Recorder) Option {
	return func(c *Chain) { c.recorder = rec }
}

// WithTenantLoader sets the per-request tenant state loader.
func WithTenantLoader(load TenantLoader) Option {
	return func(c *Chain) { c.tenants = load }
}

// WithUpgradeURL sets the upgrade link builder for PAYMENT_REQUIRED
// denials.
func WithUpgradeURL(fn UpgradeURLFunc) Option {
	return func(c *Chain) { c.upgradeURL = fn }
}

// WithLogger sets the logger. Defaults to slog.Default().
func WithLogger(log *slog.Logger) Option {
	return func(c *Chain) { c.log = log }
}

// NewChain creates a guard chain.
func NewChain(opts ...Option) *Chain {
	c := &Chain{log: slog.Default()}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// RequireAuth denies requests that carry no authenticated actor. It
// must sit before every other guard in the chain.
func (c *Chain) RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, ok := ActorFromContext(r.Context()); !ok {
			WriteDecision(w, Deny(CodeUnauthorized, "Authentication required"))
			return
		}
		next.ServeHTTP(w, r)
	})
}

// RequirePermission admits only actors whose role holds the permission.
func (c *Chain) RequirePermission(perm permission.Permission) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			actor, ok := ActorFromContext(r.Context())
			if !ok {
				WriteDecision(w, Deny(CodeUnauthorized, "Authentication required"))
				return
			}
			if d := CheckPermission(c.registry, actor, perm); !d.Allowed() {
				c.denied(r, actor, "permission:"+string(perm), d)
				WriteDecision(w, d)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// RequireSuperAdmin admits only the super admin role. Permission sets
// do not satisfy it.
func (c *Chain) RequireSuperAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		actor, ok := ActorFromContext(r.Context())
		if !ok {
			WriteDecision(w, Deny(CodeUnauthorized, "Authentication required"))
			return
		}
		if d := CheckSuperAdmin(actor); !d.Allowed() {
			c.denied(r, actor, "super_admin", d)
			WriteDecision(w, d)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// EnforceTenantScope resolves the request's target tenant and checks it
// against the actor's scope. Out-of-scope targets answer 404; requests
// with no tenant target pass through untouched.
func (c *Chain) EnforceTenantScope(resolve TargetResolver) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			actor, ok := ActorFromContext(r.Context())
			if !ok {
				WriteDecision(w, Deny(CodeUnauthorized, "Authentication required"))
				return
			}
			tenantID, country, hasTarget := resolve(r)
			if !hasTarget {
				next.ServeHTTP(w, r)
				return
			}
			if d := CheckTenantScope(actor, tenantID, country); !d.Allowed() {
				c.deniedTarget(r, actor, "tenant_scope", "tenant", tenantID.String(), country, d)
				WriteDecision(w, d)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// RequireModuleAccess gates a module's routes behind the country
// rollout policy and the tenant's entitlement, in that order. The
// tenant's state is loaded fresh per request.
func (c *Chain) RequireModuleAccess(moduleID entitlement.ModuleID, resolve TargetResolver) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			actor, ok := ActorFromContext(r.Context())
			if !ok {
				WriteDecision(w, Deny(CodeUnauthorized, "Authentication required"))
				return
			}
			tenantID, _, hasTarget := resolve(r)
			if !hasTarget || c.tenants == nil {
				WriteDecision(w, Deny(CodeForbidden, "Insufficient permissions"))
				return
			}
			tenant, err := c.tenants(r.Context(), tenantID)
			if err != nil {
				c.log.ErrorContext(r.Context(), "guard: tenant load failed",
					slog.String("tenant_id", tenantID.String()), slog.Any("error", err))
				WriteDecision(w, Deny(CodeForbidden, "Insufficient permissions"))
				return
			}
			d := CheckModuleAccess(c.policies, c.entitlements, tenant, moduleID, c.upgradeURL)
			if !d.Allowed() {
				c.deniedTarget(r, actor, "module:"+string(moduleID), "module", string(moduleID), tenant.CountryCode, d)
				WriteDecision(w, d)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// denied records a read-path denial best-effort. Denials never block on
// audit storage.
func (c *Chain) denied(r *http.Request, actor scope.Actor, action string, d Decision) {
	c.deniedTarget(r, actor, action, "", "", "", d)
}

func (c *Chain) deniedTarget(r *http.Request, actor scope.Actor, action, targetType, targetID, country string, d Decision) {
	if c.recorder == nil {
		return
	}
	decision := audit.DecisionDeny
	if d.Outcome == OutcomeNotFound {
		decision = audit.DecisionNotFound
	}
	c.recorder.TryRecord(r.Context(), audit.Record{
		ActorID:     actor.UserID,
		ActorRole:   string(actor.Role),
		Action:      action,
		TargetType:  targetType,
		TargetID:    targetID,
		CountryCode: country,
		Decision:    decision,
	})
}
