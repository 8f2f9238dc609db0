// Package entitlements is the entitlement and access control core for
// a multi-tenant, multi-country business platform.
//
// It answers one question for every request: may this actor, in this
// role, acting on this tenant, in this country, on this plan, perform
// this operation? The answer is assembled from five cooperating layers,
// each its own package:
//
//   - pkg/permission - canonical roles and their enumerated permission
//     sets, with normalization for legacy role spellings.
//   - pkg/scope - resolves an actor into a GLOBAL, COUNTRY, or TENANT
//     administrative scope, computed fresh per request.
//   - pkg/entitlement - the module x tier matrix, add-on grants, price
//     quotes, and the Redis-backed decision cache.
//   - pkg/rollout - per-country launch switches that gate modules and
//     features before any tier logic runs.
//   - pkg/guard - chi middleware composing the above into typed allow,
//     deny, and not-found decisions with a fixed denial payload.
//   - pkg/admin - the audited mutation surface for policies, the
//     matrix, and add-on grants.
//
// Everything fails closed: unknown roles, unlisted modules, absent
// countries, and missing dependencies deny. pkg/audit records the
// decisions; pkg/logger, pkg/config, pkg/pg, and pkg/redis carry the
// ambient infrastructure.
package entitlements
