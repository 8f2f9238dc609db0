package scope

import (
	"github.com/hiddenbraintechnologies-sys/Enterprise-Tenant-Manager-sub003/pkg/permission"
)

// Resolve derives the actor's effective administrative scope from its
// role and assignment records. It is a pure function over its input:
// assignment data arrives on the Actor, no store is consulted.
//
// Priority order:
//  1. super admin role: GLOBAL with SuperAdmin set
//  2. country-scoped admin role: COUNTRY limited to the assignment set;
//     an empty assignment set yields a scope that allows nothing
//  3. tenant-level role: TENANT limited to the actor's tenant
//  4. anything else: ErrNoScope, treat as unauthenticated
func Resolve(actor Actor) (Context, error) {
	switch actor.Role {
	case permission.RoleSuperAdmin:
		return Context{Kind: KindGlobal, SuperAdmin: true}, nil

	case permission.RolePlatformAdmin:
		allowed := make(map[string]struct{}, len(actor.CountryIDs))
		for _, id := range actor.CountryIDs {
			allowed[id] = struct{}{}
		}
		return Context{Kind: KindCountry, AllowedCountryIDs: allowed}, nil

	case permission.RoleTenantAdmin, permission.RoleTenantStaff,
		permission.RoleTenantViewer, permission.RoleCustomer:
		if actor.TenantID == nil {
			return Context{}, ErrMissingTenant
		}
		id := *actor.TenantID
		return Context{Kind: KindTenant, TenantID: &id}, nil

	default:
		return Context{}, ErrNoScope
	}
}
