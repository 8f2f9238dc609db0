package permission

import (
	"context"
	"slices"
)

// staticSource is a Source backed by an in-memory catalog. It copies its
// input so later mutations of the caller's map cannot change the catalog.
type staticSource struct {
	catalog map[Role][]Permission
}

// NewStaticSource creates a Source from a role-to-permissions map.
func NewStaticSource(catalog map[Role][]Permission) Source {
	copied := make(map[Role][]Permission, len(catalog))
	for role, perms := range catalog {
		copied[role] = slices.Clone(perms)
	}
	return &staticSource{catalog: copied}
}

// Load returns the catalog map. The registry treats it as read-only.
func (s *staticSource) Load(ctx context.Context) (map[Role][]Permission, error) {
	return s.catalog, nil
}

// DefaultSource returns the platform's built-in catalog. Note that the
// super admin's set repeats every platform admin entry: shared permissions
// are enumerated per role, not inherited, so removing a grant from one
// role can never silently widen or narrow another.
func DefaultSource() Source {
	return NewStaticSource(map[Role][]Permission{
		RoleSuperAdmin: {
			PermManagePlansPricing,
			PermManagePlatformAdmins,
			PermManageCountriesRegions,
			PermManageRolloutPolicy,
			PermManageModuleMatrix,
			PermViewTenantsScoped,
			PermManageTenantsScoped,
			PermManageAddonGrants,
			PermViewAuditLog,
		},
		RolePlatformAdmin: {
			PermViewTenantsScoped,
			PermManageTenantsScoped,
			PermManageAddonGrants,
			PermViewAuditLog,
		},
		RoleTenantAdmin: {
			PermManageTenantStaff,
			PermViewTenantReports,
			PermUseTenantModules,
		},
		RoleTenantStaff: {
			PermViewTenantReports,
			PermUseTenantModules,
		},
		RoleTenantViewer: {
			PermViewTenantReports,
		},
		RoleCustomer: {},
	})
}
