package permission

// Role is a canonical identity class. The set of roles is closed and
// versioned together with the permission catalog; new roles require a
// catalog release, never a runtime registration.
type Role string

const (
	// RoleSuperAdmin is the platform owner role. A small set of
	// irreversible actions is gated on this role alone and cannot be
	// reached through individual permission grants.
	RoleSuperAdmin Role = "super_admin"

	// RolePlatformAdmin administers the platform within an assigned set
	// of countries.
	RolePlatformAdmin Role = "platform_admin"

	// RoleTenantAdmin administers a single tenant.
	RoleTenantAdmin Role = "tenant_admin"

	// RoleTenantStaff is a regular member of a tenant.
	RoleTenantStaff Role = "tenant_staff"

	// RoleTenantViewer has read-only access within a tenant.
	RoleTenantViewer Role = "tenant_viewer"

	// RoleCustomer is an end customer of a tenant.
	RoleCustomer Role = "customer"
)

// Permission is an atomic capability identifier. Permissions are granted
// to roles through enumerated per-role sets; there is no inheritance
// between roles.
type Permission string

const (
	PermManagePlansPricing     Permission = "manage-plans-pricing"
	PermManagePlatformAdmins   Permission = "manage-platform-admins"
	PermManageCountriesRegions Permission = "manage-countries-regions"
	PermManageRolloutPolicy    Permission = "manage-rollout-policy"
	PermManageModuleMatrix     Permission = "manage-module-matrix"
	PermViewTenantsScoped      Permission = "view-tenants-scoped"
	PermManageTenantsScoped    Permission = "manage-tenants-scoped"
	PermManageAddonGrants      Permission = "manage-addon-grants"
	PermViewAuditLog           Permission = "view-audit-log"
	PermManageTenantStaff      Permission = "manage-tenant-staff"
	PermViewTenantReports      Permission = "view-tenant-reports"
	PermUseTenantModules       Permission = "use-tenant-modules"
)

// canonicalRoles is the closed set used to validate catalog keys and
// normalization results.
var canonicalRoles = map[Role]struct{}{
	RoleSuperAdmin:    {},
	RolePlatformAdmin: {},
	RoleTenantAdmin:   {},
	RoleTenantStaff:   {},
	RoleTenantViewer:  {},
	RoleCustomer:      {},
}

// IsCanonical reports whether r is one of the known canonical roles.
func IsCanonical(r Role) bool {
	_, ok := canonicalRoles[r]
	return ok
}
