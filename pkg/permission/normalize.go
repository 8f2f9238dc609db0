package permission

import (
	"errors"
	"fmt"
	"strings"
)

// roleAliases maps every known legacy role spelling to its canonical role.
// Keys are folded (lowercase, separators collapsed to "_") before lookup,
// so "PLATFORM-SUPER" and "platform_super" hit the same entry. Canonical
// names map to themselves, which makes NormalizeRole idempotent.
var roleAliases = map[string]Role{
	// canonical
	"super_admin":    RoleSuperAdmin,
	"platform_admin": RolePlatformAdmin,
	"tenant_admin":   RoleTenantAdmin,
	"tenant_staff":   RoleTenantStaff,
	"tenant_viewer":  RoleTenantViewer,
	"customer":       RoleCustomer,

	// legacy spellings still present in old session tokens and exports
	"platform_super": RoleSuperAdmin,
	"superadmin":     RoleSuperAdmin,
	"root":           RoleSuperAdmin,
	"country_admin":  RolePlatformAdmin,
	"region_admin":   RolePlatformAdmin,
	"owner":          RoleTenantAdmin,
	"business_owner": RoleTenantAdmin,
	"staff":          RoleTenantStaff,
	"employee":       RoleTenantStaff,
	"member":         RoleTenantStaff,
	"viewer":         RoleTenantViewer,
	"read_only":      RoleTenantViewer,
	"client":         RoleCustomer,
	"end_customer":   RoleCustomer,
}

// NormalizeRole maps a raw role string (canonical or legacy) to its
// canonical Role. It is total over the known alias table and the identity
// over canonical names. Unrecognized input returns ErrUnknownRole so the
// caller can decide to deny; there is no default role.
func NormalizeRole(raw string) (Role, error) {
	folded := foldRoleName(raw)
	if role, ok := roleAliases[folded]; ok {
		return role, nil
	}
	return "", errors.Join(ErrUnknownRole, fmt.Errorf("unrecognized role %q", raw))
}

// foldRoleName lowercases and collapses "-", ".", and spaces to "_" so
// alias lookups are insensitive to historical separator drift.
func foldRoleName(raw string) string {
	s := strings.ToLower(strings.TrimSpace(raw))
	s = strings.NewReplacer("-", "_", ".", "_", " ", "_").Replace(s)
	return s
}
