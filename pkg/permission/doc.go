// Package permission provides the static permission registry: the catalog
// of atomic capabilities and the enumerated set each role holds.
//
// Roles form a closed enum. Legacy role spellings from old session tokens
// and data exports are mapped to canonical roles by NormalizeRole, which
// is total over the alias table and fails with ErrUnknownRole for
// anything else - callers decide whether an unknown role denies.
//
// There is no inheritance between roles. Every role's permission set is
// enumerated in full, even where that duplicates entries, so a catalog
// edit to one role can never change what another role may do.
//
// Basic usage:
//
//	reg, err := permission.NewRegistry(ctx, permission.DefaultSource())
//	if err != nil {
//	    // invalid catalog
//	}
//
//	role, err := permission.NormalizeRole("PLATFORM_ADMIN")
//	if err != nil {
//	    // unknown role, deny
//	}
//
//	if !reg.HasPermission(role, permission.PermManageAddonGrants) {
//	    // forbidden
//	}
//
// Unknown permission ids return false from HasPermission rather than an
// error, so a newly added guard fails closed until the catalog ships.
package permission
