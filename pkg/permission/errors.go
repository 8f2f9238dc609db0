package permission

import "errors"

// Domain errors for permission registry operations.
var (
	// ErrUnknownRole is returned when a role name cannot be normalized
	// to a canonical role.
	ErrUnknownRole = errors.New("permission.unknown_role")

	// ErrInvalidCatalog is returned when a permission catalog cannot be
	// loaded or references a role outside the canonical set.
	ErrInvalidCatalog = errors.New("permission.invalid_catalog")

	// ErrRoleNotInContext is returned when no role is found in the context.
	ErrRoleNotInContext = errors.New("permission.role_not_in_context")
)
