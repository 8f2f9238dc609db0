package entitlement

import "errors"

// Domain errors for entitlement operations.
var (
	// ErrModuleNotFound is returned when a module id is absent from the
	// matrix entirely.
	ErrModuleNotFound = errors.New("entitlement.module_not_found")

	// ErrUnknownTier is returned for a tier outside the ordered set.
	ErrUnknownTier = errors.New("entitlement.unknown_tier")

	// ErrCountryNotFound is returned when no pricing configuration
	// exists for a country.
	ErrCountryNotFound = errors.New("entitlement.country_not_found")

	// ErrInvalidMatrix is returned when a module/tier matrix cannot be
	// loaded or fails validation.
	ErrInvalidMatrix = errors.New("entitlement.invalid_matrix")

	// ErrStaleWrite is returned when a matrix update carries a version
	// that is no longer current.
	ErrStaleWrite = errors.New("entitlement.stale_write")

	// ErrAddonNotFound is returned when revoking a grant that does not
	// exist.
	ErrAddonNotFound = errors.New("entitlement.addon_not_found")

	// ErrCacheMiss is returned by the decision cache when no entry
	// exists for the key.
	ErrCacheMiss = errors.New("entitlement.cache_miss")
)
