package scope

import "errors"

// Domain errors for scope resolution.
var (
	// ErrNoScope is returned for roles that carry no administrative
	// scope. Callers must treat the request as unauthenticated.
	ErrNoScope = errors.New("scope.no_scope")

	// ErrMissingTenant is returned when a tenant-level role arrives
	// without a tenant membership record.
	ErrMissingTenant = errors.New("scope.missing_tenant")
)
