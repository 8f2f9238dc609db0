package scope

import (
	"github.com/google/uuid"

	"github.com/hiddenbraintechnologies-sys/Enterprise-Tenant-Manager-sub003/pkg/permission"
)

// Actor is the identity record supplied by the session layer for each
// request. The session layer has already authenticated the user; this
// package only derives the administrative breadth the actor may act in.
type Actor struct {
	UserID uuid.UUID

	// Role is the canonical role. Callers holding a raw role string must
	// run it through permission.NormalizeRole first.
	Role permission.Role

	// TenantID is set for tenant-level roles.
	TenantID *uuid.UUID

	// CountryIDs are the assigned countries for country-scoped admin
	// roles (ISO 3166-1 alpha-2 codes).
	CountryIDs []string
}

// Kind is the administrative breadth of a resolved scope. Exactly one
// kind holds per context.
type Kind string

const (
	KindGlobal  Kind = "global"
	KindCountry Kind = "country"
	KindTenant  Kind = "tenant"
)

// Context is the actor's effective administrative scope, computed fresh
// per request and never persisted.
type Context struct {
	Kind Kind

	// AllowedCountryIDs is populated for COUNTRY scope. It may be empty
	// for an admin with no assignments, in which case every country
	// check fails.
	AllowedCountryIDs map[string]struct{}

	// TenantID is populated for TENANT scope.
	TenantID *uuid.UUID

	// SuperAdmin is true only for GLOBAL scope derived from the super
	// admin role.
	SuperAdmin bool
}

// AllowsCountry reports whether the scope covers the given country.
// GLOBAL covers every country; TENANT scope covers none (tenant access
// goes through AllowsTenant).
func (c Context) AllowsCountry(countryCode string) bool {
	switch c.Kind {
	case KindGlobal:
		return true
	case KindCountry:
		_, ok := c.AllowedCountryIDs[countryCode]
		return ok
	default:
		return false
	}
}

// AllowsTenant reports whether the scope covers a tenant located in the
// given country. A COUNTRY-scoped admin covers tenants inside its
// assigned countries; a TENANT-scoped actor covers only its own tenant.
func (c Context) AllowsTenant(tenantID uuid.UUID, tenantCountry string) bool {
	switch c.Kind {
	case KindGlobal:
		return true
	case KindCountry:
		return c.AllowsCountry(tenantCountry)
	case KindTenant:
		return c.TenantID != nil && *c.TenantID == tenantID
	default:
		return false
	}
}
