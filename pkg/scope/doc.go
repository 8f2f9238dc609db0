// Package scope derives an actor's effective administrative scope:
// global, a set of countries, or a single tenant.
//
// Resolution is a pure function of the actor record the session layer
// supplies, which keeps it side-effect free and trivially testable. A
// country-scoped admin with no assigned countries resolves to a COUNTRY
// scope with an empty allow set - it fails closed rather than falling
// open to global.
//
//	sc, err := scope.Resolve(scope.Actor{
//	    UserID:     userID,
//	    Role:       permission.RolePlatformAdmin,
//	    CountryIDs: []string{"IN", "AE"},
//	})
//	if err != nil {
//	    // no scope, treat as unauthenticated
//	}
//	if !sc.AllowsTenant(targetTenantID, targetCountry) {
//	    // out of scope: respond NOT_FOUND, do not reveal existence
//	}
package scope
