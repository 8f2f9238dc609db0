// Package entitlement resolves module, feature, and add-on access for a
// tenant given its subscription tier and country, and computes the
// tenant-facing price of a module in a country's currency and tax
// regime.
//
// Access to a module at a tier is one of included, addon, or locked.
// Entitlement is the union of tier-derived access and purchased add-on
// grants: an active grant allows a module even where the tenant's tier
// marks it locked. Denials carry the lowest tier that would include the
// module, or a distinct "not offered" reason when no tier ever does.
//
// The tenant record - including its current tier - is an input to every
// check. The engine holds no per-tenant state, so callers must re-fetch
// the tier immediately before checking to avoid a stale-allow window
// around plan changes.
//
//	matrix, _ := entitlement.LoadMatrixYAML(matrixFile)
//	pricing, _ := entitlement.LoadPricingYAML(pricingFile)
//	svc := entitlement.NewService(matrix, pricing)
//
//	res, err := svc.CheckModuleAccess(tenant, "furniture_manufacturing")
//	if err == nil && !res.Allowed && res.UpgradeTier != nil {
//	    // prompt an upgrade to *res.UpgradeTier
//	}
//
//	quote, _ := svc.PriceOf("furniture_manufacturing", tenant.Tier, tenant.CountryCode)
//	if quote.TaxComputedExternally {
//	    // tax resolved downstream; never display zero tax here
//	}
package entitlement
