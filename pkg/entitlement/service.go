package entitlement

import (
	"errors"
	"fmt"
	"math"
	"time"
)

// Reason classifies a module-access result beyond the allow bit, so
// clients can branch without re-deriving the state.
type Reason string

const (
	// ReasonIncluded: the module is part of the tenant's tier.
	ReasonIncluded Reason = "included"

	// ReasonAddonActive: access comes from an active add-on grant.
	ReasonAddonActive Reason = "addon_active"

	// ReasonAddonAvailable: the module is purchasable at this tier but
	// no active grant exists.
	ReasonAddonAvailable Reason = "addon_available"

	// ReasonUpgradeRequired: the module is locked at this tier and a
	// higher tier includes it.
	ReasonUpgradeRequired Reason = "upgrade_required"

	// ReasonNotOffered: no tier ever includes the module; upgrading
	// cannot unlock it.
	ReasonNotOffered Reason = "not_offered"
)

// Result is the outcome of a module access check.
type Result struct {
	Allowed bool   `json:"allowed"`
	Access  Access `json:"access"`

	// UpgradeTier is the lowest tier at which the module becomes
	// included. Set whenever Allowed is false and some tier includes
	// the module; nil when no tier does.
	UpgradeTier *Tier  `json:"upgrade_tier,omitempty"`
	Reason      Reason `json:"reason"`
}

// PricingTable maps country codes to their pricing configuration.
type PricingTable map[string]CountryPricing

// Service resolves module access and price quotes against an immutable
// matrix snapshot and pricing table. All methods are pure computations
// over their inputs; the tenant record (including its current tier)
// arrives per call.
type Service struct {
	matrix  *Matrix
	pricing PricingTable
	now     func() time.Time
}

// NewService creates an entitlement service over the given snapshot.
func NewService(matrix *Matrix, pricing PricingTable) *Service {
	return &Service{
		matrix:  matrix,
		pricing: pricing,
		now:     func() time.Time { return time.Now().UTC() },
	}
}

// CheckModuleAccess resolves the tenant's access to a module.
//
// Base access comes from the (module, tier) matrix cell. A locked or
// unpurchased cell is then checked against the tenant's add-on grants
// for its own country: entitlement is the union of tier-derived access
// and purchased grants, never their intersection, so an active grant
// allows even where the tier says locked.
func (s *Service) CheckModuleAccess(tenant Tenant, moduleID ModuleID) (Result, error) {
	if !tenant.Tier.Valid() {
		return Result{}, errors.Join(ErrUnknownTier, fmt.Errorf("tier %q", tenant.Tier))
	}

	grant := s.matrix.Grant(moduleID, tenant.Tier)

	if grant.Access == AccessIncluded {
		return Result{Allowed: true, Access: AccessIncluded, Reason: ReasonIncluded}, nil
	}

	// addon or locked: an active grant overrides either state
	if tenant.activeAddonFor(moduleID, s.now()) {
		return Result{Allowed: true, Access: AccessAddon, Reason: ReasonAddonActive}, nil
	}

	res := Result{Allowed: false, Access: grant.Access}
	if upgrade, ok := s.matrix.LowestIncludedTier(moduleID); ok {
		tier := upgrade
		res.UpgradeTier = &tier
	}

	switch {
	case grant.Access == AccessAddon:
		res.Reason = ReasonAddonAvailable
	case res.UpgradeTier != nil:
		res.Reason = ReasonUpgradeRequired
	default:
		res.Reason = ReasonNotOffered
	}
	return res, nil
}

// PriceOf computes the tenant-facing price quote for a module at a tier
// in a country's currency and tax regime. The country's exchange rate is
// a display reference only; settlement happens elsewhere.
//
// For nexus-dependent countries the quote carries the pre-tax amount
// with TaxComputedExternally set. Callers must not render that as zero
// tax.
func (s *Service) PriceOf(moduleID ModuleID, tier Tier, countryCode string) (PriceQuote, error) {
	if !tier.Valid() {
		return PriceQuote{}, errors.Join(ErrUnknownTier, fmt.Errorf("tier %q", tier))
	}
	if !s.matrix.HasModule(moduleID) {
		return PriceQuote{}, errors.Join(ErrModuleNotFound, fmt.Errorf("module %q", moduleID))
	}
	pricing, ok := s.pricing[countryCode]
	if !ok {
		return PriceQuote{}, errors.Join(ErrCountryNotFound, fmt.Errorf("country %q", countryCode))
	}

	grant := s.matrix.Grant(moduleID, tier)
	subtotal := convertMinorUnits(grant.PriceUSD, pricing.ExchangeRate)

	quote := PriceQuote{
		ModuleID:    moduleID,
		Tier:        tier,
		CountryCode: countryCode,
		Subtotal:    Money{Amount: subtotal, Currency: pricing.Currency},
		TaxName:     pricing.TaxName,
	}

	if pricing.NexusDependent {
		quote.TaxComputedExternally = true
		quote.Total = quote.Subtotal
		return quote, nil
	}

	tax := int64(math.Round(float64(subtotal) * pricing.TaxRate))
	quote.TaxRate = pricing.TaxRate
	quote.Tax = Money{Amount: tax, Currency: pricing.Currency}
	quote.Total = Money{Amount: subtotal + tax, Currency: pricing.Currency}
	return quote, nil
}

// convertMinorUnits applies the display exchange rate to a USD-cent
// amount, rounding to the nearest minor unit of the target currency.
func convertMinorUnits(usdCents int64, rate float64) int64 {
	return int64(math.Round(float64(usdCents) * rate))
}
