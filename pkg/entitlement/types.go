package entitlement

import (
	"slices"
	"time"

	"github.com/google/uuid"
)

// Tier is a subscription level. Tiers are ordered; upgrade prompts scan
// them ascending.
type Tier string

const (
	TierFree       Tier = "free"
	TierStarter    Tier = "starter"
	TierPro        Tier = "pro"
	TierEnterprise Tier = "enterprise"
)

// tierOrder lists tiers from lowest to highest.
var tierOrder = []Tier{TierFree, TierStarter, TierPro, TierEnterprise}

// Tiers returns all tiers in ascending order.
func Tiers() []Tier {
	return slices.Clone(tierOrder)
}

// Index returns the tier's position in ascending order, or -1 for an
// unknown tier.
func (t Tier) Index() int {
	return slices.Index(tierOrder, t)
}

// Valid reports whether t is a known tier.
func (t Tier) Valid() bool {
	return t.Index() >= 0
}

// ModuleID names a vertical business capability (e.g. "hrms", "clinic").
type ModuleID string

// Access is the state of a module at a given tier.
type Access string

const (
	// AccessIncluded means the module is part of the tier.
	AccessIncluded Access = "included"

	// AccessAddon means the module is purchasable independently of the
	// tier.
	AccessAddon Access = "addon"

	// AccessLocked means the tier alone never unlocks the module. An
	// active add-on grant still can: entitlement is the union of
	// tier-derived access and purchased grants.
	AccessLocked Access = "locked"
)

// Feature is a tier-level capability flag.
type Feature string

const (
	FeatureMultiCurrency Feature = "multi_currency"
	FeatureAIInsights    Feature = "ai_insights"
	FeatureWhiteLabel    Feature = "white_label"
)

// Resource is a countable per-tenant limit attached to a tier.
type Resource string

const (
	ResourceUsers     Resource = "max_users"
	ResourceCustomers Resource = "max_customers"
	ResourceAPIRate   Resource = "api_rate_limit"
)

// Unlimited indicates no limit for a resource (-1 for SQL compatibility).
const Unlimited int64 = -1

// TierSpec carries a tier's feature flags and resource limits.
type TierSpec struct {
	Features []Feature
	Limits   map[Resource]int64
}

// HasFeature reports whether the tier enables the given feature.
func (s TierSpec) HasFeature(f Feature) bool {
	return slices.Contains(s.Features, f)
}

// Limit returns the tier's limit for a resource. Resources absent from
// the limit table are limited to zero, not unlimited.
func (s TierSpec) Limit(r Resource) int64 {
	if v, ok := s.Limits[r]; ok {
		return v
	}
	return 0
}

// Money is a monetary amount in the smallest currency unit.
// For example, $15.00 USD is Amount: 1500, Currency: "USD".
type Money struct {
	Amount   int64  `json:"amount"`
	Currency string `json:"currency"` // ISO 4217 code
}

// Addon is a per-tenant add-on entitlement. Revocation flips Active to
// false; records are never hard-deleted.
type Addon struct {
	AddonID     ModuleID   `json:"addon_id"`
	CountryCode string     `json:"country_code"`
	Active      bool       `json:"active"`
	TrialEndsAt *time.Time `json:"trial_ends_at,omitempty"`
}

// ActiveAt reports whether the grant confers access at the given time.
// A grant with an expired trial window is inactive even if not revoked.
func (a Addon) ActiveAt(now time.Time) bool {
	if !a.Active {
		return false
	}
	return a.TrialEndsAt == nil || now.Before(*a.TrialEndsAt)
}

// Tenant is the subscription-store record supplied per request. Tier is
// taken as an input here rather than cached inside the engine; callers
// must re-fetch the current tier immediately before a check so an
// upgrade or downgrade between fetch and check cannot produce a stale
// allow.
type Tenant struct {
	ID          uuid.UUID
	Tier        Tier
	CountryCode string
	Addons      []Addon
}

// activeAddonFor returns whether the tenant holds an active grant for
// the module in its own country.
func (t Tenant) activeAddonFor(moduleID ModuleID, now time.Time) bool {
	for _, a := range t.Addons {
		if a.AddonID == moduleID && a.CountryCode == t.CountryCode && a.ActiveAt(now) {
			return true
		}
	}
	return false
}

// CountryPricing is the per-country pricing configuration: display
// currency, tax regime, and an exchange-rate reference used only for
// display, never for settlement.
type CountryPricing struct {
	CountryCode string  `yaml:"country_code"`
	Currency    string  `yaml:"currency"` // ISO 4217 code
	TaxName     string  `yaml:"tax_name"`
	TaxRate     float64 `yaml:"tax_rate"` // e.g. 0.18 for 18% GST
	// NexusDependent marks countries whose tax cannot be resolved
	// server-side. Quotes for such countries return the pre-tax amount
	// with TaxComputedExternally set; there is no fallback rate.
	NexusDependent bool    `yaml:"nexus_dependent"`
	ExchangeRate   float64 `yaml:"exchange_rate"` // units of Currency per USD
}
