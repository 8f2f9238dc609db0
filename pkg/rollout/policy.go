package rollout

import (
	"slices"
	"time"

	"github.com/hiddenbraintechnologies-sys/Enterprise-Tenant-Manager-sub003/pkg/entitlement"
)

// Policy is the per-country rollout switch: which business types,
// modules, and features exist in a country at all, prior to any tier
// logic. The default is closed-world - anything not listed is disabled.
type Policy struct {
	CountryCode       string                 `json:"country_code" yaml:"country_code"`
	Active            bool                   `json:"active" yaml:"active"`
	BusinessTypes     []string               `json:"business_types" yaml:"business_types"`
	Modules           []entitlement.ModuleID `json:"modules" yaml:"modules"`
	Features          map[string]bool        `json:"features" yaml:"features"`
	ComingSoonMessage string                 `json:"coming_soon_message,omitempty" yaml:"coming_soon_message"`

	// Version is the optimistic-concurrency token for updates. Zero
	// means the policy has never been stored.
	Version   int64     `json:"version" yaml:"-"`
	UpdatedAt time.Time `json:"updated_at" yaml:"-"`
}

// clone returns a deep copy so stored policies cannot be mutated
// through returned values.
func (p Policy) clone() Policy {
	c := p
	c.BusinessTypes = slices.Clone(p.BusinessTypes)
	c.Modules = slices.Clone(p.Modules)
	if p.Features != nil {
		c.Features = make(map[string]bool, len(p.Features))
		for k, v := range p.Features {
			c.Features[k] = v
		}
	}
	return c
}

// Provider is the read side of the rollout policy table. All lookups
// default to disabled: an absent country, module, feature, or business
// type is off, never implicitly on. An inactive country disables
// everything below it regardless of tier or add-on state.
type Provider interface {
	IsCountryActive(countryCode string) bool
	IsModuleEnabled(countryCode string, moduleID entitlement.ModuleID) bool
	IsFeatureEnabled(countryCode, featureKey string) bool
	IsBusinessTypeEnabled(countryCode, businessType string) bool

	// Get returns the country's policy, if any.
	Get(countryCode string) (Policy, bool)
}
