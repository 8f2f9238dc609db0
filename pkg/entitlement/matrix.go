package entitlement

import (
	"errors"
	"fmt"
	"time"
)

// ModuleGrant is one cell of the module/tier matrix: the access state
// and the monthly base price in USD cents. For AccessAddon cells the
// price is the add-on purchase price; for AccessIncluded cells it is
// informational (already covered by the tier).
type ModuleGrant struct {
	Access   Access `yaml:"access"`
	PriceUSD int64  `yaml:"price_usd"`
}

// MatrixConfig is the raw input the configuration store publishes.
type MatrixConfig struct {
	Tiers   map[Tier]TierSpec                 `yaml:"tiers"`
	Modules map[ModuleID]map[Tier]ModuleGrant `yaml:"modules"`
}

// Matrix is an immutable snapshot of the module/tier access matrix and
// the per-tier feature specs. Safe for concurrent use; replaced as a
// whole when configuration changes.
type Matrix struct {
	tiers   map[Tier]TierSpec
	modules map[ModuleID]map[Tier]ModuleGrant
	builtAt time.Time
}

// NewMatrix validates and snapshots a matrix configuration. Every tier
// key must be a known tier and every module must declare at least one
// cell.
func NewMatrix(cfg MatrixConfig) (*Matrix, error) {
	for tier := range cfg.Tiers {
		if !tier.Valid() {
			return nil, errors.Join(ErrInvalidMatrix, fmt.Errorf("unknown tier %q", tier))
		}
	}

	modules := make(map[ModuleID]map[Tier]ModuleGrant, len(cfg.Modules))
	for moduleID, cells := range cfg.Modules {
		if len(cells) == 0 {
			return nil, errors.Join(ErrInvalidMatrix,
				fmt.Errorf("module %q has no tier cells", moduleID))
		}
		copied := make(map[Tier]ModuleGrant, len(cells))
		for tier, grant := range cells {
			if !tier.Valid() {
				return nil, errors.Join(ErrInvalidMatrix,
					fmt.Errorf("module %q references unknown tier %q", moduleID, tier))
			}
			switch grant.Access {
			case AccessIncluded, AccessAddon, AccessLocked:
			default:
				return nil, errors.Join(ErrInvalidMatrix,
					fmt.Errorf("module %q tier %q has invalid access %q", moduleID, tier, grant.Access))
			}
			copied[tier] = grant
		}
		modules[moduleID] = copied
	}

	tiers := make(map[Tier]TierSpec, len(cfg.Tiers))
	for tier, spec := range cfg.Tiers {
		tiers[tier] = spec
	}

	return &Matrix{
		tiers:   tiers,
		modules: modules,
		builtAt: time.Now().UTC(),
	}, nil
}

// HasModule reports whether the matrix knows the module at all.
func (m *Matrix) HasModule(moduleID ModuleID) bool {
	_, ok := m.modules[moduleID]
	return ok
}

// Grant returns the matrix cell for (module, tier). A missing cell is
// locked: absence never grants access.
func (m *Matrix) Grant(moduleID ModuleID, tier Tier) ModuleGrant {
	cells, ok := m.modules[moduleID]
	if !ok {
		return ModuleGrant{Access: AccessLocked}
	}
	grant, ok := cells[tier]
	if !ok {
		return ModuleGrant{Access: AccessLocked}
	}
	return grant
}

// LowestIncludedTier returns the lowest tier at which the module is
// included, scanning ascending. The second return is false when no tier
// ever includes the module.
func (m *Matrix) LowestIncludedTier(moduleID ModuleID) (Tier, bool) {
	cells, ok := m.modules[moduleID]
	if !ok {
		return "", false
	}
	for _, tier := range tierOrder {
		if grant, ok := cells[tier]; ok && grant.Access == AccessIncluded {
			return tier, true
		}
	}
	return "", false
}

// TierSpec returns the feature/limit spec for a tier. Unknown tiers
// return an empty spec (no features, zero limits).
func (m *Matrix) TierSpec(tier Tier) TierSpec {
	return m.tiers[tier]
}

// Version returns the snapshot build time.
func (m *Matrix) Version() time.Time {
	return m.builtAt
}
