package entitlement

import "slices"

// TierComparison contains the differences between two tiers. Used to
// validate downgrades and to populate upgrade prompts.
type TierComparison struct {
	NewFeatures     []Feature
	LostFeatures    []Feature
	IncreasedLimits map[Resource]LimitChange
	DecreasedLimits map[Resource]LimitChange
}

// LimitChange represents a change in a resource limit.
type LimitChange struct {
	From int64
	To   int64
}

// HasDecreases returns true if the target tier lowers any limit or
// drops any feature.
func (c *TierComparison) HasDecreases() bool {
	return len(c.DecreasedLimits) > 0 || len(c.LostFeatures) > 0
}

// CompareTiers returns the differences between the current and target
// tier specs from the given matrix.
func CompareTiers(m *Matrix, current, target Tier) *TierComparison {
	cur := m.TierSpec(current)
	tgt := m.TierSpec(target)

	cmp := &TierComparison{
		NewFeatures:     make([]Feature, 0),
		LostFeatures:    make([]Feature, 0),
		IncreasedLimits: make(map[Resource]LimitChange),
		DecreasedLimits: make(map[Resource]LimitChange),
	}

	for _, f := range tgt.Features {
		if !slices.Contains(cur.Features, f) {
			cmp.NewFeatures = append(cmp.NewFeatures, f)
		}
	}
	for _, f := range cur.Features {
		if !slices.Contains(tgt.Features, f) {
			cmp.LostFeatures = append(cmp.LostFeatures, f)
		}
	}

	seen := make(map[Resource]struct{}, len(cur.Limits)+len(tgt.Limits))
	for r := range cur.Limits {
		seen[r] = struct{}{}
	}
	for r := range tgt.Limits {
		seen[r] = struct{}{}
	}

	for r := range seen {
		from, to := cur.Limit(r), tgt.Limit(r)
		if from == to {
			continue
		}
		change := LimitChange{From: from, To: to}

		// Unlimited-to-limited counts as a decrease so an accidental
		// loss of unlimited access cannot pass a downgrade check.
		switch {
		case from == Unlimited:
			cmp.DecreasedLimits[r] = change
		case to == Unlimited:
			cmp.IncreasedLimits[r] = change
		case to > from:
			cmp.IncreasedLimits[r] = change
		default:
			cmp.DecreasedLimits[r] = change
		}
	}

	return cmp
}
