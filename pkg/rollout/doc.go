// Package rollout holds the per-country rollout policy: which business
// types, modules, and features exist in a country at all, independent
// of any tenant's subscription tier.
//
// The rollout gate is checked before tier logic. A module that a tier
// includes must still deny in a country that has not launched it, with
// a distinct "coming soon" reason rather than a generic forbidden. All
// lookups are closed-world: a key absent from the enabled set is
// disabled, never implicitly enabled, and an inactive country disables
// everything.
//
// Policy updates are last-writer-wins with a monotonic version check: a
// write against a stale version is rejected with ErrStaleWrite instead
// of silently overwriting a concurrent edit. Readers always see a whole
// policy, never a partial merge.
package rollout
