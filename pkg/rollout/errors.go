package rollout

import "errors"

// Domain errors for rollout policy operations.
var (
	// ErrStaleWrite is returned when a policy update carries a version
	// that is no longer current for that country.
	ErrStaleWrite = errors.New("rollout.stale_write")

	// ErrInvalidPolicy is returned when a policy fails validation or a
	// policy document cannot be parsed.
	ErrInvalidPolicy = errors.New("rollout.invalid_policy")

	// ErrPolicyNotFound is returned when no policy exists for a country.
	ErrPolicyNotFound = errors.New("rollout.policy_not_found")
)
