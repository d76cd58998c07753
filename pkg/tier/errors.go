package tier

import "errors"

var (
	ErrInvalidTable      = errors.New("tier.errors.invalid_table")
	ErrMissingTier       = errors.New("tier.errors.missing_tier")
	ErrInvariantViolated = errors.New("tier.errors.invariant_violated")
	ErrInvalidLimit      = errors.New("tier.errors.invalid_limit")
)
