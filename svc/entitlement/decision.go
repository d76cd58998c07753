package entitlement

import "github.com/dmitrymomot/storykit/pkg/tier"

// ReasonCode is the stable, untranslated identifier of a Decision's reason.
type ReasonCode string

const (
	ReasonPaymentWallDisabled ReasonCode = "payment_wall_disabled"
	ReasonDevBypass           ReasonCode = "dev_bypass"
	ReasonWithinLimit         ReasonCode = "within_limit"
	ReasonFreeLimitReached    ReasonCode = "free_limit_reached"
	ReasonPeriodLimitReached  ReasonCode = "period_limit_reached"
	ReasonLimitReached        ReasonCode = "limit_reached"
	ReasonUnknownResource     ReasonCode = "unknown_resource"
)

// Decision is the answer to "may this user create one more of this resource".
// A denial is a normal outcome, not an error. Count, limit and tier are set
// on every decision that got past the kill switch and the bypass, so callers
// can render "3/5 used" either way.
type Decision struct {
	Allowed      bool        `json:"allowed"`
	Reason       string      `json:"reason"`
	ReasonCode   ReasonCode  `json:"reasonCode"`
	CurrentCount *int64      `json:"currentCount,omitempty"`
	Limit        *tier.Limit `json:"limit,omitempty"`
	Tier         *tier.Tier  `json:"tier,omitempty"`
}
