package subscription

import (
	"slices"
	"time"

	"github.com/google/uuid"

	"github.com/dmitrymomot/storykit/pkg/tier"
)

// Status mirrors the billing provider's subscription state. It is written by
// payment webhooks outside this service and is informational only: limits
// follow Tier.
type Status string

const (
	StatusActive   Status = "active"
	StatusTrialing Status = "trialing"
	StatusPastDue  Status = "past_due"
	StatusCanceled Status = "canceled"
)

// Statuses lists every status the billing provider reports.
var Statuses = []Status{StatusActive, StatusTrialing, StatusPastDue, StatusCanceled}

func (s Status) IsValid() bool {
	return slices.Contains(Statuses, s)
}

// Subscription is the one-per-user record naming the user's tier.
type Subscription struct {
	ID        uuid.UUID `json:"id"`
	UserID    uuid.UUID `json:"user_id"`
	Tier      tier.Tier `json:"tier"`
	Status    Status    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Default is the record every unknown user starts with.
func Default(userID uuid.UUID) *Subscription {
	now := time.Now().UTC()
	return &Subscription{
		ID:        uuid.New(),
		UserID:    userID,
		Tier:      tier.Free,
		Status:    StatusActive,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// DevBypass is a per-user override that disables every entitlement check.
// A missing row means no bypass.
type DevBypass struct {
	UserID    uuid.UUID `json:"user_id"`
	Enabled   bool      `json:"enabled"`
	Reason    string    `json:"reason,omitempty"`
	UpdatedAt time.Time `json:"updated_at"`
}
