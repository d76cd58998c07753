package subscription

import (
	"context"

	"github.com/google/uuid"

	"github.com/dmitrymomot/storykit/pkg/tier"
)

// Store persists subscriptions and dev bypass rows.
type Store interface {
	// Get returns ErrNotFound when the user has no row.
	Get(ctx context.Context, userID uuid.UUID) (*Subscription, error)
	// Insert returns ErrAlreadyExists if another writer created the row first.
	Insert(ctx context.Context, sub *Subscription) error
	// SetTier creates or updates the user's row. Billing webhooks and admin
	// tooling write through it.
	SetTier(ctx context.Context, userID uuid.UUID, t tier.Tier, status Status) error

	// GetDevBypass returns ErrNotFound when the user has no row.
	GetDevBypass(ctx context.Context, userID uuid.UUID) (*DevBypass, error)
	UpsertDevBypass(ctx context.Context, b *DevBypass) error
}
