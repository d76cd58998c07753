package feature

import (
	"context"
	"time"
)

// Flag is a named switch with an optional rollout strategy.
type Flag struct {
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	Enabled     bool      `json:"enabled"`
	Strategy    Strategy  `json:"-"`
	UpdatedAt   time.Time `json:"updated_at,omitzero"`
}

// Strategy decides whether an enabled flag applies to the subject carried by ctx.
type Strategy interface {
	Evaluate(ctx context.Context) (bool, error)
}

// Provider is implemented by every flag backend.
type Provider interface {
	// IsEnabled returns ErrFlagNotFound if the flag doesn't exist.
	IsEnabled(ctx context.Context, flagName string) (bool, error)
	GetFlag(ctx context.Context, flagName string) (*Flag, error)
	// SetFlag creates or replaces the flag.
	SetFlag(ctx context.Context, flag *Flag) error
}
