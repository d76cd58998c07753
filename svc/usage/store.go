package usage

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Store persists usage counters. Increment must be atomic: concurrent calls
// for the same key must each add exactly one.
type Store interface {
	// Get returns ErrNotFound if the counter was never incremented.
	Get(ctx context.Context, key Key) (int64, error)
	// Increment creates the counter at 1 or adds one, returning the new value.
	// periodEnd is nil for lifetime counters.
	Increment(ctx context.Context, key Key, periodEnd *time.Time) (int64, error)
	// List returns every counter of the user, newest window first.
	List(ctx context.Context, userID uuid.UUID) ([]Counter, error)
}
