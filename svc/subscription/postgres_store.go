package subscription

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/dmitrymomot/storykit/pkg/pg"
	"github.com/dmitrymomot/storykit/pkg/tier"
)

// PostgresStore keeps subscriptions and dev_bypass rows in PostgreSQL.
type PostgresStore struct {
	db pg.Querier
}

func NewPostgresStore(db pg.Querier) *PostgresStore {
	return &PostgresStore{db: db}
}

func (s *PostgresStore) Get(ctx context.Context, userID uuid.UUID) (*Subscription, error) {
	const q = `SELECT id, user_id, tier, status, created_at, updated_at
		FROM subscriptions WHERE user_id = $1`

	var sub Subscription
	err := s.db.QueryRow(ctx, q, userID).Scan(
		&sub.ID, &sub.UserID, &sub.Tier, &sub.Status, &sub.CreatedAt, &sub.UpdatedAt,
	)
	if err != nil {
		if pg.IsNotFoundError(err) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &sub, nil
}

func (s *PostgresStore) Insert(ctx context.Context, sub *Subscription) error {
	const q = `INSERT INTO subscriptions (id, user_id, tier, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)`

	_, err := s.db.Exec(ctx, q, sub.ID, sub.UserID, sub.Tier, sub.Status, sub.CreatedAt, sub.UpdatedAt)
	if pg.IsDuplicateKeyError(err) {
		return errors.Join(ErrAlreadyExists, err)
	}
	return err
}

func (s *PostgresStore) SetTier(ctx context.Context, userID uuid.UUID, t tier.Tier, status Status) error {
	const q = `INSERT INTO subscriptions (id, user_id, tier, status)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (user_id) DO UPDATE
		SET tier = EXCLUDED.tier, status = EXCLUDED.status, updated_at = now()`

	_, err := s.db.Exec(ctx, q, uuid.New(), userID, t, status)
	return err
}

func (s *PostgresStore) GetDevBypass(ctx context.Context, userID uuid.UUID) (*DevBypass, error) {
	const q = `SELECT user_id, bypass_enabled, COALESCE(bypass_reason, ''), updated_at
		FROM dev_bypass WHERE user_id = $1`

	var b DevBypass
	if err := s.db.QueryRow(ctx, q, userID).Scan(&b.UserID, &b.Enabled, &b.Reason, &b.UpdatedAt); err != nil {
		if pg.IsNotFoundError(err) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &b, nil
}

func (s *PostgresStore) UpsertDevBypass(ctx context.Context, b *DevBypass) error {
	const q = `INSERT INTO dev_bypass (user_id, bypass_enabled, bypass_reason, updated_at)
		VALUES ($1, $2, NULLIF($3, ''), $4)
		ON CONFLICT (user_id) DO UPDATE
		SET bypass_enabled = EXCLUDED.bypass_enabled,
		    bypass_reason = EXCLUDED.bypass_reason,
		    updated_at = EXCLUDED.updated_at`

	_, err := s.db.Exec(ctx, q, b.UserID, b.Enabled, b.Reason, b.UpdatedAt)
	return err
}
