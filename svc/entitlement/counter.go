package entitlement

import (
	"context"

	"github.com/google/uuid"

	"github.com/dmitrymomot/storykit/pkg/pg"
)

// ResourceCounter counts the live rows a user owns. Deletions are reflected
// immediately, which is what the free tier and child profiles are gated on.
type ResourceCounter interface {
	CountChildren(ctx context.Context, userID uuid.UUID) (int64, error)
	CountCharacters(ctx context.Context, userID uuid.UUID) (int64, error)
	CountStories(ctx context.Context, userID uuid.UUID) (int64, error)
}

// PostgresResourceCounter counts rows in child_profiles, characters and
// stories. Characters and stories belong to a user through their child
// profile.
type PostgresResourceCounter struct {
	db pg.Querier
}

func NewPostgresResourceCounter(db pg.Querier) *PostgresResourceCounter {
	return &PostgresResourceCounter{db: db}
}

func (c *PostgresResourceCounter) CountChildren(ctx context.Context, userID uuid.UUID) (int64, error) {
	return c.count(ctx, `SELECT count(*) FROM child_profiles WHERE user_id = $1`, userID)
}

func (c *PostgresResourceCounter) CountCharacters(ctx context.Context, userID uuid.UUID) (int64, error) {
	return c.count(ctx, `SELECT count(*) FROM characters ch
		JOIN child_profiles cp ON cp.id = ch.child_id
		WHERE cp.user_id = $1`, userID)
}

func (c *PostgresResourceCounter) CountStories(ctx context.Context, userID uuid.UUID) (int64, error) {
	return c.count(ctx, `SELECT count(*) FROM stories s
		JOIN child_profiles cp ON cp.id = s.child_id
		WHERE cp.user_id = $1`, userID)
}

func (c *PostgresResourceCounter) count(ctx context.Context, q string, userID uuid.UUID) (int64, error) {
	var n int64
	err := c.db.QueryRow(ctx, q, userID).Scan(&n)
	return n, err
}
