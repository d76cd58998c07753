package usage

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/dmitrymomot/storykit/pkg/pg"
)

// PostgresStore keeps counters in the usage_counters table.
type PostgresStore struct {
	db pg.Querier
}

func NewPostgresStore(db pg.Querier) *PostgresStore {
	return &PostgresStore{db: db}
}

func (s *PostgresStore) Get(ctx context.Context, key Key) (int64, error) {
	const q = `SELECT count FROM usage_counters
		WHERE user_id = $1 AND resource_type = $2 AND period_type = $3 AND period_start = $4`

	var n int64
	if err := s.db.QueryRow(ctx, q, key.UserID, key.Resource, key.Period, key.PeriodStart).Scan(&n); err != nil {
		if pg.IsNotFoundError(err) {
			return 0, ErrNotFound
		}
		return 0, err
	}
	return n, nil
}

// Increment is a single upsert, so concurrent creations never lose a count.
func (s *PostgresStore) Increment(ctx context.Context, key Key, periodEnd *time.Time) (int64, error) {
	const q = `INSERT INTO usage_counters
			(user_id, resource_type, period_type, period_start, period_end, count)
		VALUES ($1, $2, $3, $4, $5, 1)
		ON CONFLICT (user_id, resource_type, period_type, period_start)
		DO UPDATE SET count = usage_counters.count + 1, updated_at = now()
		RETURNING count`

	var n int64
	err := s.db.QueryRow(ctx, q, key.UserID, key.Resource, key.Period, key.PeriodStart, periodEnd).Scan(&n)
	return n, err
}

func (s *PostgresStore) List(ctx context.Context, userID uuid.UUID) ([]Counter, error) {
	const q = `SELECT user_id, resource_type, period_type, period_start, period_end, count, updated_at
		FROM usage_counters WHERE user_id = $1
		ORDER BY period_start DESC, resource_type`

	rows, err := s.db.Query(ctx, q, userID)
	if err != nil {
		return nil, err
	}
	return pgx.CollectRows(rows, func(row pgx.CollectableRow) (Counter, error) {
		var c Counter
		err := row.Scan(&c.UserID, &c.Resource, &c.Period, &c.PeriodStart, &c.PeriodEnd, &c.Count, &c.UpdatedAt)
		return c, err
	})
}
