package subscription_test

import (
	"context"
	"os"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/storykit/migrations"
	"github.com/dmitrymomot/storykit/pkg/logger"
	"github.com/dmitrymomot/storykit/pkg/pg"
	"github.com/dmitrymomot/storykit/pkg/tier"
	"github.com/dmitrymomot/storykit/svc/subscription"
)

func testPool(t *testing.T) *pgxpool.Pool {
	t.Helper()
	url := os.Getenv("STORYKIT_TEST_PG_URL")
	if url == "" {
		t.Skip("STORYKIT_TEST_PG_URL not set")
	}

	ctx := context.Background()
	cfg := pg.Config{ConnectionString: url, RetryAttempts: 1, MigrationsTable: "schema_migrations"}
	pool, err := pg.Connect(ctx, cfg)
	require.NoError(t, err)
	t.Cleanup(pool.Close)

	require.NoError(t, pg.Migrate(ctx, pool, migrations.FS, cfg, logger.Discard()))
	return pool
}

func TestPostgresStore(t *testing.T) {
	pool := testPool(t)
	store := subscription.NewPostgresStore(pool)
	svc := subscription.NewService(store)
	ctx := context.Background()

	t.Run("concurrent first lookups create one row", func(t *testing.T) {
		userID := uuid.New()

		var wg sync.WaitGroup
		ids := make([]uuid.UUID, 8)
		for i := range ids {
			wg.Add(1)
			go func() {
				defer wg.Done()
				ids[i] = svc.GetSubscription(ctx, userID).ID
			}()
		}
		wg.Wait()

		stored, err := store.Get(ctx, userID)
		require.NoError(t, err)
		for _, id := range ids {
			assert.Equal(t, stored.ID, id)
		}
	})

	t.Run("insert duplicate", func(t *testing.T) {
		sub := subscription.Default(uuid.New())
		require.NoError(t, store.Insert(ctx, sub))
		assert.ErrorIs(t, store.Insert(ctx, subscription.Default(sub.UserID)), subscription.ErrAlreadyExists)
	})

	t.Run("set tier upserts", func(t *testing.T) {
		userID := uuid.New()
		require.NoError(t, store.SetTier(ctx, userID, tier.Creator, subscription.StatusActive))
		got, err := store.Get(ctx, userID)
		require.NoError(t, err)
		assert.Equal(t, tier.Creator, got.Tier)
	})

	t.Run("dev bypass", func(t *testing.T) {
		userID := uuid.New()
		_, err := store.GetDevBypass(ctx, userID)
		assert.ErrorIs(t, err, subscription.ErrNotFound)

		require.NoError(t, svc.SetDevBypass(ctx, userID, true, "support"))
		b, err := store.GetDevBypass(ctx, userID)
		require.NoError(t, err)
		assert.True(t, b.Enabled)
		assert.Equal(t, "support", b.Reason)
	})
}
