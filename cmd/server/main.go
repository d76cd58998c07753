package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	goredis "github.com/redis/go-redis/v9"

	"github.com/dmitrymomot/storykit/migrations"
	"github.com/dmitrymomot/storykit/pkg/config"
	"github.com/dmitrymomot/storykit/pkg/environment"
	"github.com/dmitrymomot/storykit/pkg/feature"
	"github.com/dmitrymomot/storykit/pkg/httpserver"
	"github.com/dmitrymomot/storykit/pkg/logger"
	"github.com/dmitrymomot/storykit/pkg/pg"
	"github.com/dmitrymomot/storykit/pkg/redis"
	"github.com/dmitrymomot/storykit/pkg/requestid"
	"github.com/dmitrymomot/storykit/pkg/tier"
	"github.com/dmitrymomot/storykit/svc/entitlement"
	"github.com/dmitrymomot/storykit/svc/subscription"
	"github.com/dmitrymomot/storykit/svc/usage"
)

func run(ctx context.Context) error {
	var cfg serverConfig
	if err := loadConfig(&cfg); err != nil {
		return err
	}

	log := logger.New(
		logger.WithLevelName(cfg.App.LogLevel),
		logger.WithFormat(cfg.App.LogFormat),
		logger.WithEnvironment(cfg.App.Env, cfg.App.ServiceName),
		logger.WithContextExtractors(
			logger.ExtractString("request_id", requestid.FromContext),
			logger.ExtractString("env", environment.String),
		),
	)
	slog.SetDefault(log)

	table := tier.Default()
	if err := table.Validate(); err != nil {
		if !cfg.App.Env.IsProduction() {
			return fmt.Errorf("tier table: %w", err)
		}
		log.ErrorContext(ctx, "tier table is inconsistent, missing tiers fall back to free limits", logger.Error(err))
	}

	pool, err := pg.Connect(ctx, cfg.Postgres)
	if err != nil {
		return err
	}
	defer pool.Close()

	if cfg.Postgres.AutoMigrate {
		if err := pg.Migrate(ctx, pool, migrations.FS, cfg.Postgres, log); err != nil {
			return err
		}
	}

	checks := []httpserver.Check{{Name: "postgres", Fn: pg.Healthcheck(pool)}}

	var rdb *goredis.Client
	if cfg.useRedis() {
		rdb, err = redis.Connect(ctx, cfg.Redis)
		if err != nil {
			return err
		}
		defer rdb.Close()
		checks = append(checks, httpserver.Check{Name: "redis", Fn: redis.Healthcheck(rdb)})
	}

	for _, id := range cfg.Entitlement.RejectedBypassIDs() {
		log.WarnContext(ctx, "ignoring malformed dev bypass user id", slog.String("value", id))
	}
	flags, err := feature.NewMemoryProvider(cfg.Entitlement.BypassFlag())
	if err != nil {
		return fmt.Errorf("bypass flags: %w", err)
	}

	subs := subscription.NewService(subscription.NewPostgresStore(pool),
		subscription.WithLogger(log),
		subscription.WithTimeout(cfg.Entitlement.StoreTimeout),
		subscription.WithBypassFlags(flags),
	)
	usageSvc := usage.NewService(usageStore(cfg, pool, rdb),
		usage.WithLogger(log),
		usage.WithTimeout(cfg.Entitlement.StoreTimeout),
	)
	evaluator := entitlement.NewEvaluator(cfg.Entitlement, subs, usageSvc,
		entitlement.NewPostgresResourceCounter(pool),
		entitlement.WithLogger(log),
		entitlement.WithTable(table),
	)

	log.InfoContext(ctx, "entitlements configured",
		slog.Bool("payment_wall_enabled", cfg.Entitlement.PaymentWallEnabled),
		slog.Int("dev_bypass_users", len(cfg.Entitlement.BypassUserIDs())),
		slog.String("usage_backend", cfg.Entitlement.UsageBackend),
		slog.Bool("admin_routes", cfg.App.AdminToken != ""),
	)

	router := newRouter(routerDeps{
		cfg:       cfg,
		log:       log,
		evaluator: evaluator,
		subs:      subs,
		readiness: httpserver.Readiness(log, 2*time.Second, checks...),
	})

	srv := httpserver.NewFromConfig(cfg.HTTP, httpserver.WithLogger(log))
	return srv.Run(ctx, router)
}

func loadConfig(cfg *serverConfig) error {
	return errors.Join(
		config.Load(&cfg.App),
		config.Load(&cfg.HTTP),
		config.Load(&cfg.Postgres),
		config.Load(&cfg.Redis),
		config.Load(&cfg.Entitlement),
	)
}

// usageStore picks the counter backend. Redis is used only for the usage
// counters; subscriptions and ground-truth counts always live in Postgres.
func usageStore(cfg serverConfig, pool *pgxpool.Pool, rdb *goredis.Client) usage.Store {
	if cfg.Entitlement.UsageBackend == entitlement.BackendRedis && rdb != nil {
		return usage.NewRedisStore(rdb, cfg.Redis.KeyPrefix)
	}
	return usage.NewPostgresStore(pool)
}

func main() {
	if err := run(context.Background()); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Fatal(err)
	}
}
