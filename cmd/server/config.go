package main

import (
	"github.com/dmitrymomot/storykit/pkg/environment"
	"github.com/dmitrymomot/storykit/pkg/httpserver"
	"github.com/dmitrymomot/storykit/pkg/logger"
	"github.com/dmitrymomot/storykit/pkg/pg"
	"github.com/dmitrymomot/storykit/pkg/redis"
	"github.com/dmitrymomot/storykit/svc/entitlement"
)

type appConfig struct {
	Env         environment.Environment `env:"APP_ENV" envDefault:"development"`
	ServiceName string                  `env:"SERVICE_NAME" envDefault:"storykit"`
	LogLevel    string                  `env:"LOG_LEVEL" envDefault:"info"`
	LogFormat   logger.Format           `env:"LOG_FORMAT" envDefault:"json"`
	// AdminToken guards the admin routes; empty leaves them unmounted.
	AdminToken   string `env:"ADMIN_TOKEN"`
	RedisEnabled bool   `env:"REDIS_ENABLED" envDefault:"false"`
	// MetricsToken, when set, is required as a bearer token on /metrics.
	MetricsToken string `env:"METRICS_TOKEN"`
}

type serverConfig struct {
	App         appConfig
	HTTP        httpserver.Config
	Postgres    pg.Config
	Redis       redis.Config
	Entitlement entitlement.Config
}

func (c serverConfig) useRedis() bool {
	return c.App.RedisEnabled || c.Entitlement.UsageBackend == entitlement.BackendRedis
}
