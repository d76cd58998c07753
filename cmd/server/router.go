package main

import (
	"crypto/subtle"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	entitlementhttp "github.com/dmitrymomot/storykit/modules/entitlement"
	"github.com/dmitrymomot/storykit/pkg/environment"
	"github.com/dmitrymomot/storykit/pkg/httpserver"
	"github.com/dmitrymomot/storykit/pkg/metrics"
	"github.com/dmitrymomot/storykit/pkg/requestid"
)

type routerDeps struct {
	cfg       serverConfig
	log       *slog.Logger
	evaluator entitlementhttp.Evaluator
	subs      entitlementhttp.Subscriptions
	readiness http.HandlerFunc
}

func newRouter(d routerDeps) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(requestid.Middleware)
	r.Use(environment.Middleware(d.cfg.App.Env))

	r.Get("/health/live", httpserver.Liveness())
	r.Get("/health/ready", d.readiness)
	r.Handle("/metrics", metricsAuth(d.cfg.App.MetricsToken, promhttp.Handler()))

	r.Group(func(r chi.Router) {
		r.Use(metrics.Middleware)
		r.Mount("/", entitlementhttp.Router(entitlementhttp.RouterOptions{
			Evaluator:      d.evaluator,
			Subscriptions:  d.subs,
			AdminToken:     d.cfg.App.AdminToken,
			Logger:         d.log,
			RequestTimeout: d.cfg.HTTP.RequestTimeout,
		}))
	})

	return r
}

// metricsAuth protects the scrape endpoint with a bearer token when one is
// configured.
func metricsAuth(token string, next http.Handler) http.Handler {
	if token == "" {
		return next
	}
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got, ok := strings.CutPrefix(r.Header.Get("Authorization"), "Bearer ")
		if !ok || subtle.ConstantTimeCompare([]byte(got), []byte(token)) != 1 {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}
		next.ServeHTTP(w, r)
	})
}
