package httpserver

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/dmitrymomot/storykit/pkg/async"
	"github.com/dmitrymomot/storykit/pkg/logger"
)

// Check is a named readiness dependency.
type Check struct {
	Name string
	Fn   func(context.Context) error
}

type healthResponse struct {
	Status string            `json:"status"`
	Checks map[string]string `json:"checks,omitempty"`
}

// Liveness always answers 200 while the process can serve HTTP.
func Liveness() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeHealth(w, http.StatusOK, healthResponse{Status: "alive"})
	}
}

// Readiness runs every check concurrently, each bounded by timeout, and
// answers 503 if any fails. Checks still running at the deadline are
// reported as "timeout".
func Readiness(log *slog.Logger, timeout time.Duration, checks ...Check) http.HandlerFunc {
	if log == nil {
		log = logger.Discard()
	}
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), timeout)
		defer cancel()

		futures := make([]*async.Future[struct{}], len(checks))
		for i, c := range checks {
			futures[i] = async.Go(ctx, func(ctx context.Context) (struct{}, error) {
				return struct{}{}, c.Fn(ctx)
			})
		}

		resp := healthResponse{Status: "ready", Checks: make(map[string]string, len(checks))}
		status := http.StatusOK
		for i, f := range futures {
			// A check that ignores its context must not hold the probe open.
			if _, err := f.AwaitContext(ctx); err != nil {
				result := "failed"
				if errors.Is(err, context.DeadlineExceeded) {
					result = "timeout"
				}
				log.ErrorContext(r.Context(), "readiness check failed",
					slog.String("check", checks[i].Name),
					slog.String("result", result),
					logger.Error(err),
				)
				resp.Checks[checks[i].Name] = result
				resp.Status = "not_ready"
				status = http.StatusServiceUnavailable
				continue
			}
			resp.Checks[checks[i].Name] = "ok"
		}

		writeHealth(w, status, resp)
	}
}

func writeHealth(w http.ResponseWriter, status int, body healthResponse) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}
