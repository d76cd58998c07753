package entitlement

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"

	"github.com/dmitrymomot/storykit/handler"
	"github.com/dmitrymomot/storykit/pkg/logger"
	"github.com/dmitrymomot/storykit/pkg/tier"
	svc "github.com/dmitrymomot/storykit/svc/entitlement"
	"github.com/dmitrymomot/storykit/svc/subscription"
)

// Evaluator is the part of svc/entitlement the HTTP module serves.
type Evaluator interface {
	CanCreate(ctx context.Context, userID uuid.UUID, res svc.Resource) svc.Decision
	TrackCreation(ctx context.Context, userID uuid.UUID, res svc.Resource) bool
	GetUsageSummary(ctx context.Context, userID uuid.UUID) svc.Summary
}

// Subscriptions is the write side used by the admin routes.
type Subscriptions interface {
	SetDevBypass(ctx context.Context, userID uuid.UUID, enabled bool, reason string) error
	SetTier(ctx context.Context, userID uuid.UUID, t tier.Tier, status subscription.Status) error
}

// RouterOptions configures the entitlement module. Evaluator is required;
// admin routes are mounted only when both Subscriptions and AdminToken are set.
type RouterOptions struct {
	Evaluator      Evaluator
	Subscriptions  Subscriptions
	AdminToken     string
	Logger         *slog.Logger
	RequestTimeout time.Duration
}

const defaultRequestTimeout = 10 * time.Second

// Router creates the entitlement module router.
//
//	r := chi.NewRouter()
//	r.Use(requestid.Middleware, metrics.Middleware)
//	r.Mount("/", entitlement.Router(entitlement.RouterOptions{
//	    Evaluator:     evaluator,
//	    Subscriptions: subscriptions,
//	    AdminToken:    cfg.AdminToken,
//	}))
func Router(opts RouterOptions) chi.Router {
	if opts.Evaluator == nil {
		panic("entitlement: evaluator is required")
	}
	if opts.Logger == nil {
		opts.Logger = logger.Discard()
	}
	if opts.RequestTimeout <= 0 {
		opts.RequestTimeout = defaultRequestTimeout
	}

	h := &handlers{
		evaluator: opts.Evaluator,
		subs:      opts.Subscriptions,
		log:       opts.Logger.With(logger.Component("entitlement_http")),
	}
	h.errorHandler = handler.NewErrorHandler(h.log)

	r := chi.NewRouter()
	r.Use(middleware.Timeout(opts.RequestTimeout))
	r.Use(Language)

	r.Route("/users/{userID}", func(r chi.Router) {
		r.Get("/entitlements/{resource}", wrap(h.errorHandler, h.check))
		r.Post("/usage/{resource}", wrap(h.errorHandler, h.track))
		r.Get("/usage", wrap(h.errorHandler, h.summary))
	})

	if opts.Subscriptions != nil && opts.AdminToken != "" {
		r.Route("/admin/users/{userID}", func(r chi.Router) {
			r.Use(AdminAuth(opts.AdminToken))
			r.Put("/bypass", wrap(h.errorHandler, h.setBypass))
			r.Put("/tier", wrap(h.errorHandler, h.setTier))
		})
	}

	return r
}

// Language selects the language of reason strings from Accept-Language.
func Language(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		tag := svc.MatchLanguage(r.Header.Get("Accept-Language"))
		next.ServeHTTP(w, r.WithContext(svc.WithLanguage(r.Context(), tag)))
	})
}
