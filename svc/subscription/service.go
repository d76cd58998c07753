package subscription

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/dmitrymomot/storykit/pkg/feature"
	"github.com/dmitrymomot/storykit/pkg/logger"
	"github.com/dmitrymomot/storykit/pkg/pg"
	"github.com/dmitrymomot/storykit/pkg/tier"
)

// BypassFlag is the feature flag holding the configured bypass allowlist.
const BypassFlag = "dev_bypass"

const defaultTimeout = 3 * time.Second

// Service resolves a user's subscription and dev bypass state. Lookups never
// fail: storage problems are logged and answered with safe defaults.
type Service struct {
	store   Store
	flags   feature.Provider
	log     *slog.Logger
	timeout time.Duration
}

// NewService panics if store is nil.
func NewService(store Store, opts ...Option) *Service {
	if store == nil {
		panic("subscription: store is required")
	}
	s := &Service{
		store:   store,
		log:     logger.Discard(),
		timeout: defaultTimeout,
	}
	for _, opt := range opts {
		opt(s)
	}
	s.log = s.log.With(logger.Component("subscription"))
	return s
}

// GetSubscription returns the user's subscription, creating the free default
// on first sight. A lost insert race is resolved by re-reading. Any other
// storage failure yields an unsaved free/active record so callers keep
// working.
func (s *Service) GetSubscription(ctx context.Context, userID uuid.UUID) *Subscription {
	sub, err := s.get(ctx, userID)
	if err == nil {
		return normalize(sub)
	}
	if !errors.Is(err, ErrNotFound) {
		s.log.ErrorContext(ctx, "failed to load subscription, using free tier",
			logger.UserID(userID), logger.Error(err), slog.Bool("timeout", pg.IsTimeoutError(err)))
		return Default(userID)
	}

	fresh := Default(userID)
	err = s.insert(ctx, fresh)
	switch {
	case err == nil:
		s.log.InfoContext(ctx, "created default subscription", logger.UserID(userID))
		return fresh
	case errors.Is(err, ErrAlreadyExists):
		sub, err = s.get(ctx, userID)
		if err == nil {
			return normalize(sub)
		}
	}

	s.log.ErrorContext(ctx, "failed to create subscription, using free tier",
		logger.UserID(userID), logger.Error(err), slog.Bool("timeout", pg.IsTimeoutError(err)))
	return fresh
}

// HasDevBypass reports whether entitlement checks are disabled for the user,
// either by the configured allowlist or by a stored row. Errors count as no
// bypass.
func (s *Service) HasDevBypass(ctx context.Context, userID uuid.UUID) bool {
	if s.flags != nil {
		ok, err := s.flags.IsEnabled(feature.WithSubject(ctx, userID.String()), BypassFlag)
		if err != nil && !errors.Is(err, feature.ErrFlagNotFound) {
			s.log.WarnContext(ctx, "bypass flag evaluation failed", logger.UserID(userID), logger.Error(err))
		}
		if ok {
			return true
		}
	}

	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	b, err := s.store.GetDevBypass(ctx, userID)
	if err != nil {
		if !errors.Is(err, ErrNotFound) {
			s.log.ErrorContext(ctx, "failed to load dev bypass",
				logger.UserID(userID), logger.Error(err), slog.Bool("timeout", pg.IsTimeoutError(err)))
		}
		return false
	}
	return b.Enabled
}

// SetDevBypass stores the bypass state for the user.
func (s *Service) SetDevBypass(ctx context.Context, userID uuid.UUID, enabled bool, reason string) error {
	if userID == uuid.Nil {
		return ErrInvalidUserID
	}

	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	b := &DevBypass{
		UserID:    userID,
		Enabled:   enabled,
		Reason:    strings.TrimSpace(reason),
		UpdatedAt: time.Now().UTC(),
	}
	if err := s.store.UpsertDevBypass(ctx, b); err != nil {
		return errors.Join(ErrStoreFailure, err)
	}

	s.log.InfoContext(ctx, "dev bypass updated",
		logger.UserID(userID),
		slog.Bool("enabled", enabled),
		slog.String("reason", b.Reason),
	)
	return nil
}

// SetTier records a tier change made outside the billing flow.
func (s *Service) SetTier(ctx context.Context, userID uuid.UUID, t tier.Tier, status Status) error {
	if userID == uuid.Nil {
		return ErrInvalidUserID
	}

	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	if err := s.store.SetTier(ctx, userID, tier.Parse(string(t)), status); err != nil {
		return errors.Join(ErrStoreFailure, err)
	}
	return nil
}

func (s *Service) get(ctx context.Context, userID uuid.UUID) (*Subscription, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()
	return s.store.Get(ctx, userID)
}

func (s *Service) insert(ctx context.Context, sub *Subscription) error {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()
	return s.store.Insert(ctx, sub)
}

// normalize maps tier values this build does not know to free.
func normalize(sub *Subscription) *Subscription {
	sub.Tier = tier.Parse(string(sub.Tier))
	return sub
}
