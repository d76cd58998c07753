package usage

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/dmitrymomot/storykit/pkg/logger"
	"github.com/dmitrymomot/storykit/pkg/period"
	"github.com/dmitrymomot/storykit/pkg/pg"
)

const defaultTimeout = 3 * time.Second

// Service reads and advances period-scoped usage counters. Counters only grow;
// deleting a resource does not give its slot back within the window.
type Service struct {
	store   Store
	now     func() time.Time
	log     *slog.Logger
	timeout time.Duration
}

// NewService panics if store is nil.
func NewService(store Store, opts ...Option) *Service {
	if store == nil {
		panic("usage: store is required")
	}
	s := &Service{
		store:   store,
		now:     func() time.Time { return time.Now().UTC() },
		log:     logger.Discard(),
		timeout: defaultTimeout,
	}
	for _, opt := range opts {
		opt(s)
	}
	s.log = s.log.With(logger.Component("usage"))
	return s
}

// GetUsageCount returns the count for the window containing now. Missing
// counters and storage failures read as zero.
func (s *Service) GetUsageCount(ctx context.Context, userID uuid.UUID, res Resource, p period.Period) int64 {
	key, ok := s.key(ctx, userID, res, p)
	if !ok {
		return 0
	}

	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	n, err := s.store.Get(ctx, key)
	if err != nil {
		if !errors.Is(err, ErrNotFound) {
			s.log.ErrorContext(ctx, "failed to read usage counter",
				logger.UserID(userID), logger.Resource(res), logger.Period(p), logger.Error(err),
				slog.Bool("timeout", pg.IsTimeoutError(err)))
		}
		return 0
	}
	return n
}

// IncrementUsage adds one to the counter of the window containing now. It
// reports false on failure; the failure is logged and never propagated.
func (s *Service) IncrementUsage(ctx context.Context, userID uuid.UUID, res Resource, p period.Period) bool {
	key, ok := s.key(ctx, userID, res, p)
	if !ok {
		return false
	}

	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	n, err := s.store.Increment(ctx, key, period.End(p, key.PeriodStart))
	if err != nil {
		s.log.ErrorContext(ctx, "failed to increment usage counter",
			logger.UserID(userID), logger.Resource(res), logger.Period(p), logger.Error(err),
			slog.Bool("timeout", pg.IsTimeoutError(err)))
		return false
	}

	s.log.DebugContext(ctx, "usage incremented",
		logger.UserID(userID), logger.Resource(res), logger.Period(p), slog.Int64("count", n))
	return true
}

// Counters lists the user's stored counters.
func (s *Service) Counters(ctx context.Context, userID uuid.UUID) ([]Counter, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()
	return s.store.List(ctx, userID)
}

// Window returns the window of p that contains the service's current time.
func (s *Service) Window(p period.Period) period.Window {
	return period.WindowAt(p, s.now())
}

func (s *Service) key(ctx context.Context, userID uuid.UUID, res Resource, p period.Period) (Key, bool) {
	if !res.IsValid() || !p.IsValid() {
		s.log.WarnContext(ctx, "invalid usage key",
			logger.UserID(userID), logger.Resource(res), logger.Period(p))
		return Key{}, false
	}
	return Key{
		UserID:      userID,
		Resource:    res,
		Period:      p,
		PeriodStart: period.Start(p, s.now()),
	}, true
}
