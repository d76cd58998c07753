package subscription

import (
	"log/slog"
	"time"

	"github.com/dmitrymomot/storykit/pkg/feature"
)

// Option configures a Service.
type Option func(*Service)

func WithLogger(l *slog.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.log = l
		}
	}
}

// WithTimeout bounds every store call. Non-positive values are ignored.
func WithTimeout(d time.Duration) Option {
	return func(s *Service) {
		if d > 0 {
			s.timeout = d
		}
	}
}

// WithBypassFlags consults the BypassFlag flag of p before the stored bypass
// row. Use it for config-driven allowlists.
func WithBypassFlags(p feature.Provider) Option {
	return func(s *Service) {
		s.flags = p
	}
}
