package entitlement

import (
	"log/slog"

	"github.com/dmitrymomot/storykit/pkg/tier"
)

type Option func(*Evaluator)

func WithLogger(l *slog.Logger) Option {
	return func(e *Evaluator) {
		if l != nil {
			e.log = l
		}
	}
}

// WithTable replaces the embedded tier table.
func WithTable(t *tier.Table) Option {
	return func(e *Evaluator) {
		if t != nil {
			e.table = t
		}
	}
}
