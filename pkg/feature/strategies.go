package feature

import (
	"context"
	"slices"
	"strings"
)

// AllowListStrategy enables a flag only for listed subjects.
// An empty subject never matches.
type AllowListStrategy struct {
	allow []string
}

// NewAllowListStrategy builds a strategy from subjects. Blank entries are
// dropped and the rest are trimmed, so raw env lists can be passed through.
func NewAllowListStrategy(subjects []string) *AllowListStrategy {
	s := &AllowListStrategy{}
	for _, v := range subjects {
		if v = strings.TrimSpace(v); v != "" {
			s.allow = append(s.allow, v)
		}
	}
	return s
}

func (s *AllowListStrategy) Evaluate(ctx context.Context) (bool, error) {
	subject := SubjectFromContext(ctx)
	if subject == "" {
		return false, nil
	}
	return slices.Contains(s.allow, subject), nil
}

// Len returns the number of listed subjects.
func (s *AllowListStrategy) Len() int {
	return len(s.allow)
}
