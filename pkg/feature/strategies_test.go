package feature_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/storykit/pkg/feature"
)

func TestAllowListStrategy(t *testing.T) {
	t.Parallel()

	s := feature.NewAllowListStrategy([]string{" alice ", "", "bob"})
	assert.Equal(t, 2, s.Len())

	tests := []struct {
		name    string
		subject string
		want    bool
	}{
		{"listed", "alice", true},
		{"listed second", "bob", true},
		{"not listed", "carol", false},
		{"empty subject", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got, err := s.Evaluate(feature.WithSubject(context.Background(), tt.subject))
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
