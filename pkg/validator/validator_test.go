package validator_test

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/storykit/pkg/validator"
)

func TestApply(t *testing.T) {
	t.Parallel()

	t.Run("all rules pass", func(t *testing.T) {
		t.Parallel()
		enabled := true
		err := validator.Apply(
			validator.NonNilUUID("user_id", uuid.New()),
			validator.RequiredComparable("enabled", &enabled),
			validator.InList("tier", "creator", []string{"free", "creator", "pro"}),
			validator.MaxLenString("reason", "qa", 10),
		)
		assert.NoError(t, err)
	})

	t.Run("failures are collected in rule order", func(t *testing.T) {
		t.Parallel()
		var enabled *bool
		err := validator.Apply(
			validator.NonNilUUID("user_id", uuid.Nil),
			validator.RequiredComparable("enabled", enabled),
			validator.InList("tier", "platinum", []string{"free", "creator", "pro"}),
			validator.MaxLenString("reason", strings.Repeat("é", 11), 10),
		)
		require.Error(t, err)
		assert.True(t, validator.IsValidationError(err))

		verrs := validator.ExtractValidationErrors(err)
		require.Len(t, verrs, 4)
		assert.Equal(t, []string{"user_id", "enabled", "tier", "reason"}, verrs.Fields())
		assert.True(t, verrs.Has("tier"))
		assert.False(t, verrs.Has("status"))
		assert.Equal(t, "validation.in_list", verrs[2].TranslationKey)
		assert.Contains(t, err.Error(), "enabled: field is required")
	})

	t.Run("max length counts runes", func(t *testing.T) {
		t.Parallel()
		assert.NoError(t, validator.Apply(validator.MaxLenString("reason", strings.Repeat("é", 10), 10)))
	})
}

func TestExtractValidationErrors(t *testing.T) {
	t.Parallel()

	assert.Nil(t, validator.ExtractValidationErrors(nil))
	assert.Nil(t, validator.ExtractValidationErrors(errors.New("boom")))
	assert.False(t, validator.IsValidationError(errors.New("boom")))

	wrapped := fmt.Errorf("set tier: %w", validator.Apply(validator.NonNilUUID("user_id", uuid.Nil)))
	assert.True(t, validator.IsValidationError(wrapped))
	assert.Equal(t, []string{"user_id"}, validator.ExtractValidationErrors(wrapped).Fields())
}
