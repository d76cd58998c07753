package binder_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/storykit/pkg/binder"
)

func TestJSON(t *testing.T) {
	t.Parallel()

	type request struct {
		Enabled bool   `json:"enabled"`
		Reason  string `json:"reason"`
	}

	newRequest := func(body, contentType string) *http.Request {
		r := httptest.NewRequest(http.MethodPut, "/", strings.NewReader(body))
		if contentType != "" {
			r.Header.Set("Content-Type", contentType)
		}
		return r
	}

	t.Run("decodes and trims", func(t *testing.T) {
		t.Parallel()
		var got request
		err := binder.JSON()(newRequest(`{"enabled":true,"reason":"  qa account "}`, "application/json; charset=utf-8"), &got)
		require.NoError(t, err)
		assert.True(t, got.Enabled)
		assert.Equal(t, "qa account", got.Reason)
	})

	t.Run("no body is not applicable", func(t *testing.T) {
		t.Parallel()
		var got request
		r := httptest.NewRequest(http.MethodGet, "/", nil)
		assert.ErrorIs(t, binder.JSON()(r, &got), binder.ErrBinderNotApplicable)
	})

	t.Run("missing content type", func(t *testing.T) {
		t.Parallel()
		var got request
		assert.ErrorIs(t, binder.JSON()(newRequest(`{}`, ""), &got), binder.ErrMissingContentType)
	})

	t.Run("wrong content type", func(t *testing.T) {
		t.Parallel()
		var got request
		assert.ErrorIs(t, binder.JSON()(newRequest(`{}`, "text/plain"), &got), binder.ErrUnsupportedMediaType)
	})

	t.Run("unknown field", func(t *testing.T) {
		t.Parallel()
		var got request
		err := binder.JSON()(newRequest(`{"enabled":true,"tier":"pro"}`, "application/json"), &got)
		assert.ErrorIs(t, err, binder.ErrFailedToParseJSON)
	})

	t.Run("trailing data", func(t *testing.T) {
		t.Parallel()
		var got request
		err := binder.JSON()(newRequest(`{"enabled":true}{"enabled":false}`, "application/json"), &got)
		assert.ErrorIs(t, err, binder.ErrFailedToParseJSON)
	})

	t.Run("too large", func(t *testing.T) {
		t.Parallel()
		var got request
		body := `{"reason":"` + strings.Repeat("a", binder.DefaultMaxJSONSize) + `"}`
		err := binder.JSON()(newRequest(body, "application/json"), &got)
		assert.ErrorIs(t, err, binder.ErrFailedToParseJSON)
	})
}
