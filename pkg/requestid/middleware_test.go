package requestid_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/storykit/pkg/requestid"
)

func serve(t *testing.T, inbound string) (ctxID, headerID string) {
	t.Helper()
	h := requestid.Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctxID = requestid.FromContext(r.Context())
	}))
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if inbound != "" {
		req.Header.Set(requestid.Header, inbound)
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return ctxID, rec.Header().Get(requestid.Header)
}

func TestMiddleware(t *testing.T) {
	t.Parallel()

	t.Run("generates uuid when missing", func(t *testing.T) {
		t.Parallel()
		ctxID, headerID := serve(t, "")
		require.NotEmpty(t, ctxID)
		assert.Equal(t, ctxID, headerID)
		_, err := uuid.Parse(ctxID)
		assert.NoError(t, err)
	})

	t.Run("keeps valid inbound id", func(t *testing.T) {
		t.Parallel()
		ctxID, headerID := serve(t, "req_123-abc")
		assert.Equal(t, "req_123-abc", ctxID)
		assert.Equal(t, "req_123-abc", headerID)
	})

	t.Run("replaces malformed inbound id", func(t *testing.T) {
		t.Parallel()
		for _, bad := range []string{"<script>", "a b", strings.Repeat("x", 129)} {
			ctxID, _ := serve(t, bad)
			assert.NotEqual(t, bad, ctxID)
			assert.NotEmpty(t, ctxID)
		}
	})
}
