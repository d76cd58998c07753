package entitlement

import (
	"crypto/subtle"
	"net/http"
	"strings"

	"github.com/dmitrymomot/storykit/handler"
)

// AdminAuth requires "Authorization: Bearer <token>". The comparison is
// constant-time; an empty configured token rejects every request.
func AdminAuth(token string) func(http.Handler) http.Handler {
	expected := []byte(token)
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			got, ok := strings.CutPrefix(r.Header.Get("Authorization"), "Bearer ")
			if !ok || len(expected) == 0 || subtle.ConstantTimeCompare([]byte(got), expected) != 1 {
				_ = handler.JSONError(handler.ErrUnauthorized).Render(w, r)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
