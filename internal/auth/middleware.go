// ABOUTME: HTTP middleware for bearer token authentication on API endpoints
// ABOUTME: Extracts X-API-TOKEN, resolves the user, and adds it to the request context

package auth

import (
	"errors"
	"net/http"
)

// Middleware creates an HTTP middleware that authenticates every request via
// the X-API-TOKEN header. On success the resolved user is attached to the
// request context with WithUser; handlers pass it explicitly into services.
// All failures collapse to the same 401 body to prevent enumeration.
func Middleware(authenticator *Authenticator) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := r.Header.Get(HeaderName)

			user, err := authenticator.Authenticate(r.Context(), token)
			if errors.Is(err, ErrUnauthorized) {
				writeUnauthorized(w)
				return
			}
			if err != nil {
				w.Header().Set("Content-Type", "application/json")
				http.Error(w, `{"errors":"internal server error"}`, http.StatusInternalServerError)
				return
			}

			next.ServeHTTP(w, r.WithContext(WithUser(r.Context(), user)))
		})
	}
}

// writeUnauthorized writes the uniform 401 response body.
func writeUnauthorized(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "application/json")
	http.Error(w, `{"errors":"unauthorized"}`, http.StatusUnauthorized)
}
