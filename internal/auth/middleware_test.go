// ABOUTME: Tests for the authentication middleware
// ABOUTME: Verifies header extraction, 401 responses, and context propagation

package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/2389/rolodex/internal/store"
)

func TestMiddleware_ValidToken(t *testing.T) {
	lookup := &fakeUserLookup{users: map[string]*store.User{
		"tok-alice": tokenUser("alice", 1<<60),
	}}
	a := NewAuthenticator(lookup)

	var seen *store.User
	handler := Middleware(a)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = MustFromContext(r.Context())
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest(http.MethodGet, "/api/users/current", nil)
	req.Header.Set(HeaderName, "tok-alice")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	require.NotNil(t, seen)
	assert.Equal(t, "alice", seen.Username)
}

func TestMiddleware_MissingHeader(t *testing.T) {
	a := NewAuthenticator(&fakeUserLookup{users: map[string]*store.User{}})

	called := false
	handler := Middleware(a)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	}))

	req := httptest.NewRequest(http.MethodGet, "/api/users/current", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.JSONEq(t, `{"errors":"unauthorized"}`, rec.Body.String())
	assert.False(t, called)
}

func TestMiddleware_ExpiredToken(t *testing.T) {
	lookup := &fakeUserLookup{users: map[string]*store.User{
		"tok-alice": tokenUser("alice", 2000),
	}}
	a := NewAuthenticator(lookup)
	a.nowMillis = func() int64 { return 3000 }

	handler := Middleware(a)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("handler must not run")
	}))

	req := httptest.NewRequest(http.MethodGet, "/api/users/current", nil)
	req.Header.Set(HeaderName, "tok-alice")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
