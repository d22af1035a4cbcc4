// ABOUTME: HTTP handlers for login and logout
// ABOUTME: Login returns the opaque token with its epoch-millisecond expiry

package api

import (
	"net/http"

	"github.com/2389/rolodex/internal/auth"
)

// loginRequest is the JSON request body for POST /api/auth/login.
type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// tokenResponse is the JSON data payload for a successful login.
type tokenResponse struct {
	Token     string `json:"token"`
	ExpiresAt int64  `json:"expires_at"`
}

// handleLogin handles POST /api/auth/login.
func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if !s.decodeJSON(w, r, &req) {
		return
	}

	session, err := s.sessions.Login(r.Context(), req.Username, req.Password)
	if err != nil {
		s.mapError(w, err)
		return
	}

	s.writeData(w, http.StatusOK, tokenResponse{
		Token:     session.Token,
		ExpiresAt: session.ExpiresAt,
	})
}

// handleLogout handles DELETE /api/auth/logout.
func (s *Server) handleLogout(w http.ResponseWriter, r *http.Request) {
	user := auth.MustFromContext(r.Context())

	if err := s.sessions.Logout(r.Context(), user); err != nil {
		s.mapError(w, err)
		return
	}

	s.writeData(w, http.StatusOK, "OK")
}
