// ABOUTME: HTTP handlers for registration and the current-user profile
// ABOUTME: Profile updates are partial; absent fields are left untouched

package api

import (
	"net/http"

	"github.com/2389/rolodex/internal/auth"
	"github.com/2389/rolodex/internal/users"
)

// handleRegister handles POST /api/users.
func (s *Server) handleRegister(w http.ResponseWriter, r *http.Request) {
	var req users.RegisterRequest
	if !s.decodeJSON(w, r, &req) {
		return
	}

	if err := s.users.Register(r.Context(), req); err != nil {
		s.mapError(w, err)
		return
	}

	s.writeData(w, http.StatusOK, "OK")
}

// handleCurrentUser handles GET /api/users/current.
func (s *Server) handleCurrentUser(w http.ResponseWriter, r *http.Request) {
	user := auth.MustFromContext(r.Context())
	s.writeData(w, http.StatusOK, s.users.Get(user))
}

// handleUpdateUser handles PATCH /api/users/current.
func (s *Server) handleUpdateUser(w http.ResponseWriter, r *http.Request) {
	user := auth.MustFromContext(r.Context())

	var req users.UpdateRequest
	if !s.decodeJSON(w, r, &req) {
		return
	}

	profile, err := s.users.Update(r.Context(), user, req)
	if err != nil {
		s.mapError(w, err)
		return
	}

	s.writeData(w, http.StatusOK, profile)
}
