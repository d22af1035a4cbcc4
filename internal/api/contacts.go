// ABOUTME: HTTP handlers for ownership-scoped contact CRUD
// ABOUTME: The path's contactId always wins over any id in the payload

package api

import (
	"net/http"

	"github.com/2389/rolodex/internal/auth"
	"github.com/2389/rolodex/internal/contacts"
)

// handleCreateContact handles POST /api/contacts.
func (s *Server) handleCreateContact(w http.ResponseWriter, r *http.Request) {
	user := auth.MustFromContext(r.Context())

	var draft contacts.Draft
	if !s.decodeJSON(w, r, &draft) {
		return
	}

	projection, err := s.contacts.Create(r.Context(), user, draft)
	if err != nil {
		s.mapError(w, err)
		return
	}

	s.writeData(w, http.StatusOK, projection)
}

// handleListContacts handles GET /api/contacts.
func (s *Server) handleListContacts(w http.ResponseWriter, r *http.Request) {
	user := auth.MustFromContext(r.Context())

	projections, err := s.contacts.List(r.Context(), user)
	if err != nil {
		s.mapError(w, err)
		return
	}
	if projections == nil {
		projections = []*contacts.Projection{}
	}

	s.writeData(w, http.StatusOK, projections)
}

// handleGetContact handles GET /api/contacts/{contactId}.
func (s *Server) handleGetContact(w http.ResponseWriter, r *http.Request) {
	user := auth.MustFromContext(r.Context())

	projection, err := s.contacts.Get(r.Context(), user, r.PathValue("contactId"))
	if err != nil {
		s.mapError(w, err)
		return
	}

	s.writeData(w, http.StatusOK, projection)
}

// handleUpdateContact handles PUT /api/contacts/{contactId}. The draft is
// decoded without an id field; the addressed contactId is authoritative.
func (s *Server) handleUpdateContact(w http.ResponseWriter, r *http.Request) {
	user := auth.MustFromContext(r.Context())

	var draft contacts.Draft
	if !s.decodeJSON(w, r, &draft) {
		return
	}

	projection, err := s.contacts.Update(r.Context(), user, r.PathValue("contactId"), draft)
	if err != nil {
		s.mapError(w, err)
		return
	}

	s.writeData(w, http.StatusOK, projection)
}

// handleDeleteContact handles DELETE /api/contacts/{contactId}.
func (s *Server) handleDeleteContact(w http.ResponseWriter, r *http.Request) {
	user := auth.MustFromContext(r.Context())

	if err := s.contacts.Delete(r.Context(), user, r.PathValue("contactId")); err != nil {
		s.mapError(w, err)
		return
	}

	s.writeData(w, http.StatusOK, "OK")
}
