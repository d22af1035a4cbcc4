// ABOUTME: HTTP handlers for address sub-resources of a contact
// ABOUTME: Visibility is gated by the parent contact's owner on every path

package api

import (
	"net/http"

	"github.com/2389/rolodex/internal/auth"
	"github.com/2389/rolodex/internal/contacts"
)

// handleCreateAddress handles POST /api/contacts/{contactId}/addresses.
func (s *Server) handleCreateAddress(w http.ResponseWriter, r *http.Request) {
	user := auth.MustFromContext(r.Context())

	var draft contacts.AddressDraft
	if !s.decodeJSON(w, r, &draft) {
		return
	}

	projection, err := s.contacts.CreateAddress(r.Context(), user, r.PathValue("contactId"), draft)
	if err != nil {
		s.mapError(w, err)
		return
	}

	s.writeData(w, http.StatusOK, projection)
}

// handleListAddresses handles GET /api/contacts/{contactId}/addresses.
func (s *Server) handleListAddresses(w http.ResponseWriter, r *http.Request) {
	user := auth.MustFromContext(r.Context())

	projections, err := s.contacts.ListAddresses(r.Context(), user, r.PathValue("contactId"))
	if err != nil {
		s.mapError(w, err)
		return
	}
	if projections == nil {
		projections = []*contacts.AddressProjection{}
	}

	s.writeData(w, http.StatusOK, projections)
}

// handleGetAddress handles GET /api/contacts/{contactId}/addresses/{addressId}.
func (s *Server) handleGetAddress(w http.ResponseWriter, r *http.Request) {
	user := auth.MustFromContext(r.Context())

	projection, err := s.contacts.GetAddress(r.Context(), user, r.PathValue("contactId"), r.PathValue("addressId"))
	if err != nil {
		s.mapError(w, err)
		return
	}

	s.writeData(w, http.StatusOK, projection)
}

// handleUpdateAddress handles PUT /api/contacts/{contactId}/addresses/{addressId}.
func (s *Server) handleUpdateAddress(w http.ResponseWriter, r *http.Request) {
	user := auth.MustFromContext(r.Context())

	var draft contacts.AddressDraft
	if !s.decodeJSON(w, r, &draft) {
		return
	}

	projection, err := s.contacts.UpdateAddress(r.Context(), user, r.PathValue("contactId"), r.PathValue("addressId"), draft)
	if err != nil {
		s.mapError(w, err)
		return
	}

	s.writeData(w, http.StatusOK, projection)
}

// handleDeleteAddress handles DELETE /api/contacts/{contactId}/addresses/{addressId}.
func (s *Server) handleDeleteAddress(w http.ResponseWriter, r *http.Request) {
	user := auth.MustFromContext(r.Context())

	if err := s.contacts.DeleteAddress(r.Context(), user, r.PathValue("contactId"), r.PathValue("addressId")); err != nil {
		s.mapError(w, err)
		return
	}

	s.writeData(w, http.StatusOK, "OK")
}
