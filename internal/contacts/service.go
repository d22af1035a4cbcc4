// ABOUTME: Contact service performing ownership-scoped CRUD on contact records
// ABOUTME: Every read and mutation routes through the owner-scoped store lookup

package contacts

import (
	"context"
	"log/slog"

	"github.com/google/uuid"

	"github.com/2389/rolodex/internal/store"
	"github.com/2389/rolodex/internal/validate"
)

// Draft is the mutable field set of a contact, supplied by the client on
// create and update. Any id in the payload is ignored: the addressed
// resource id always wins.
type Draft struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Phone     string `json:"phone"`
	Email     string `json:"email"`
}

// Projection is the subset of a contact's fields returned to callers.
type Projection struct {
	ID        string `json:"id"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name,omitempty"`
	Phone     string `json:"phone,omitempty"`
	Email     string `json:"email,omitempty"`
}

// Service manages contact records scoped to their owning user.
type Service struct {
	store  store.Store
	logger *slog.Logger
}

// NewService creates a contact Service backed by the given store.
func NewService(st store.Store) *Service {
	return &Service{
		store:  st,
		logger: slog.Default().With("component", "contacts"),
	}
}

// validateDraft checks the contact field constraints.
func validateDraft(draft Draft) error {
	var v validate.Violations
	v.Required("first_name", draft.FirstName)
	v.MaxLen("first_name", draft.FirstName, 100)
	v.MaxLen("last_name", draft.LastName, 100)
	v.MaxLen("phone", draft.Phone, 100)
	v.Phone("phone", draft.Phone)
	v.MaxLen("email", draft.Email, 100)
	v.Email("email", draft.Email)
	return v.AsError()
}

func toProjection(contact *store.Contact) *Projection {
	return &Projection{
		ID:        contact.ID,
		FirstName: contact.FirstName,
		LastName:  contact.LastName,
		Phone:     contact.Phone,
		Email:     contact.Email,
	}
}

// Create validates the draft and persists a new contact with a generated id
// and the given owner.
func (s *Service) Create(ctx context.Context, owner *store.User, draft Draft) (*Projection, error) {
	if err := validateDraft(draft); err != nil {
		return nil, err
	}

	contact := &store.Contact{
		ID:        uuid.New().String(),
		Username:  owner.Username,
		FirstName: draft.FirstName,
		LastName:  draft.LastName,
		Phone:     draft.Phone,
		Email:     draft.Email,
	}
	if err := s.store.CreateContact(ctx, contact); err != nil {
		return nil, err
	}

	s.logger.Debug("created contact", "id", contact.ID, "owner", owner.Username)
	return toProjection(contact), nil
}

// Get returns the contact matching both the id and the owner.
// Returns store.ErrContactNotFound on any miss.
func (s *Service) Get(ctx context.Context, owner *store.User, id string) (*Projection, error) {
	contact, err := s.store.GetContact(ctx, owner.Username, id)
	if err != nil {
		return nil, err
	}
	return toProjection(contact), nil
}

// Update validates the draft and overwrites the mutable fields of the
// addressed contact. The contact id comes from the caller's addressed
// resource, never from payload content.
func (s *Service) Update(ctx context.Context, owner *store.User, id string, draft Draft) (*Projection, error) {
	if err := validateDraft(draft); err != nil {
		return nil, err
	}

	contact := &store.Contact{
		ID:        id,
		Username:  owner.Username,
		FirstName: draft.FirstName,
		LastName:  draft.LastName,
		Phone:     draft.Phone,
		Email:     draft.Email,
	}
	if err := s.store.UpdateContact(ctx, contact); err != nil {
		return nil, err
	}

	s.logger.Debug("updated contact", "id", id, "owner", owner.Username)
	return toProjection(contact), nil
}

// Delete removes the contact matching both the id and the owner.
func (s *Service) Delete(ctx context.Context, owner *store.User, id string) error {
	if err := s.store.DeleteContact(ctx, owner.Username, id); err != nil {
		return err
	}

	s.logger.Debug("deleted contact", "id", id, "owner", owner.Username)
	return nil
}

// List returns all contacts owned by the user.
func (s *Service) List(ctx context.Context, owner *store.User) ([]*Projection, error) {
	contacts, err := s.store.ListContacts(ctx, owner.Username)
	if err != nil {
		return nil, err
	}

	projections := make([]*Projection, len(contacts))
	for i, contact := range contacts {
		projections[i] = toProjection(contact)
	}
	return projections, nil
}
