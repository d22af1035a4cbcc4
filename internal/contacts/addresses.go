// ABOUTME: Address sub-resource operations gated by the parent contact's owner
// ABOUTME: Shares the ownership-chain invariant with the contact service

package contacts

import (
	"context"

	"github.com/google/uuid"

	"github.com/2389/rolodex/internal/store"
	"github.com/2389/rolodex/internal/validate"
)

// AddressDraft is the mutable field set of an address.
type AddressDraft struct {
	Street     string `json:"street"`
	City       string `json:"city"`
	Province   string `json:"province"`
	Country    string `json:"country"`
	PostalCode string `json:"postal_code"`
}

// AddressProjection is the subset of an address's fields returned to callers.
type AddressProjection struct {
	ID         string `json:"id"`
	Street     string `json:"street,omitempty"`
	City       string `json:"city,omitempty"`
	Province   string `json:"province,omitempty"`
	Country    string `json:"country"`
	PostalCode string `json:"postal_code"`
}

// validateAddressDraft checks the address field constraints.
func validateAddressDraft(draft AddressDraft) error {
	var v validate.Violations
	v.MaxLen("street", draft.Street, 255)
	v.MaxLen("city", draft.City, 100)
	v.MaxLen("province", draft.Province, 100)
	v.Required("country", draft.Country)
	v.MaxLen("country", draft.Country, 100)
	v.Required("postal_code", draft.PostalCode)
	v.MaxLen("postal_code", draft.PostalCode, 10)
	return v.AsError()
}

func toAddressProjection(address *store.Address) *AddressProjection {
	return &AddressProjection{
		ID:         address.ID,
		Street:     address.Street,
		City:       address.City,
		Province:   address.Province,
		Country:    address.Country,
		PostalCode: address.PostalCode,
	}
}

// CreateAddress validates the draft and persists a new address under the
// given contact, but only if the contact is owned by the caller.
// Returns store.ErrContactNotFound if it isn't.
func (s *Service) CreateAddress(ctx context.Context, owner *store.User, contactID string, draft AddressDraft) (*AddressProjection, error) {
	if err := validateAddressDraft(draft); err != nil {
		return nil, err
	}

	address := &store.Address{
		ID:         uuid.New().String(),
		ContactID:  contactID,
		Street:     draft.Street,
		City:       draft.City,
		Province:   draft.Province,
		Country:    draft.Country,
		PostalCode: draft.PostalCode,
	}
	if err := s.store.CreateAddress(ctx, owner.Username, address); err != nil {
		return nil, err
	}

	s.logger.Debug("created address", "id", address.ID, "contact_id", contactID)
	return toAddressProjection(address), nil
}

// GetAddress returns the address matching the id, its parent contact, and the
// contact's owner.
func (s *Service) GetAddress(ctx context.Context, owner *store.User, contactID, addressID string) (*AddressProjection, error) {
	address, err := s.store.GetAddress(ctx, owner.Username, contactID, addressID)
	if err != nil {
		return nil, err
	}
	return toAddressProjection(address), nil
}

// UpdateAddress validates the draft and overwrites the mutable fields of the
// addressed address. The address id comes from the caller's addressed
// resource, never from payload content.
func (s *Service) UpdateAddress(ctx context.Context, owner *store.User, contactID, addressID string, draft AddressDraft) (*AddressProjection, error) {
	if err := validateAddressDraft(draft); err != nil {
		return nil, err
	}

	address := &store.Address{
		ID:         addressID,
		ContactID:  contactID,
		Street:     draft.Street,
		City:       draft.City,
		Province:   draft.Province,
		Country:    draft.Country,
		PostalCode: draft.PostalCode,
	}
	if err := s.store.UpdateAddress(ctx, owner.Username, address); err != nil {
		return nil, err
	}

	s.logger.Debug("updated address", "id", addressID, "contact_id", contactID)
	return toAddressProjection(address), nil
}

// DeleteAddress removes the address, gated by the parent contact's owner.
func (s *Service) DeleteAddress(ctx context.Context, owner *store.User, contactID, addressID string) error {
	if err := s.store.DeleteAddress(ctx, owner.Username, contactID, addressID); err != nil {
		return err
	}

	s.logger.Debug("deleted address", "id", addressID, "contact_id", contactID)
	return nil
}

// ListAddresses returns all addresses of a contact owned by the caller.
func (s *Service) ListAddresses(ctx context.Context, owner *store.User, contactID string) ([]*AddressProjection, error) {
	addresses, err := s.store.ListAddresses(ctx, owner.Username, contactID)
	if err != nil {
		return nil, err
	}

	projections := make([]*AddressProjection, len(addresses))
	for i, address := range addresses {
		projections[i] = toAddressProjection(address)
	}
	return projections, nil
}
