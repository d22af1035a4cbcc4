// ABOUTME: Address store methods for the SQLite store
// ABOUTME: Operations are scoped through the parent contact's owner in one predicate

package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

// CreateAddress inserts an address under a contact, but only if that contact
// is owned by the given user. The ownership guard and the insert are a single
// atomic statement.
// Returns ErrContactNotFound if the contact doesn't exist or isn't owned by
// the user.
func (s *SQLiteStore) CreateAddress(ctx context.Context, username string, address *Address) error {
	query := `
		INSERT INTO addresses (id, contact_id, street, city, province, country, postal_code)
		SELECT ?, ?, ?, ?, ?, ?, ?
		WHERE EXISTS (
			SELECT 1 FROM contacts WHERE id = ? AND username = ?
		)
	`

	result, err := s.db.ExecContext(ctx, query,
		address.ID,
		address.ContactID,
		nullString(address.Street),
		nullString(address.City),
		nullString(address.Province),
		address.Country,
		address.PostalCode,
		address.ContactID,
		username,
	)
	if err != nil {
		return fmt.Errorf("inserting address: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("getting rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return ErrContactNotFound
	}

	s.logger.Debug("created address", "id", address.ID, "contact_id", address.ContactID)
	return nil
}

// GetAddress retrieves an address matching the address id, its parent contact,
// and the contact's owner in one joined predicate.
// Returns ErrAddressNotFound if no row matches.
func (s *SQLiteStore) GetAddress(ctx context.Context, username, contactID, addressID string) (*Address, error) {
	query := `
		SELECT a.id, a.contact_id, a.street, a.city, a.province, a.country, a.postal_code
		FROM addresses a
		JOIN contacts c ON c.id = a.contact_id
		WHERE a.id = ? AND a.contact_id = ? AND c.username = ?
	`

	var address Address
	var street, city, province sql.NullString

	err := s.db.QueryRowContext(ctx, query, addressID, contactID, username).Scan(
		&address.ID,
		&address.ContactID,
		&street,
		&city,
		&province,
		&address.Country,
		&address.PostalCode,
	)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrAddressNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("querying address: %w", err)
	}

	address.Street = street.String
	address.City = city.String
	address.Province = province.String

	return &address, nil
}

// UpdateAddress overwrites the mutable fields of an address, gated by the
// parent contact's owner in the same statement.
// Returns ErrAddressNotFound if no row matches.
func (s *SQLiteStore) UpdateAddress(ctx context.Context, username string, address *Address) error {
	query := `
		UPDATE addresses
		SET street = ?, city = ?, province = ?, country = ?, postal_code = ?
		WHERE id = ? AND contact_id = ?
		  AND contact_id IN (SELECT id FROM contacts WHERE username = ?)
	`

	result, err := s.db.ExecContext(ctx, query,
		nullString(address.Street),
		nullString(address.City),
		nullString(address.Province),
		address.Country,
		address.PostalCode,
		address.ID,
		address.ContactID,
		username,
	)
	if err != nil {
		return fmt.Errorf("updating address: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("getting rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return ErrAddressNotFound
	}

	s.logger.Debug("updated address", "id", address.ID, "contact_id", address.ContactID)
	return nil
}

// DeleteAddress removes an address, gated by the parent contact's owner.
// Returns ErrAddressNotFound if no row matches.
func (s *SQLiteStore) DeleteAddress(ctx context.Context, username, contactID, addressID string) error {
	query := `
		DELETE FROM addresses
		WHERE id = ? AND contact_id = ?
		  AND contact_id IN (SELECT id FROM contacts WHERE username = ?)
	`

	result, err := s.db.ExecContext(ctx, query, addressID, contactID, username)
	if err != nil {
		return fmt.Errorf("deleting address: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("getting rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return ErrAddressNotFound
	}

	s.logger.Debug("deleted address", "id", addressID, "contact_id", contactID)
	return nil
}

// ListAddresses returns all addresses of a contact owned by the given user.
// Returns ErrContactNotFound if the contact doesn't exist or isn't owned by
// the user, so the sub-resource listing never leaks a foreign contact's data.
func (s *SQLiteStore) ListAddresses(ctx context.Context, username, contactID string) ([]*Address, error) {
	// Verify ownership first so an empty list is distinguishable from a
	// foreign or absent contact.
	if _, err := s.GetContact(ctx, username, contactID); err != nil {
		return nil, err
	}

	query := `
		SELECT a.id, a.contact_id, a.street, a.city, a.province, a.country, a.postal_code
		FROM addresses a
		JOIN contacts c ON c.id = a.contact_id
		WHERE a.contact_id = ? AND c.username = ?
		ORDER BY a.id ASC
	`

	rows, err := s.db.QueryContext(ctx, query, contactID, username)
	if err != nil {
		return nil, fmt.Errorf("querying addresses: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var addresses []*Address
	for rows.Next() {
		var address Address
		var street, city, province sql.NullString

		if err := rows.Scan(&address.ID, &address.ContactID, &street, &city, &province, &address.Country, &address.PostalCode); err != nil {
			return nil, fmt.Errorf("scanning address: %w", err)
		}

		address.Street = street.String
		address.City = city.String
		address.Province = province.String
		addresses = append(addresses, &address)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating addresses: %w", err)
	}

	return addresses, nil
}
