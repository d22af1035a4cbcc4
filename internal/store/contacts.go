// ABOUTME: Contact store methods for the SQLite store
// ABOUTME: Every lookup and mutation filters by both contact id and owner in one predicate

package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

// CreateContact inserts a new contact row with its owner.
func (s *SQLiteStore) CreateContact(ctx context.Context, contact *Contact) error {
	query := `
		INSERT INTO contacts (id, username, first_name, last_name, phone, email)
		VALUES (?, ?, ?, ?, ?, ?)
	`

	_, err := s.db.ExecContext(ctx, query,
		contact.ID,
		contact.Username,
		contact.FirstName,
		nullString(contact.LastName),
		nullString(contact.Phone),
		nullString(contact.Email),
	)
	if err != nil {
		return fmt.Errorf("inserting contact: %w", err)
	}

	s.logger.Debug("created contact", "id", contact.ID, "username", contact.Username)
	return nil
}

// GetContact retrieves a contact matching both the given id and owner.
// Returns ErrContactNotFound if no row matches — a contact owned by a
// different user is indistinguishable from an absent one.
func (s *SQLiteStore) GetContact(ctx context.Context, username, id string) (*Contact, error) {
	query := `
		SELECT id, username, first_name, last_name, phone, email
		FROM contacts
		WHERE id = ? AND username = ?
	`

	var contact Contact
	var lastName, phone, email sql.NullString

	err := s.db.QueryRowContext(ctx, query, id, username).Scan(
		&contact.ID,
		&contact.Username,
		&contact.FirstName,
		&lastName,
		&phone,
		&email,
	)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrContactNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("querying contact: %w", err)
	}

	contact.LastName = lastName.String
	contact.Phone = phone.String
	contact.Email = email.String

	return &contact, nil
}

// UpdateContact overwrites the mutable fields of a contact in a single
// owner-scoped statement. The owner reference itself is never reassigned.
// Returns ErrContactNotFound if no row matches the id and owner.
func (s *SQLiteStore) UpdateContact(ctx context.Context, contact *Contact) error {
	query := `
		UPDATE contacts
		SET first_name = ?, last_name = ?, phone = ?, email = ?
		WHERE id = ? AND username = ?
	`

	result, err := s.db.ExecContext(ctx, query,
		contact.FirstName,
		nullString(contact.LastName),
		nullString(contact.Phone),
		nullString(contact.Email),
		contact.ID,
		contact.Username,
	)
	if err != nil {
		return fmt.Errorf("updating contact: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("getting rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return ErrContactNotFound
	}

	s.logger.Debug("updated contact", "id", contact.ID, "username", contact.Username)
	return nil
}

// DeleteContact removes a contact in a single owner-scoped statement.
// Returns ErrContactNotFound if no row matches the id and owner.
func (s *SQLiteStore) DeleteContact(ctx context.Context, username, id string) error {
	result, err := s.db.ExecContext(ctx,
		"DELETE FROM contacts WHERE id = ? AND username = ?", id, username)
	if err != nil {
		return fmt.Errorf("deleting contact: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("getting rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return ErrContactNotFound
	}

	s.logger.Debug("deleted contact", "id", id, "username", username)
	return nil
}

// ListContacts returns all contacts owned by the given user.
func (s *SQLiteStore) ListContacts(ctx context.Context, username string) ([]*Contact, error) {
	query := `
		SELECT id, username, first_name, last_name, phone, email
		FROM contacts
		WHERE username = ?
		ORDER BY first_name ASC, id ASC
	`

	rows, err := s.db.QueryContext(ctx, query, username)
	if err != nil {
		return nil, fmt.Errorf("querying contacts: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var contacts []*Contact
	for rows.Next() {
		var contact Contact
		var lastName, phone, email sql.NullString

		if err := rows.Scan(&contact.ID, &contact.Username, &contact.FirstName, &lastName, &phone, &email); err != nil {
			return nil, fmt.Errorf("scanning contact: %w", err)
		}

		contact.LastName = lastName.String
		contact.Phone = phone.String
		contact.Email = email.String
		contacts = append(contacts, &contact)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating contacts: %w", err)
	}

	return contacts, nil
}
