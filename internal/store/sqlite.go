// ABOUTME: SQLite implementation of the Store interface using modernc.org/sqlite
// ABOUTME: Provides user/contact/address persistence with automatic schema creation

package store

import (
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	_ "modernc.org/sqlite"
)

// SQLiteStore implements the Store interface using SQLite
type SQLiteStore struct {
	db     *sql.DB
	logger *slog.Logger
}

// Ensure SQLiteStore implements Store.
var _ Store = (*SQLiteStore)(nil)

// NewSQLiteStore creates a new SQLite store at the given path.
// The schema is automatically created if it doesn't exist.
// Parent directories are created if needed.
func NewSQLiteStore(path string) (*SQLiteStore, error) {
	logger := slog.Default().With("component", "store")

	// Ensure parent directory exists
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("creating database directory: %w", err)
	}

	// WAL for better concurrent performance; foreign_keys must be set per
	// connection, so both go in the DSN rather than a one-off Exec.
	dsn := path + "?_pragma=journal_mode(WAL)&_pragma=foreign_keys(1)"
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	s := &SQLiteStore{
		db:     db,
		logger: logger,
	}

	if err := s.createSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}

	logger.Info("SQLite store initialized", "path", path)
	return s, nil
}

// createSchema creates the database tables if they don't exist.
// token_expires_at holds epoch milliseconds; token and token_expires_at are
// either both set or both NULL.
func (s *SQLiteStore) createSchema() error {
	schema := `
		CREATE TABLE IF NOT EXISTS users (
			username         TEXT PRIMARY KEY,
			name             TEXT NOT NULL,
			password_hash    TEXT NOT NULL,
			token            TEXT UNIQUE,
			token_expires_at INTEGER,

			CHECK ((token IS NULL) = (token_expires_at IS NULL))
		);

		CREATE INDEX IF NOT EXISTS idx_users_token ON users(token);

		CREATE TABLE IF NOT EXISTS contacts (
			id         TEXT PRIMARY KEY,
			username   TEXT NOT NULL REFERENCES users(username),
			first_name TEXT NOT NULL,
			last_name  TEXT,
			phone      TEXT,
			email      TEXT
		);

		CREATE INDEX IF NOT EXISTS idx_contacts_username ON contacts(username);

		CREATE TABLE IF NOT EXISTS addresses (
			id          TEXT PRIMARY KEY,
			contact_id  TEXT NOT NULL REFERENCES contacts(id) ON DELETE CASCADE,
			street      TEXT,
			city        TEXT,
			province    TEXT,
			country     TEXT NOT NULL,
			postal_code TEXT NOT NULL
		);

		CREATE INDEX IF NOT EXISTS idx_addresses_contact ON addresses(contact_id);
	`

	_, err := s.db.Exec(schema)
	return err
}

// Close closes the database connection
func (s *SQLiteStore) Close() error {
	s.logger.Info("closing SQLite store")
	return s.db.Close()
}

// isUniqueConstraintError checks if an error is a unique constraint violation.
func isUniqueConstraintError(err error) bool {
	// SQLite returns "UNIQUE constraint failed" in the error message
	return err != nil && (strings.Contains(err.Error(), "UNIQUE constraint failed") || strings.Contains(err.Error(), "unique constraint"))
}

// nullString converts an empty string to a NULL database value.
func nullString(s string) sql.NullString {
	if s == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: s, Valid: true}
}
