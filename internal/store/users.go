// ABOUTME: User store methods for the SQLite store
// ABOUTME: Covers registration, token lookup, token rotation, and partial updates

package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
)

// CreateUser inserts a new user row. The user starts with no active token.
// Returns ErrUsernameTaken if the username already exists.
func (s *SQLiteStore) CreateUser(ctx context.Context, user *User) error {
	query := `
		INSERT INTO users (username, name, password_hash, token, token_expires_at)
		VALUES (?, ?, ?, NULL, NULL)
	`

	_, err := s.db.ExecContext(ctx, query,
		user.Username,
		user.Name,
		user.PasswordHash,
	)
	if err != nil {
		if isUniqueConstraintError(err) {
			return ErrUsernameTaken
		}
		return fmt.Errorf("inserting user: %w", err)
	}

	s.logger.Info("created user", "username", user.Username)
	return nil
}

// GetUser retrieves a user by username.
// Returns ErrUserNotFound if the user doesn't exist.
func (s *SQLiteStore) GetUser(ctx context.Context, username string) (*User, error) {
	query := `
		SELECT username, name, password_hash, token, token_expires_at
		FROM users
		WHERE username = ?
	`
	return s.scanUser(s.db.QueryRowContext(ctx, query, username))
}

// GetUserByToken retrieves the user whose current session token equals the
// given value. Expiry is not checked here; the authenticator owns the clock.
// Returns ErrUserNotFound if no user carries the token.
func (s *SQLiteStore) GetUserByToken(ctx context.Context, token string) (*User, error) {
	query := `
		SELECT username, name, password_hash, token, token_expires_at
		FROM users
		WHERE token = ?
	`
	return s.scanUser(s.db.QueryRowContext(ctx, query, token))
}

// scanUser reads a single user row.
func (s *SQLiteStore) scanUser(row *sql.Row) (*User, error) {
	var user User
	var token sql.NullString
	var expiresAt sql.NullInt64

	err := row.Scan(
		&user.Username,
		&user.Name,
		&user.PasswordHash,
		&token,
		&expiresAt,
	)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("querying user: %w", err)
	}

	if token.Valid {
		user.Token = &token.String
	}
	if expiresAt.Valid {
		user.TokenExpiresAt = &expiresAt.Int64
	}

	return &user, nil
}

// UpdateUser applies a partial update to a user. Nil patch fields are left
// untouched; a patch with no fields set is a no-op.
// Returns ErrUserNotFound if the user doesn't exist.
func (s *SQLiteStore) UpdateUser(ctx context.Context, username string, patch UserPatch) error {
	var sets []string
	var args []any

	if patch.Name != nil {
		sets = append(sets, "name = ?")
		args = append(args, *patch.Name)
	}
	if patch.PasswordHash != nil {
		sets = append(sets, "password_hash = ?")
		args = append(args, *patch.PasswordHash)
	}
	if len(sets) == 0 {
		return nil
	}

	query := "UPDATE users SET " + strings.Join(sets, ", ") + " WHERE username = ?"
	args = append(args, username)

	result, err := s.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("updating user: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("getting rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return ErrUserNotFound
	}

	s.logger.Info("updated user", "username", username)
	return nil
}

// RotateToken sets a fresh token and expiry on the user in a single atomic
// statement, invalidating any prior token. expiresAt is epoch milliseconds.
// Returns ErrUserNotFound if the user doesn't exist.
func (s *SQLiteStore) RotateToken(ctx context.Context, username, token string, expiresAt int64) error {
	query := `UPDATE users SET token = ?, token_expires_at = ? WHERE username = ?`

	result, err := s.db.ExecContext(ctx, query, token, expiresAt, username)
	if err != nil {
		return fmt.Errorf("rotating token: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("getting rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return ErrUserNotFound
	}

	s.logger.Debug("rotated token", "username", username)
	return nil
}

// ClearToken removes the user's token and expiry. Clearing an already-clear
// token is a no-op, so logout is idempotent.
// Returns ErrUserNotFound if the user doesn't exist.
func (s *SQLiteStore) ClearToken(ctx context.Context, username string) error {
	query := `UPDATE users SET token = NULL, token_expires_at = NULL WHERE username = ?`

	result, err := s.db.ExecContext(ctx, query, username)
	if err != nil {
		return fmt.Errorf("clearing token: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("getting rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return ErrUserNotFound
	}

	s.logger.Debug("cleared token", "username", username)
	return nil
}
