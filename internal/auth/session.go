// ABOUTME: Session service issuing and revoking opaque bearer tokens
// ABOUTME: Login rotates to a fresh token with expiry; logout clears it idempotently

package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/2389/rolodex/internal/store"
)

// DefaultTokenTTL is how long issued tokens last: 30 days from issuance.
// The expiry is stored and compared as epoch milliseconds everywhere.
const DefaultTokenTTL = 30 * 24 * time.Hour

// ErrInvalidCredentials is returned when login fails. Unknown username and
// wrong password produce this same error so neither can be probed separately.
var ErrInvalidCredentials = errors.New("username or password wrong")

// SessionStore defines the user operations the session service needs.
type SessionStore interface {
	GetUser(ctx context.Context, username string) (*store.User, error)
	RotateToken(ctx context.Context, username, token string, expiresAt int64) error
	ClearToken(ctx context.Context, username string) error
}

// Session is the result of a successful login.
type Session struct {
	Token     string
	ExpiresAt int64 // epoch milliseconds
}

// SessionService issues tokens on login and invalidates them on logout.
type SessionService struct {
	users  SessionStore
	ttl    time.Duration
	logger *slog.Logger

	nowMillis func() int64
}

// NewSessionService creates a SessionService. A non-positive ttl falls back
// to DefaultTokenTTL.
func NewSessionService(users SessionStore, ttl time.Duration) *SessionService {
	if ttl <= 0 {
		ttl = DefaultTokenTTL
	}
	return &SessionService{
		users:     users,
		ttl:       ttl,
		logger:    slog.Default().With("component", "session"),
		nowMillis: func() int64 { return time.Now().UnixMilli() },
	}
}

// Login verifies the credentials and issues a brand-new token, invalidating
// any prior one (single active session per user). Unknown username and wrong
// password both return ErrInvalidCredentials after equivalent bcrypt work.
func (s *SessionService) Login(ctx context.Context, username, password string) (*Session, error) {
	user, err := s.users.GetUser(ctx, username)
	if errors.Is(err, store.ErrUserNotFound) {
		compareDummy(password)
		return nil, ErrInvalidCredentials
	}
	if err != nil {
		return nil, fmt.Errorf("looking up user: %w", err)
	}

	if !CheckPassword(user.PasswordHash, password) {
		return nil, ErrInvalidCredentials
	}

	token, err := NewToken()
	if err != nil {
		return nil, fmt.Errorf("generating token: %w", err)
	}
	expiresAt := s.nowMillis() + s.ttl.Milliseconds()

	// Single atomic statement: concurrent logins for the same user can't
	// leave a half-applied token/expiry pair.
	if err := s.users.RotateToken(ctx, username, token, expiresAt); err != nil {
		return nil, fmt.Errorf("storing token: %w", err)
	}

	s.logger.Info("login successful", "username", username)
	return &Session{Token: token, ExpiresAt: expiresAt}, nil
}

// Logout clears the user's token and expiry. The user must already be
// authenticated; calling it twice is a no-op the second time.
func (s *SessionService) Logout(ctx context.Context, user *store.User) error {
	if err := s.users.ClearToken(ctx, user.Username); err != nil {
		return fmt.Errorf("clearing token: %w", err)
	}

	s.logger.Info("logout", "username", user.Username)
	return nil
}
