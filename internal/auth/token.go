// ABOUTME: Opaque bearer token authentication with expiry enforcement
// ABOUTME: Resolves the X-API-TOKEN header to a user and fails closed

package auth

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"log/slog"
	"time"

	"github.com/2389/rolodex/internal/store"
)

// HeaderName is the request header carrying the opaque bearer token.
const HeaderName = "X-API-TOKEN"

// ErrUnauthorized is returned for any authentication failure: missing header,
// unknown token, or expired token. The causes are deliberately
// indistinguishable to the caller.
var ErrUnauthorized = errors.New("unauthorized")

// UserLookup resolves a session token to a user.
type UserLookup interface {
	GetUserByToken(ctx context.Context, token string) (*store.User, error)
}

// Authenticator resolves opaque bearer tokens to users, enforcing expiry on
// every call. It has no side effects beyond the lookup: tokens are never
// refreshed or rotated here.
type Authenticator struct {
	users  UserLookup
	logger *slog.Logger

	// nowMillis is the single clock source for expiry checks, in epoch
	// milliseconds. Overridable in tests.
	nowMillis func() int64
}

// NewAuthenticator creates an Authenticator backed by the given user lookup.
func NewAuthenticator(users UserLookup) *Authenticator {
	return &Authenticator{
		users:     users,
		logger:    slog.Default().With("component", "auth"),
		nowMillis: func() int64 { return time.Now().UnixMilli() },
	}
}

// Authenticate resolves a token value to its user. An empty token, an unknown
// token, a missing expiry, and a past expiry all return ErrUnauthorized.
func (a *Authenticator) Authenticate(ctx context.Context, token string) (*store.User, error) {
	if token == "" {
		return nil, ErrUnauthorized
	}

	user, err := a.users.GetUserByToken(ctx, token)
	if errors.Is(err, store.ErrUserNotFound) {
		return nil, ErrUnauthorized
	}
	if err != nil {
		a.logger.Error("token lookup failed", "error", err)
		return nil, err
	}

	// Fail closed: a token with no recorded expiry is invalid.
	if user.TokenExpiresAt == nil || a.nowMillis() > *user.TokenExpiresAt {
		return nil, ErrUnauthorized
	}

	return user, nil
}

// NewToken generates a fresh opaque session token: 32 random bytes,
// hex-encoded (256 bits of entropy). The token carries no embedded claims.
func NewToken() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}
