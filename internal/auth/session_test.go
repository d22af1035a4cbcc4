// ABOUTME: Tests for the session service
// ABOUTME: Covers login token issuance, credential failure modes, and logout

package auth

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/2389/rolodex/internal/store"
)

type fakeSessionStore struct {
	users map[string]*store.User
}

func newFakeSessionStore() *fakeSessionStore {
	return &fakeSessionStore{users: map[string]*store.User{}}
}

func (f *fakeSessionStore) addUser(t *testing.T, username, password string) {
	t.Helper()
	hash, err := HashPassword(password)
	require.NoError(t, err)
	f.users[username] = &store.User{Username: username, Name: username, PasswordHash: hash}
}

func (f *fakeSessionStore) GetUser(ctx context.Context, username string) (*store.User, error) {
	user, ok := f.users[username]
	if !ok {
		return nil, store.ErrUserNotFound
	}
	return user, nil
}

func (f *fakeSessionStore) RotateToken(ctx context.Context, username, token string, expiresAt int64) error {
	user, ok := f.users[username]
	if !ok {
		return store.ErrUserNotFound
	}
	user.Token = &token
	user.TokenExpiresAt = &expiresAt
	return nil
}

func (f *fakeSessionStore) ClearToken(ctx context.Context, username string) error {
	if _, ok := f.users[username]; !ok {
		return store.ErrUserNotFound
	}
	f.users[username].Token = nil
	f.users[username].TokenExpiresAt = nil
	return nil
}

func TestLogin_IssuesToken(t *testing.T) {
	fs := newFakeSessionStore()
	fs.addUser(t, "alice", "secret123")

	svc := NewSessionService(fs, time.Hour)
	svc.nowMillis = func() int64 { return 1_000_000 }

	session, err := svc.Login(context.Background(), "alice", "secret123")
	require.NoError(t, err)
	assert.Len(t, session.Token, 64)
	assert.Equal(t, int64(1_000_000+time.Hour.Milliseconds()), session.ExpiresAt)

	stored := fs.users["alice"]
	require.NotNil(t, stored.Token)
	assert.Equal(t, session.Token, *stored.Token)
	require.NotNil(t, stored.TokenExpiresAt)
	assert.Equal(t, session.ExpiresAt, *stored.TokenExpiresAt)
}

func TestLogin_ReplacesPriorToken(t *testing.T) {
	fs := newFakeSessionStore()
	fs.addUser(t, "alice", "secret123")
	svc := NewSessionService(fs, time.Hour)
	ctx := context.Background()

	first, err := svc.Login(ctx, "alice", "secret123")
	require.NoError(t, err)
	second, err := svc.Login(ctx, "alice", "secret123")
	require.NoError(t, err)

	assert.NotEqual(t, first.Token, second.Token)
	assert.Equal(t, second.Token, *fs.users["alice"].Token)
}

func TestLogin_UnknownUser(t *testing.T) {
	svc := NewSessionService(newFakeSessionStore(), time.Hour)

	_, err := svc.Login(context.Background(), "nobody", "secret123")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestLogin_WrongPassword(t *testing.T) {
	fs := newFakeSessionStore()
	fs.addUser(t, "alice", "secret123")
	svc := NewSessionService(fs, time.Hour)

	_, err := svc.Login(context.Background(), "alice", "wrong")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	// Failed login must not disturb any existing token state
	assert.Nil(t, fs.users["alice"].Token)
}

func TestLogin_FailureModesIndistinguishable(t *testing.T) {
	fs := newFakeSessionStore()
	fs.addUser(t, "alice", "secret123")
	svc := NewSessionService(fs, time.Hour)
	ctx := context.Background()

	_, errUnknown := svc.Login(ctx, "nobody", "secret123")
	_, errWrongPw := svc.Login(ctx, "alice", "wrong")

	assert.Equal(t, errUnknown.Error(), errWrongPw.Error())
}

func TestLogout_ClearsToken(t *testing.T) {
	fs := newFakeSessionStore()
	fs.addUser(t, "alice", "secret123")
	svc := NewSessionService(fs, time.Hour)
	ctx := context.Background()

	_, err := svc.Login(ctx, "alice", "secret123")
	require.NoError(t, err)

	require.NoError(t, svc.Logout(ctx, fs.users["alice"]))
	assert.Nil(t, fs.users["alice"].Token)
	assert.Nil(t, fs.users["alice"].TokenExpiresAt)

	// Second logout is a no-op
	require.NoError(t, svc.Logout(ctx, fs.users["alice"]))
}

func TestNewSessionService_DefaultTTL(t *testing.T) {
	svc := NewSessionService(newFakeSessionStore(), 0)
	assert.Equal(t, DefaultTokenTTL, svc.ttl)
}
