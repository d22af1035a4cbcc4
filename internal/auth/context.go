// ABOUTME: Request context plumbing for the authenticated user
// ABOUTME: Provides WithUser/FromContext for propagating identity to handlers

package auth

import (
	"context"

	"github.com/2389/rolodex/internal/store"
)

// userContextKey is the key type for storing the authenticated user in
// context.Context.
type userContextKey struct{}

// WithUser returns a new context with the authenticated user attached.
func WithUser(ctx context.Context, user *store.User) context.Context {
	return context.WithValue(ctx, userContextKey{}, user)
}

// FromContext retrieves the authenticated user from the context, returning
// nil if not present.
func FromContext(ctx context.Context) *store.User {
	user, ok := ctx.Value(userContextKey{}).(*store.User)
	if !ok {
		return nil
	}
	return user
}

// MustFromContext retrieves the authenticated user from the context,
// panicking if not present. Handlers behind Middleware can rely on it.
func MustFromContext(ctx context.Context) *store.User {
	user := FromContext(ctx)
	if user == nil {
		panic("auth: user not found in context")
	}
	return user
}
