// ABOUTME: Profile service for registration and self-service account updates
// ABOUTME: Returns projections that never include the password hash or token

package users

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/2389/rolodex/internal/auth"
	"github.com/2389/rolodex/internal/store"
	"github.com/2389/rolodex/internal/validate"
)

// Profile is the subset of a user's fields safe to return to a caller.
type Profile struct {
	Username string `json:"username"`
	Name     string `json:"name"`
}

// RegisterRequest is the payload for creating a new account.
type RegisterRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
	Name     string `json:"name"`
}

// UpdateRequest is the payload for a partial profile update. Absent fields
// are left untouched; absent never means clear.
type UpdateRequest struct {
	Name     *string `json:"name"`
	Password *string `json:"password"`
}

// Service manages user accounts.
type Service struct {
	users  store.UserStore
	logger *slog.Logger
}

// NewService creates a user Service backed by the given store.
func NewService(users store.UserStore) *Service {
	return &Service{
		users:  users,
		logger: slog.Default().With("component", "users"),
	}
}

// Register validates the request, hashes the password, and persists a new
// user with no active token.
// Returns store.ErrUsernameTaken if the username is already registered.
func (s *Service) Register(ctx context.Context, req RegisterRequest) error {
	var v validate.Violations
	v.Required("username", req.Username)
	v.MaxLen("username", req.Username, 100)
	v.Required("password", req.Password)
	v.MaxLen("password", req.Password, 100)
	v.Required("name", req.Name)
	v.MaxLen("name", req.Name, 100)
	if err := v.AsError(); err != nil {
		return err
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		return fmt.Errorf("hashing password: %w", err)
	}

	user := &store.User{
		Username:     req.Username,
		Name:         req.Name,
		PasswordHash: hash,
	}
	if err := s.users.CreateUser(ctx, user); err != nil {
		return err
	}

	s.logger.Info("registered user", "username", req.Username)
	return nil
}

// Get projects the already-authenticated user's public attributes. No store
// access: the caller resolved the user during authentication.
func (s *Service) Get(user *store.User) Profile {
	return Profile{
		Username: user.Username,
		Name:     user.Name,
	}
}

// Update applies a partial update to the authenticated user. A present field
// overwrites the attribute; an absent field is untouched. A new password is
// re-hashed before storing. Returns the refreshed projection.
func (s *Service) Update(ctx context.Context, user *store.User, req UpdateRequest) (Profile, error) {
	var v validate.Violations
	if req.Name != nil {
		v.Required("name", *req.Name)
		v.MaxLen("name", *req.Name, 100)
	}
	if req.Password != nil {
		v.Required("password", *req.Password)
		v.MaxLen("password", *req.Password, 100)
	}
	if err := v.AsError(); err != nil {
		return Profile{}, err
	}

	patch := store.UserPatch{Name: req.Name}
	if req.Password != nil {
		hash, err := auth.HashPassword(*req.Password)
		if err != nil {
			return Profile{}, fmt.Errorf("hashing password: %w", err)
		}
		patch.PasswordHash = &hash
	}

	if err := s.users.UpdateUser(ctx, user.Username, patch); err != nil {
		return Profile{}, err
	}

	refreshed, err := s.users.GetUser(ctx, user.Username)
	if err != nil {
		return Profile{}, err
	}

	s.logger.Info("updated profile", "username", user.Username)
	return Profile{Username: refreshed.Username, Name: refreshed.Name}, nil
}
