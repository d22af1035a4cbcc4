// ABOUTME: Store interfaces and data types for rolodex persistence
// ABOUTME: Defines User, Contact, Address structs and sentinel errors

package store

import (
	"context"
	"errors"
)

// ErrUserNotFound is returned when no user matches the given username or token.
var ErrUserNotFound = errors.New("user not found")

// ErrUsernameTaken is returned when registering a username that already exists.
var ErrUsernameTaken = errors.New("username already registered")

// ErrContactNotFound is returned when a contact doesn't exist or is owned by
// a different user. The two causes are deliberately indistinguishable.
var ErrContactNotFound = errors.New("contact not found")

// ErrAddressNotFound is returned when an address doesn't exist or its parent
// contact is owned by a different user.
var ErrAddressNotFound = errors.New("address not found")

// User represents a registered account. Token and TokenExpiresAt are either
// both set or both nil; TokenExpiresAt is epoch milliseconds.
type User struct {
	Username       string
	Name           string
	PasswordHash   string
	Token          *string
	TokenExpiresAt *int64
}

// UserPatch describes a partial update to a user. Nil fields are left
// untouched.
type UserPatch struct {
	Name         *string
	PasswordHash *string
}

// Contact represents a contact record owned by a single user. Username is set
// at creation and never reassigned.
type Contact struct {
	ID        string
	Username  string
	FirstName string
	LastName  string
	Phone     string
	Email     string
}

// Address is a sub-record of a Contact. Its visibility is gated by the parent
// contact's owner.
type Address struct {
	ID         string
	ContactID  string
	Street     string
	City       string
	Province   string
	Country    string
	PostalCode string
}

// UserStore defines user persistence operations.
type UserStore interface {
	CreateUser(ctx context.Context, user *User) error
	GetUser(ctx context.Context, username string) (*User, error)
	GetUserByToken(ctx context.Context, token string) (*User, error)
	UpdateUser(ctx context.Context, username string, patch UserPatch) error
	RotateToken(ctx context.Context, username, token string, expiresAt int64) error
	ClearToken(ctx context.Context, username string) error
}

// ContactStore defines contact persistence operations. Every lookup and
// mutation filters by both contact id and owning username in one predicate.
type ContactStore interface {
	CreateContact(ctx context.Context, contact *Contact) error
	GetContact(ctx context.Context, username, id string) (*Contact, error)
	UpdateContact(ctx context.Context, contact *Contact) error
	DeleteContact(ctx context.Context, username, id string) error
	ListContacts(ctx context.Context, username string) ([]*Contact, error)
}

// AddressStore defines address persistence operations. All operations are
// scoped through the parent contact's owner.
type AddressStore interface {
	CreateAddress(ctx context.Context, username string, address *Address) error
	GetAddress(ctx context.Context, username, contactID, addressID string) (*Address, error)
	UpdateAddress(ctx context.Context, username string, address *Address) error
	DeleteAddress(ctx context.Context, username, contactID, addressID string) error
	ListAddresses(ctx context.Context, username, contactID string) ([]*Address, error)
}

// Store combines all persistence operations.
type Store interface {
	UserStore
	ContactStore
	AddressStore

	// Close releases any resources held by the store
	Close() error
}
