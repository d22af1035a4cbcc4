// ABOUTME: Tests for address store operations
// ABOUTME: Verifies the ownership chain from user through contact to address

package store

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func createTestAddress(t *testing.T, store *SQLiteStore, id, contactID, username string) *Address {
	t.Helper()
	addr := &Address{
		ID:         id,
		ContactID:  contactID,
		Street:     "1 Main St",
		City:       "Springfield",
		Province:   "IL",
		Country:    "USA",
		PostalCode: "62701",
	}
	require.NoError(t, store.CreateAddress(context.Background(), username, addr))
	return addr
}

func TestAddressStore_CreateAndGet(t *testing.T) {
	store := setupTestStore(t)
	ctx := context.Background()

	createTestUser(t, store, "alice")
	createTestContact(t, store, "c1", "alice")
	createTestAddress(t, store, "a1", "c1", "alice")

	addr, err := store.GetAddress(ctx, "alice", "c1", "a1")
	require.NoError(t, err)
	assert.Equal(t, "a1", addr.ID)
	assert.Equal(t, "c1", addr.ContactID)
	assert.Equal(t, "1 Main St", addr.Street)
	assert.Equal(t, "USA", addr.Country)
	assert.Equal(t, "62701", addr.PostalCode)
}

func TestAddressStore_Create_ForeignContact(t *testing.T) {
	store := setupTestStore(t)
	ctx := context.Background()

	createTestUser(t, store, "alice")
	createTestUser(t, store, "bob")
	createTestContact(t, store, "c1", "alice")

	addr := &Address{ID: "a1", ContactID: "c1", Country: "USA", PostalCode: "00000"}
	err := store.CreateAddress(ctx, "bob", addr)
	assert.ErrorIs(t, err, ErrContactNotFound)

	// Nothing written
	_, err = store.GetAddress(ctx, "alice", "c1", "a1")
	assert.ErrorIs(t, err, ErrAddressNotFound)
}

func TestAddressStore_Get_ForeignOwner(t *testing.T) {
	store := setupTestStore(t)
	ctx := context.Background()

	createTestUser(t, store, "alice")
	createTestUser(t, store, "bob")
	createTestContact(t, store, "c1", "alice")
	createTestAddress(t, store, "a1", "c1", "alice")

	_, err := store.GetAddress(ctx, "bob", "c1", "a1")
	assert.ErrorIs(t, err, ErrAddressNotFound)
}

func TestAddressStore_Update(t *testing.T) {
	store := setupTestStore(t)
	ctx := context.Background()

	createTestUser(t, store, "alice")
	createTestContact(t, store, "c1", "alice")
	createTestAddress(t, store, "a1", "c1", "alice")

	updated := &Address{
		ID:         "a1",
		ContactID:  "c1",
		Street:     "",
		City:       "",
		Province:   "",
		Country:    "Canada",
		PostalCode: "K1A 0A1",
	}
	require.NoError(t, store.UpdateAddress(ctx, "alice", updated))

	addr, err := store.GetAddress(ctx, "alice", "c1", "a1")
	require.NoError(t, err)
	assert.Equal(t, "Canada", addr.Country)
	assert.Equal(t, "K1A 0A1", addr.PostalCode)
	assert.Empty(t, addr.Street)
}

func TestAddressStore_Update_ForeignOwner(t *testing.T) {
	store := setupTestStore(t)
	ctx := context.Background()

	createTestUser(t, store, "alice")
	createTestUser(t, store, "bob")
	createTestContact(t, store, "c1", "alice")
	createTestAddress(t, store, "a1", "c1", "alice")

	err := store.UpdateAddress(ctx, "bob", &Address{ID: "a1", ContactID: "c1", Country: "X", PostalCode: "0"})
	assert.ErrorIs(t, err, ErrAddressNotFound)
}

func TestAddressStore_Delete(t *testing.T) {
	store := setupTestStore(t)
	ctx := context.Background()

	createTestUser(t, store, "alice")
	createTestContact(t, store, "c1", "alice")
	createTestAddress(t, store, "a1", "c1", "alice")

	require.NoError(t, store.DeleteAddress(ctx, "alice", "c1", "a1"))

	_, err := store.GetAddress(ctx, "alice", "c1", "a1")
	assert.ErrorIs(t, err, ErrAddressNotFound)
}

func TestAddressStore_Delete_ForeignOwner(t *testing.T) {
	store := setupTestStore(t)
	ctx := context.Background()

	createTestUser(t, store, "alice")
	createTestUser(t, store, "bob")
	createTestContact(t, store, "c1", "alice")
	createTestAddress(t, store, "a1", "c1", "alice")

	err := store.DeleteAddress(ctx, "bob", "c1", "a1")
	assert.ErrorIs(t, err, ErrAddressNotFound)

	_, err = store.GetAddress(ctx, "alice", "c1", "a1")
	require.NoError(t, err)
}

func TestAddressStore_List(t *testing.T) {
	store := setupTestStore(t)
	ctx := context.Background()

	createTestUser(t, store, "alice")
	createTestContact(t, store, "c1", "alice")
	createTestContact(t, store, "c2", "alice")
	createTestAddress(t, store, "a1", "c1", "alice")
	createTestAddress(t, store, "a2", "c1", "alice")
	createTestAddress(t, store, "a3", "c2", "alice")

	addrs, err := store.ListAddresses(ctx, "alice", "c1")
	require.NoError(t, err)
	assert.Len(t, addrs, 2)
}

func TestAddressStore_List_ForeignContact(t *testing.T) {
	store := setupTestStore(t)
	ctx := context.Background()

	createTestUser(t, store, "alice")
	createTestUser(t, store, "bob")
	createTestContact(t, store, "c1", "alice")

	_, err := store.ListAddresses(ctx, "bob", "c1")
	assert.ErrorIs(t, err, ErrContactNotFound)
}

func TestAddressStore_CascadeOnContactDelete(t *testing.T) {
	store := setupTestStore(t)
	ctx := context.Background()

	createTestUser(t, store, "alice")
	createTestContact(t, store, "c1", "alice")
	createTestAddress(t, store, "a1", "c1", "alice")

	require.NoError(t, store.DeleteContact(ctx, "alice", "c1"))

	_, err := store.GetAddress(ctx, "alice", "c1", "a1")
	assert.ErrorIs(t, err, ErrAddressNotFound)
}
