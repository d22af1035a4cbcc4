// Package store provides SQLite-backed persistence for users, contacts, and
// addresses. Contacts are keyed to their owning user; every contact lookup
// and mutation filters by both id and owner in a single predicate, which is
// the sole enforcement point for per-owner isolation.
package store
