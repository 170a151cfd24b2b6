// Package repository defines the interfaces for the persistence layer.
// These interfaces act as a contract between the domain/application layers and the infrastructure layer.
package repository

import (
	"context"
	"errors"

	"contacts/internal/domain/entity"
)

// ErrCacheMiss is returned when no snapshot exists for the requested email.
// An expired entry and an absent entry are indistinguishable; both are misses.
var ErrCacheMiss = errors.New("user snapshot not cached")

// UserCache stores serialized user snapshots keyed by email with a fixed TTL.
// It is never authoritative: a miss always falls through to the system of
// record, and entries are overwritten wholesale, never mutated in place.
type UserCache interface {
	// Get returns the cached snapshot for the email, or ErrCacheMiss.
	Get(ctx context.Context, email string) (*entity.User, error)

	// Set stores a snapshot under the user's email with the configured TTL.
	Set(ctx context.Context, user *entity.User) error
}

// UserDirectory is the read path for account lookups: cache first, then the
// system of record, populating the cache on a miss. Writes do not pass through
// it and do not invalidate it, so reads may be stale for up to the cache TTL.
type UserDirectory interface {
	// Lookup resolves an account by email. Returns ErrUserNotFound when the
	// account does not exist, or a directory-unavailable failure when the
	// system of record cannot be reached.
	Lookup(ctx context.Context, email string) (*entity.User, error)
}
