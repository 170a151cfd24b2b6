// Package repository defines the interfaces for the persistence layer.
// These interfaces act as a contract between the domain/application layers and the infrastructure layer.
package repository

import (
	"context"
	"errors"

	"contacts/internal/domain/entity"

	"github.com/google/uuid"
)

// ErrUserNotFound is a domain-specific error returned when a user is not found.
var ErrUserNotFound = errors.New("user not found")

// UserRepository defines the standard operations for user persistence.
// The application layer will depend on this interface, not the concrete implementation.
// All writes go straight to the system of record; the snapshot cache is a
// separate, non-authoritative read path (see UserDirectory).
type UserRepository interface {
	// FindByID retrieves a single user by their unique ID.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.User, error)

	// FindByEmail retrieves a single user by their email address.
	FindByEmail(ctx context.Context, email string) (*entity.User, error)

	// Create persists a new user entity to the storage.
	Create(ctx context.Context, user *entity.User) error

	// UpdateRefreshToken overwrites the user's single refresh-token slot.
	// Passing nil clears the slot, which is the logout-equivalent state.
	UpdateRefreshToken(ctx context.Context, userID uuid.UUID, token *string) error

	// MarkEmailVerified flips the verified flag for the given email.
	// The transition is monotonic; re-verifying an already verified user is a no-op.
	MarkEmailVerified(ctx context.Context, email string) error

	// UpdateAvatar stores a new avatar URL for the user.
	UpdateAvatar(ctx context.Context, userID uuid.UUID, avatarURL string) error
}
