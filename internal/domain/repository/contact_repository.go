// Package repository defines the interfaces for the persistence layer.
// These interfaces act as a contract between the domain/application layers and the infrastructure layer.
package repository

import (
	"context"
	"errors"

	"contacts/internal/domain/entity"

	"github.com/google/uuid"
)

// ErrContactNotFound is returned when a contact does not exist or belongs to another user.
var ErrContactNotFound = errors.New("contact not found")

// ContactQuery narrows and pages a contact listing.
type ContactQuery struct {
	// Search matches case-insensitively against first name, last name and email.
	// Empty means no filtering.
	Search string
	Offset int
	Limit  int
}

// ContactRepository defines the standard operations for contact persistence.
// Every operation is scoped to the owning user; a contact belonging to a
// different user behaves exactly like a missing one.
type ContactRepository interface {
	// Create persists a new contact for the given owner.
	Create(ctx context.Context, contact *entity.Contact) error

	// FindByID retrieves a contact by ID, scoped to the owner.
	FindByID(ctx context.Context, userID, contactID uuid.UUID) (*entity.Contact, error)

	// List retrieves the owner's contacts matching the query.
	List(ctx context.Context, userID uuid.UUID, query ContactQuery) ([]*entity.Contact, error)

	// Update modifies an existing contact, scoped to the owner.
	Update(ctx context.Context, contact *entity.Contact) error

	// Delete removes a contact, scoped to the owner.
	Delete(ctx context.Context, userID, contactID uuid.UUID) error

	// FindUpcomingBirthdays retrieves the owner's contacts whose birthday falls
	// within the next `days` days, handling year wraparound.
	FindUpcomingBirthdays(ctx context.Context, userID uuid.UUID, days int) ([]*entity.Contact, error)
}
