// Package usecase contains the application-specific business rules.
package usecase

import (
	"context"
	"time"

	"contacts/internal/domain/entity"

	"github.com/google/uuid"
)

// --- Input DTOs ---

// ContactInput defines the data for creating or replacing a contact.
type ContactInput struct {
	FirstName string
	LastName  string
	Email     string
	Phone     string
	Birthday  time.Time
	Notes     string
}

// ListContactsInput narrows and pages a contact listing.
type ListContactsInput struct {
	Search string
	Offset int
	Limit  int
}

// ContactUsecase defines the interface for contact book operations.
// Every operation is scoped to the owning user.
type ContactUsecase interface {
	CreateContact(ctx context.Context, userID uuid.UUID, input *ContactInput) (*entity.Contact, error)
	GetContact(ctx context.Context, userID, contactID uuid.UUID) (*entity.Contact, error)
	ListContacts(ctx context.Context, userID uuid.UUID, input *ListContactsInput) ([]*entity.Contact, error)
	UpdateContact(ctx context.Context, userID, contactID uuid.UUID, input *ContactInput) (*entity.Contact, error)
	DeleteContact(ctx context.Context, userID, contactID uuid.UUID) error

	// UpcomingBirthdays lists contacts whose birthday falls within the next
	// `days` days, wrapping across the end of the year.
	UpcomingBirthdays(ctx context.Context, userID uuid.UUID, days int) ([]*entity.Contact, error)
}
