// Package usecase contains the application-specific business rules.
package usecase

import (
	"context"
	"io"

	"contacts/internal/domain/entity"

	"github.com/google/uuid"
)

// UpdateAvatarInput carries an uploaded avatar image.
type UpdateAvatarInput struct {
	FileName    string
	ContentType string
	Body        io.Reader
}

// ProfileUsecase defines the interface for operations on the caller's own account.
type ProfileUsecase interface {
	// GetProfile returns the account's current state from the system of record.
	GetProfile(ctx context.Context, userID uuid.UUID) (*entity.User, error)

	// UpdateAvatar stores the uploaded image and points the account at it.
	UpdateAvatar(ctx context.Context, userID uuid.UUID, input *UpdateAvatarInput) (*entity.User, error)
}
