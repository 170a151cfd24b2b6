package impl

import (
	"context"
	"log/slog"

	deliverycontext "contacts/internal/delivery/context"
	"contacts/internal/domain/entity"
	domainerrors "contacts/internal/domain/errors"
	"contacts/internal/domain/repository"
	"contacts/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/fx"
)

const defaultBirthdayWindowDays = 7

// contactService implements the ContactUsecase interface.
type contactService struct {
	contactRepo repository.ContactRepository
	logger      *slog.Logger
}

// ContactServiceParams holds dependencies for contactService, injected by Fx.
type ContactServiceParams struct {
	fx.In

	ContactRepo repository.ContactRepository
	Logger      *slog.Logger
}

// NewContactService is the constructor for contactService.
func NewContactService(params ContactServiceParams) usecase.ContactUsecase {
	return &contactService{
		contactRepo: params.ContactRepo,
		logger:      params.Logger,
	}
}

func (srv *contactService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// CreateContact adds a contact to the caller's book.
func (srv *contactService) CreateContact(ctx context.Context, userID uuid.UUID, input *usecase.ContactInput) (*entity.Contact, error) {
	contact := &entity.Contact{
		UserID:    userID,
		FirstName: input.FirstName,
		LastName:  input.LastName,
		Email:     input.Email,
		Phone:     input.Phone,
		Birthday:  input.Birthday,
		Notes:     input.Notes,
	}

	if err := srv.contactRepo.Create(ctx, contact); err != nil {
		srv.log(ctx).Warn("Failed to create contact", slog.Any("userID", userID), slog.Any("error", err))

		return nil, errors.Wrap(err, "failed to create contact")
	}

	srv.log(ctx).Debug("Contact created", slog.Any("userID", userID), slog.Any("contactID", contact.ID))

	return contact, nil
}

// GetContact returns a single contact from the caller's book.
func (srv *contactService) GetContact(ctx context.Context, userID, contactID uuid.UUID) (*entity.Contact, error) {
	contact, err := srv.contactRepo.FindByID(ctx, userID, contactID)
	if err != nil {
		if errors.Is(err, repository.ErrContactNotFound) {
			return nil, domainerrors.ErrContactNotFound.WrapMessage("contact lookup failed")
		}

		return nil, errors.Wrap(err, "failed to load contact")
	}

	return contact, nil
}

// ListContacts returns the caller's contacts matching the query.
func (srv *contactService) ListContacts(ctx context.Context, userID uuid.UUID, input *usecase.ListContactsInput) ([]*entity.Contact, error) {
	contactList, err := srv.contactRepo.List(ctx, userID, repository.ContactQuery{
		Search: input.Search,
		Offset: input.Offset,
		Limit:  input.Limit,
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to list contacts")
	}

	return contactList, nil
}

// UpdateContact replaces a contact's fields, scoped to the caller.
func (srv *contactService) UpdateContact(ctx context.Context, userID, contactID uuid.UUID, input *usecase.ContactInput) (*entity.Contact, error) {
	contact := &entity.Contact{
		ID:        contactID,
		UserID:    userID,
		FirstName: input.FirstName,
		LastName:  input.LastName,
		Email:     input.Email,
		Phone:     input.Phone,
		Birthday:  input.Birthday,
		Notes:     input.Notes,
	}

	if err := srv.contactRepo.Update(ctx, contact); err != nil {
		if errors.Is(err, repository.ErrContactNotFound) {
			return nil, domainerrors.ErrContactNotFound.WrapMessage("contact update failed")
		}

		return nil, errors.Wrap(err, "failed to update contact")
	}

	// Re-read so the response carries the stored timestamps.
	return srv.GetContact(ctx, userID, contactID)
}

// DeleteContact removes a contact from the caller's book.
func (srv *contactService) DeleteContact(ctx context.Context, userID, contactID uuid.UUID) error {
	if err := srv.contactRepo.Delete(ctx, userID, contactID); err != nil {
		if errors.Is(err, repository.ErrContactNotFound) {
			return domainerrors.ErrContactNotFound.WrapMessage("contact delete failed")
		}

		return errors.Wrap(err, "failed to delete contact")
	}

	srv.log(ctx).Debug("Contact deleted", slog.Any("userID", userID), slog.Any("contactID", contactID))

	return nil
}

// UpcomingBirthdays lists contacts whose birthday falls within the next `days`
// days. Non-positive windows fall back to one week.
func (srv *contactService) UpcomingBirthdays(ctx context.Context, userID uuid.UUID, days int) ([]*entity.Contact, error) {
	if days <= 0 {
		days = defaultBirthdayWindowDays
	}

	contactList, err := srv.contactRepo.FindUpcomingBirthdays(ctx, userID, days)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list upcoming birthdays")
	}

	return contactList, nil
}
