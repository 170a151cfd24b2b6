package postgres

import (
	"context"

	"contacts/internal/domain/entity"
	domainerrors "contacts/internal/domain/errors"
	"contacts/internal/domain/repository"
	"contacts/internal/infra/persistence/model"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

const defaultContactPageSize = 50

// contactRepository implements the domain.ContactRepository interface using GORM.
type contactRepository struct {
	db *gorm.DB
}

// NewContactRepository is the constructor for contactRepository.
func NewContactRepository(db *gorm.DB) repository.ContactRepository {
	return &contactRepository{db: db}
}

// Create persists a new contact for the given owner.
func (repo *contactRepository) Create(ctx context.Context, contact *entity.Contact) error {
	contactM := fromContactDomain(contact)

	if err := repo.db.WithContext(ctx).Create(contactM).Error; err != nil {
		if isForeignKeyConstraintViolation(err) {
			return repository.ErrUserNotFound
		}
		if isNotNullConstraintViolation(err) {
			return domainerrors.ErrValidationFailed.WrapMessage("missing required contact information")
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to create contact")
	}

	contact.ID = contactM.ID
	contact.CreatedAt = contactM.CreatedAt
	contact.UpdatedAt = contactM.UpdatedAt

	return nil
}

// FindByID retrieves a contact by ID, scoped to the owner.
// A contact owned by a different user is indistinguishable from a missing one.
func (repo *contactRepository) FindByID(ctx context.Context, userID, contactID uuid.UUID) (*entity.Contact, error) {
	var contactM model.ContactModel
	err := repo.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", contactID, userID).
		First(&contactM).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrContactNotFound
		}

		return nil, errors.Wrap(err, "failed to find contact by id")
	}

	return toContactDomain(&contactM), nil
}

// List retrieves the owner's contacts matching the query, ordered by name.
func (repo *contactRepository) List(ctx context.Context, userID uuid.UUID, query repository.ContactQuery) ([]*entity.Contact, error) {
	tx := repo.db.WithContext(ctx).Where("user_id = ?", userID)

	if query.Search != "" {
		pattern := "%" + query.Search + "%"
		tx = tx.Where("first_name ILIKE ? OR last_name ILIKE ? OR email ILIKE ?", pattern, pattern, pattern)
	}

	limit := query.Limit
	if limit <= 0 {
		limit = defaultContactPageSize
	}

	var contactMs []*model.ContactModel
	err := tx.Order("first_name, last_name").
		Offset(query.Offset).
		Limit(limit).
		Find(&contactMs).Error
	if err != nil {
		return nil, errors.Wrap(err, "failed to list contacts")
	}

	contacts := make([]*entity.Contact, 0, len(contactMs))
	for _, contactM := range contactMs {
		contacts = append(contacts, toContactDomain(contactM))
	}

	return contacts, nil
}

// Update modifies an existing contact, scoped to the owner.
func (repo *contactRepository) Update(ctx context.Context, contact *entity.Contact) error {
	contactM := fromContactDomain(contact)

	result := repo.db.WithContext(ctx).
		Model(&model.ContactModel{}).
		Where("id = ? AND user_id = ?", contact.ID, contact.UserID).
		Updates(map[string]any{
			"first_name": contactM.FirstName,
			"last_name":  contactM.LastName,
			"email":      contactM.Email,
			"phone":      contactM.Phone,
			"birthday":   contactM.Birthday,
			"notes":      contactM.Notes,
		})
	if result.Error != nil {
		if isNotNullConstraintViolation(result.Error) {
			return domainerrors.ErrValidationFailed.WrapMessage("missing required contact information")
		}

		return domainerrors.NewDatabaseExecuteError(result.Error, "failed to update contact")
	}
	if result.RowsAffected == 0 {
		return repository.ErrContactNotFound
	}

	return nil
}

// Delete removes a contact, scoped to the owner.
func (repo *contactRepository) Delete(ctx context.Context, userID, contactID uuid.UUID) error {
	result := repo.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", contactID, userID).
		Delete(&model.ContactModel{})
	if result.Error != nil {
		return domainerrors.NewDatabaseExecuteError(result.Error, "failed to delete contact")
	}
	if result.RowsAffected == 0 {
		return repository.ErrContactNotFound
	}

	return nil
}

// FindUpcomingBirthdays retrieves the owner's contacts whose birthday falls within
// the next `days` days. The day-of-year window wraps across the new year, so a
// query at the end of December still picks up early-January birthdays.
func (repo *contactRepository) FindUpcomingBirthdays(ctx context.Context, userID uuid.UUID, days int) ([]*entity.Contact, error) {
	var contactMs []*model.ContactModel
	err := repo.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Where(`(EXTRACT(DOY FROM birthday)::int - EXTRACT(DOY FROM CURRENT_DATE)::int + 365) % 365 <= ?`, days).
		Order("(EXTRACT(DOY FROM birthday)::int - EXTRACT(DOY FROM CURRENT_DATE)::int + 365) % 365").
		Find(&contactMs).Error
	if err != nil {
		return nil, errors.Wrap(err, "failed to find upcoming birthdays")
	}

	contacts := make([]*entity.Contact, 0, len(contactMs))
	for _, contactM := range contactMs {
		contacts = append(contacts, toContactDomain(contactM))
	}

	return contacts, nil
}

// toContactDomain converts a GORM ContactModel to a domain Contact entity.
func toContactDomain(data *model.ContactModel) *entity.Contact {
	if data == nil {
		return nil
	}

	return &entity.Contact{
		ID:        data.ID,
		UserID:    data.UserID,
		FirstName: data.FirstName,
		LastName:  data.LastName,
		Email:     data.Email,
		Phone:     data.Phone,
		Birthday:  data.Birthday,
		Notes:     data.Notes,
		CreatedAt: data.CreatedAt,
		UpdatedAt: data.UpdatedAt,
	}
}

// fromContactDomain converts a domain Contact entity to a GORM ContactModel for persistence.
func fromContactDomain(data *entity.Contact) *model.ContactModel {
	if data == nil {
		return nil
	}

	return &model.ContactModel{
		ID:        data.ID,
		UserID:    data.UserID,
		FirstName: data.FirstName,
		LastName:  data.LastName,
		Email:     data.Email,
		Phone:     data.Phone,
		Birthday:  data.Birthday,
		Notes:     data.Notes,
	}
}
