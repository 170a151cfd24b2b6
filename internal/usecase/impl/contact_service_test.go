package impl

import (
	"context"
	"testing"
	"time"

	"contacts/internal/domain/entity"
	domainerrors "contacts/internal/domain/errors"
	"contacts/internal/domain/repository"
	mockRepo "contacts/internal/mocks/repository"
	"contacts/internal/usecase"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func createTestContactService(t *testing.T) (usecase.ContactUsecase, *mockRepo.MockContactRepository) {
	contactRepo := mockRepo.NewMockContactRepository(t)

	service := NewContactService(ContactServiceParams{
		ContactRepo: contactRepo,
		Logger:      newDiscardLogger(),
	})

	return service, contactRepo
}

func sampleContactInput() *usecase.ContactInput {
	return &usecase.ContactInput{
		FirstName: "Ada",
		LastName:  "Lovelace",
		Email:     "ada@example.com",
		Phone:     "+44 20 7946 0000",
		Birthday:  time.Date(1815, time.December, 10, 0, 0, 0, 0, time.UTC),
		Notes:     "mathematician",
	}
}

func TestContactService_CreateContact_Success(t *testing.T) {
	service, contactRepo := createTestContactService(t)

	ctx := context.Background()
	userID := uuid.New()
	input := sampleContactInput()

	contactRepo.EXPECT().
		Create(ctx, mock.AnythingOfType("*entity.Contact")).
		Run(func(ctx context.Context, contact *entity.Contact) {
			assert.Equal(t, userID, contact.UserID)
			contact.ID = uuid.New()
		}).
		Return(nil)

	contact, err := service.CreateContact(ctx, userID, input)

	require.NoError(t, err)
	assert.Equal(t, input.FirstName, contact.FirstName)
	assert.NotEqual(t, uuid.Nil, contact.ID)
}

func TestContactService_GetContact_NotFound(t *testing.T) {
	service, contactRepo := createTestContactService(t)

	ctx := context.Background()
	userID := uuid.New()
	contactID := uuid.New()

	contactRepo.EXPECT().
		FindByID(ctx, userID, contactID).
		Return(nil, repository.ErrContactNotFound)

	contact, err := service.GetContact(ctx, userID, contactID)

	assert.Nil(t, contact)
	assert.ErrorIs(t, err, domainerrors.ErrContactNotFound)
}

func TestContactService_UpdateContact_ScopedToOwner(t *testing.T) {
	service, contactRepo := createTestContactService(t)

	ctx := context.Background()
	userID := uuid.New()
	contactID := uuid.New()
	input := sampleContactInput()

	// The repository treats another user's contact as missing.
	contactRepo.EXPECT().
		Update(ctx, mock.AnythingOfType("*entity.Contact")).
		Return(repository.ErrContactNotFound)

	contact, err := service.UpdateContact(ctx, userID, contactID, input)

	assert.Nil(t, contact)
	assert.ErrorIs(t, err, domainerrors.ErrContactNotFound)
}

func TestContactService_UpdateContact_RereadsStoredState(t *testing.T) {
	service, contactRepo := createTestContactService(t)

	ctx := context.Background()
	userID := uuid.New()
	contactID := uuid.New()
	input := sampleContactInput()

	stored := &entity.Contact{
		ID:        contactID,
		UserID:    userID,
		FirstName: input.FirstName,
		LastName:  input.LastName,
		UpdatedAt: time.Now(),
	}

	contactRepo.EXPECT().
		Update(ctx, mock.AnythingOfType("*entity.Contact")).
		Return(nil)
	contactRepo.EXPECT().
		FindByID(ctx, userID, contactID).
		Return(stored, nil)

	contact, err := service.UpdateContact(ctx, userID, contactID, input)

	require.NoError(t, err)
	assert.Equal(t, stored, contact)
}

func TestContactService_DeleteContact_NotFound(t *testing.T) {
	service, contactRepo := createTestContactService(t)

	ctx := context.Background()
	userID := uuid.New()
	contactID := uuid.New()

	contactRepo.EXPECT().
		Delete(ctx, userID, contactID).
		Return(repository.ErrContactNotFound)

	err := service.DeleteContact(ctx, userID, contactID)

	assert.ErrorIs(t, err, domainerrors.ErrContactNotFound)
}

func TestContactService_UpcomingBirthdays_DefaultWindow(t *testing.T) {
	service, contactRepo := createTestContactService(t)

	ctx := context.Background()
	userID := uuid.New()

	contactRepo.EXPECT().
		FindUpcomingBirthdays(ctx, userID, defaultBirthdayWindowDays).
		Return([]*entity.Contact{}, nil)

	contactList, err := service.UpcomingBirthdays(ctx, userID, 0)

	require.NoError(t, err)
	assert.Empty(t, contactList)
}

func TestContactService_UpcomingBirthdays_ExplicitWindow(t *testing.T) {
	service, contactRepo := createTestContactService(t)

	ctx := context.Background()
	userID := uuid.New()
	expected := []*entity.Contact{{ID: uuid.New(), UserID: userID, FirstName: "Ada"}}

	contactRepo.EXPECT().
		FindUpcomingBirthdays(ctx, userID, 30).
		Return(expected, nil)

	contactList, err := service.UpcomingBirthdays(ctx, userID, 30)

	require.NoError(t, err)
	assert.Equal(t, expected, contactList)
}
