package impl

import (
	"context"
	"strings"
	"testing"

	"contacts/internal/domain/entity"
	domainerrors "contacts/internal/domain/errors"
	"contacts/internal/domain/repository"
	mockRepo "contacts/internal/mocks/repository"
	mockSvc "contacts/internal/mocks/service"
	"contacts/internal/usecase"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func createTestProfileService(t *testing.T) (usecase.ProfileUsecase, *mockRepo.MockUserRepository, *mockSvc.MockAvatarStorage) {
	userRepo := mockRepo.NewMockUserRepository(t)
	storage := mockSvc.NewMockAvatarStorage(t)

	service := NewProfileService(ProfileServiceParams{
		UserRepo: userRepo,
		Storage:  storage,
		Logger:   newDiscardLogger(),
	})

	return service, userRepo, storage
}

func TestProfileService_GetProfile_Success(t *testing.T) {
	service, userRepo, _ := createTestProfileService(t)

	ctx := context.Background()
	user := &entity.User{ID: uuid.New(), Email: "me@example.com", Name: "Me"}

	userRepo.EXPECT().FindByID(ctx, user.ID).Return(user, nil)

	profile, err := service.GetProfile(ctx, user.ID)

	require.NoError(t, err)
	assert.Equal(t, user, profile)
}

func TestProfileService_UpdateAvatar_Success(t *testing.T) {
	service, userRepo, storage := createTestProfileService(t)

	ctx := context.Background()
	userID := uuid.New()
	avatarURL := "https://cdn.example.com/avatars/" + userID.String() + ".png"

	storage.EXPECT().
		Store(ctx, "avatars/"+userID.String()+".png", "image/png", mock.Anything).
		Return(avatarURL, nil)
	userRepo.EXPECT().UpdateAvatar(ctx, userID, avatarURL).Return(nil)
	userRepo.EXPECT().
		FindByID(ctx, userID).
		Return(&entity.User{ID: userID, Avatar: &avatarURL}, nil)

	user, err := service.UpdateAvatar(ctx, userID, &usecase.UpdateAvatarInput{
		FileName:    "selfie.PNG",
		ContentType: "image/png",
		Body:        strings.NewReader("fake image bytes"),
	})

	require.NoError(t, err)
	require.NotNil(t, user.Avatar)
	assert.Equal(t, avatarURL, *user.Avatar)
}

func TestProfileService_UpdateAvatar_StorageFailure(t *testing.T) {
	service, userRepo, storage := createTestProfileService(t)

	ctx := context.Background()
	userID := uuid.New()

	storage.EXPECT().
		Store(ctx, mock.AnythingOfType("string"), "image/png", mock.Anything).
		Return("", assert.AnError)

	user, err := service.UpdateAvatar(ctx, userID, &usecase.UpdateAvatarInput{
		FileName:    "selfie.png",
		ContentType: "image/png",
		Body:        strings.NewReader("fake image bytes"),
	})

	assert.Nil(t, user)
	assert.ErrorIs(t, err, domainerrors.ErrAvatarUploadFailed)
	userRepo.AssertNotCalled(t, "UpdateAvatar")
}

func TestProfileService_UpdateAvatar_VanishedAccount(t *testing.T) {
	service, userRepo, storage := createTestProfileService(t)

	ctx := context.Background()
	userID := uuid.New()

	storage.EXPECT().
		Store(ctx, mock.AnythingOfType("string"), "image/png", mock.Anything).
		Return("https://cdn.example.com/a.png", nil)
	userRepo.EXPECT().
		UpdateAvatar(ctx, userID, "https://cdn.example.com/a.png").
		Return(repository.ErrUserNotFound)

	user, err := service.UpdateAvatar(ctx, userID, &usecase.UpdateAvatarInput{
		FileName:    "a.png",
		ContentType: "image/png",
		Body:        strings.NewReader("fake image bytes"),
	})

	assert.Nil(t, user)
	assert.ErrorIs(t, err, domainerrors.ErrNotFound)
}
