package impl

import (
	"context"
	"log/slog"
	"path"
	"strings"

	deliverycontext "contacts/internal/delivery/context"
	"contacts/internal/domain/entity"
	domainerrors "contacts/internal/domain/errors"
	"contacts/internal/domain/repository"
	"contacts/internal/domain/service"
	"contacts/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// profileService implements the ProfileUsecase interface.
type profileService struct {
	userRepo repository.UserRepository
	storage  service.AvatarStorage
	logger   *slog.Logger
}

// ProfileServiceParams holds dependencies for profileService, injected by Fx.
type ProfileServiceParams struct {
	fx.In

	UserRepo repository.UserRepository
	Storage  service.AvatarStorage
	Logger   *slog.Logger
}

// NewProfileService is the constructor for profileService.
func NewProfileService(params ProfileServiceParams) usecase.ProfileUsecase {
	return &profileService{
		userRepo: params.UserRepo,
		storage:  params.Storage,
		logger:   params.Logger,
	}
}

func (srv *profileService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// GetProfile returns the account's current state from the system of record.
// Unlike token resolution this skips the snapshot cache, so a caller checking
// their own profile always sees fresh data.
func (srv *profileService) GetProfile(ctx context.Context, userID uuid.UUID) (*entity.User, error) {
	user, err := srv.userRepo.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, domainerrors.ErrNotFound.WrapMessage("profile lookup failed")
		}

		return nil, errors.Wrap(err, "failed to load profile")
	}

	return user, nil
}

// UpdateAvatar stores the uploaded image and points the account at it.
func (srv *profileService) UpdateAvatar(ctx context.Context, userID uuid.UUID, input *usecase.UpdateAvatarInput) (*entity.User, error) {
	key := avatarObjectKey(userID, input.FileName)

	url, err := srv.storage.Store(ctx, key, input.ContentType, input.Body)
	if err != nil {
		srv.log(ctx).Error("Failed to store avatar", slog.Any("userID", userID), slog.Any("error", err))

		return nil, domainerrors.ErrAvatarUploadFailed.WrapMessage("failed to store avatar image")
	}

	if err := srv.userRepo.UpdateAvatar(ctx, userID, url); err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, domainerrors.ErrNotFound.WrapMessage("avatar update failed")
		}

		return nil, errors.Wrap(err, "failed to update avatar")
	}

	srv.log(ctx).Info("Avatar updated", slog.Any("userID", userID))

	return srv.GetProfile(ctx, userID)
}

// avatarObjectKey namespaces uploads per user and keeps the original
// extension so the bucket serves a sensible content type.
func avatarObjectKey(userID uuid.UUID, fileName string) string {
	ext := strings.ToLower(path.Ext(fileName))

	return "avatars/" + userID.String() + ext
}
