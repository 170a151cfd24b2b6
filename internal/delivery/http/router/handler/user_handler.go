package handler

import (
	"log/slog"
	"net/http"

	"contacts/internal/delivery/http/response"
	domainerrors "contacts/internal/domain/errors"
	"contacts/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// maxAvatarBytes caps uploaded avatar images.
const maxAvatarBytes = 5 << 20

// UserHandler holds dependencies for handlers operating on the caller's account.
type UserHandler struct {
	uc     usecase.ProfileUsecase
	logger *slog.Logger
}

// NewUserHandler is the constructor for UserHandler, injected by Fx.
func NewUserHandler(uc usecase.ProfileUsecase, logger *slog.Logger) *UserHandler {
	return &UserHandler{
		uc:     uc,
		logger: logger,
	}
}

// Me returns the authenticated account as resolved by the middleware. The
// snapshot may lag the system of record by up to the cache TTL.
func (h *UserHandler) Me(c echo.Context) error {
	user, ok := currentUser(c)
	if !ok {
		return domainerrors.ErrInvalidToken.WrapMessage("no authenticated account on request")
	}

	return response.Success(c, http.StatusOK, user, "")
}

// UpdateAvatar stores the uploaded image and points the account at it.
func (h *UserHandler) UpdateAvatar(c echo.Context) error {
	userID, ok := currentUserID(c)
	if !ok {
		return domainerrors.ErrInvalidToken.WrapMessage("no authenticated account on request")
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Missing avatar file")
	}
	if fileHeader.Size > maxAvatarBytes {
		return response.BindingError(c, "INVALID_INPUT", "Avatar file too large")
	}

	file, err := fileHeader.Open()
	if err != nil {
		return errors.Wrap(err, "failed to open uploaded avatar")
	}
	defer file.Close()

	user, err := h.uc.UpdateAvatar(c.Request().Context(), userID, &usecase.UpdateAvatarInput{
		FileName:    fileHeader.Filename,
		ContentType: fileHeader.Header.Get(echo.HeaderContentType),
		Body:        file,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, user, "Avatar updated successfully")
}

// HealthCheck is a simple handler to check if the service is up.
func HealthCheck(c echo.Context) error {
	return response.Success(c, http.StatusOK, map[string]string{"status": "ok"}, "Service is healthy")
}
