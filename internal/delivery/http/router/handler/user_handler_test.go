package handler

import (
	"bytes"
	"context"
	"log/slog"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"contacts/internal/delivery/http/middleware"
	"contacts/internal/domain/entity"
	mocksusecase "contacts/internal/mocks/usecase"
	"contacts/internal/usecase"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestUserHandler_Me_ReturnsResolvedAccount(t *testing.T) {
	user := &entity.User{ID: uuid.New(), Email: "alice@example.com", Name: "Alice"}

	mockUC := mocksusecase.NewMockProfileUsecase(t)
	h := NewUserHandler(mockUC, slog.Default())

	c, rec := newTestContext(t, http.MethodGet, "/api/users/me", "")
	c.Set(middleware.ContextKeyUser, user)
	c.Set(middleware.ContextKeyUserID, user.ID)

	require.NoError(t, h.Me(c))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "alice@example.com")
}

func TestUserHandler_UpdateAvatar_Success(t *testing.T) {
	userID := uuid.New()
	avatarURL := "http://localhost:8080/static/avatars/" + userID.String() + ".png"

	mockUC := mocksusecase.NewMockProfileUsecase(t)
	mockUC.EXPECT().
		UpdateAvatar(mock.Anything, userID, mock.Anything).
		Run(func(_ context.Context, _ uuid.UUID, input *usecase.UpdateAvatarInput) {
			assert.Equal(t, "selfie.png", input.FileName)
		}).
		Return(&entity.User{ID: userID, Avatar: &avatarURL}, nil)

	h := NewUserHandler(mockUC, slog.Default())

	c, rec := newMultipartContext(t, userID, "selfie.png", []byte("png-bytes"))

	require.NoError(t, h.UpdateAvatar(c))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Avatar updated successfully")
}

func TestUserHandler_UpdateAvatar_MissingFile(t *testing.T) {
	mockUC := mocksusecase.NewMockProfileUsecase(t)
	h := NewUserHandler(mockUC, slog.Default())

	c, rec := newTestContext(t, http.MethodPut, "/api/users/avatar", "")
	c.Set(middleware.ContextKeyUserID, uuid.New())

	require.NoError(t, h.UpdateAvatar(c))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	mockUC.AssertNotCalled(t, "UpdateAvatar", mock.Anything, mock.Anything, mock.Anything)
}

func newMultipartContext(t *testing.T, userID uuid.UUID, fileName string, content []byte) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()

	var body bytes.Buffer
	writer := multipart.NewWriter(&body)
	part, err := writer.CreateFormFile("file", fileName)
	require.NoError(t, err)
	_, err = part.Write(content)
	require.NoError(t, err)
	require.NoError(t, writer.Close())

	e := echo.New()
	req := httptest.NewRequest(http.MethodPut, "/api/users/avatar", &body)
	req.Header.Set(echo.HeaderContentType, writer.FormDataContentType())
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.Set(middleware.ContextKeyUserID, userID)
	c.Set(middleware.ContextKeyUser, &entity.User{ID: userID})

	return c, rec
}
