package handler

import (
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"contacts/internal/delivery/http/validator"
	"contacts/internal/domain/entity"
	domainerrors "contacts/internal/domain/errors"
	mocksusecase "contacts/internal/mocks/usecase"
	"contacts/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newTestContext(t *testing.T, method, target, body string) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()

	e := echo.New()
	e.Validator = validator.New()

	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	} else {
		req = httptest.NewRequest(method, target, nil)
	}

	rec := httptest.NewRecorder()

	return e.NewContext(req, rec), rec
}

func TestAuthHandler_Signup_Success(t *testing.T) {
	mockUC := mocksusecase.NewMockAuthUsecase(t)
	mockUC.EXPECT().
		Signup(mock.Anything, &usecase.SignupInput{
			Name:     "Alice",
			Email:    "alice@example.com",
			Password: "s3cretpass",
		}).
		Return(&usecase.SignupOutput{
			User: &entity.User{Email: "alice@example.com", Name: "Alice"},
		}, nil)

	h := NewAuthHandler(mockUC, slog.Default())

	c, rec := newTestContext(t, http.MethodPost, "/api/auth/signup",
		`{"name":"Alice","email":"alice@example.com","password":"s3cretpass"}`)

	require.NoError(t, h.Signup(c))
	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Contains(t, rec.Body.String(), "alice@example.com")
	assert.Contains(t, rec.Body.String(), "User registered successfully")
	// The password hash never leaves the server.
	assert.NotContains(t, rec.Body.String(), "password")
}

func TestAuthHandler_Signup_ShortPasswordRejected(t *testing.T) {
	mockUC := mocksusecase.NewMockAuthUsecase(t)
	h := NewAuthHandler(mockUC, slog.Default())

	c, _ := newTestContext(t, http.MethodPost, "/api/auth/signup",
		`{"name":"Alice","email":"alice@example.com","password":"short"}`)

	err := h.Signup(c)
	require.Error(t, err)

	var appErr domainerrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, http.StatusBadRequest, appErr.HTTPCode())
	mockUC.AssertNotCalled(t, "Signup", mock.Anything, mock.Anything)
}

func TestAuthHandler_Login_ReturnsTokenPair(t *testing.T) {
	mockUC := mocksusecase.NewMockAuthUsecase(t)
	mockUC.EXPECT().
		Login(mock.Anything, &usecase.LoginInput{
			Email:    "alice@example.com",
			Password: "s3cretpass",
		}).
		Return(&usecase.TokenPairOutput{
			AccessToken:  "access-jwt",
			RefreshToken: "refresh-jwt",
			TokenType:    "bearer",
		}, nil)

	h := NewAuthHandler(mockUC, slog.Default())

	c, rec := newTestContext(t, http.MethodPost, "/api/auth/login",
		`{"email":"alice@example.com","password":"s3cretpass"}`)

	require.NoError(t, h.Login(c))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"access_token":"access-jwt"`)
	assert.Contains(t, rec.Body.String(), `"refresh_token":"refresh-jwt"`)
	assert.Contains(t, rec.Body.String(), `"token_type":"bearer"`)
}

func TestAuthHandler_Login_InvalidCredentialsPropagated(t *testing.T) {
	mockUC := mocksusecase.NewMockAuthUsecase(t)
	mockUC.EXPECT().
		Login(mock.Anything, mock.Anything).
		Return(nil, domainerrors.ErrInvalidPassword)

	h := NewAuthHandler(mockUC, slog.Default())

	c, _ := newTestContext(t, http.MethodPost, "/api/auth/login",
		`{"email":"alice@example.com","password":"wrongpassword"}`)

	err := h.Login(c)
	require.Error(t, err)

	var appErr domainerrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, http.StatusUnauthorized, appErr.HTTPCode())
}

func TestAuthHandler_RefreshToken_MissingHeader(t *testing.T) {
	mockUC := mocksusecase.NewMockAuthUsecase(t)
	h := NewAuthHandler(mockUC, slog.Default())

	c, rec := newTestContext(t, http.MethodGet, "/api/auth/refresh_token", "")

	require.NoError(t, h.RefreshToken(c))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "Bearer", rec.Header().Get("WWW-Authenticate"))
	mockUC.AssertNotCalled(t, "RefreshTokenPair", mock.Anything, mock.Anything)
}

func TestAuthHandler_RefreshToken_RotatesPair(t *testing.T) {
	mockUC := mocksusecase.NewMockAuthUsecase(t)
	mockUC.EXPECT().
		RefreshTokenPair(mock.Anything, &usecase.RefreshInput{RefreshToken: "old-refresh"}).
		Return(&usecase.TokenPairOutput{
			AccessToken:  "new-access",
			RefreshToken: "new-refresh",
			TokenType:    "bearer",
		}, nil)

	h := NewAuthHandler(mockUC, slog.Default())

	c, rec := newTestContext(t, http.MethodGet, "/api/auth/refresh_token", "")
	c.Request().Header.Set(echo.HeaderAuthorization, "Bearer old-refresh")

	require.NoError(t, h.RefreshToken(c))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "new-access")
	assert.Contains(t, rec.Body.String(), "new-refresh")
}

func TestAuthHandler_ConfirmEmail_PathToken(t *testing.T) {
	mockUC := mocksusecase.NewMockAuthUsecase(t)
	mockUC.EXPECT().
		ConfirmEmail(mock.Anything, &usecase.ConfirmEmailInput{Token: "alice@example.com"}).
		Return(&usecase.ConfirmEmailOutput{Message: "Email confirmed"}, nil)

	h := NewAuthHandler(mockUC, slog.Default())

	c, rec := newTestContext(t, http.MethodGet, "/api/auth/confirm_email/alice@example.com", "")
	c.SetParamNames("token")
	c.SetParamValues("alice@example.com")

	require.NoError(t, h.ConfirmEmail(c))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Email confirmed")
}
