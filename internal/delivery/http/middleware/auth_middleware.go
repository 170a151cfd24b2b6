// Package middleware contains the HTTP middleware for the delivery layer.
package middleware

import (
	"net/http"
	"strings"

	domainerrors "contacts/internal/domain/errors"
	"contacts/internal/errors"
	"contacts/internal/usecase"

	"github.com/labstack/echo/v4"
)

// Context keys set for downstream handlers.
const (
	ContextKeyUser   = "user"
	ContextKeyUserID = "userID"
)

const headerWWWAuthenticate = "WWW-Authenticate"

// AuthMiddleware resolves the bearer access token into the calling account.
type AuthMiddleware struct {
	auth usecase.AuthUsecase
}

// NewAuthMiddleware is the constructor for AuthMiddleware.
func NewAuthMiddleware(auth usecase.AuthUsecase) *AuthMiddleware {
	return &AuthMiddleware{auth: auth}
}

// Authenticate validates the bearer access token and loads the account onto
// the request context. Every rejection is the same 401 envelope; a caller can
// not distinguish a missing header from an expired or wrong-scope token.
func (m *AuthMiddleware) Authenticate(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		token, ok := bearerToken(c)
		if !ok {
			c.Response().Header().Set(headerWWWAuthenticate, "Bearer")

			return domainerrors.ErrInvalidToken.WrapMessage("missing or malformed Authorization header")
		}

		user, err := m.auth.ResolveCurrentUser(c.Request().Context(), token)
		if err != nil {
			var appErr domainerrors.AppError
			if errors.As(err, &appErr) && appErr.HTTPCode() == http.StatusUnauthorized {
				c.Response().Header().Set(headerWWWAuthenticate, "Bearer")
			}

			// A directory outage surfaces as 503, not 401.
			return err
		}

		c.Set(ContextKeyUser, user)
		c.Set(ContextKeyUserID, user.ID)

		return next(c)
	}
}

// bearerToken extracts the credential from "Authorization: Bearer <token>".
func bearerToken(c echo.Context) (string, bool) {
	header := c.Request().Header.Get(echo.HeaderAuthorization)
	if header == "" {
		return "", false
	}

	token := strings.TrimPrefix(header, "Bearer ")
	if token == header || token == "" {
		return "", false
	}

	return token, true
}
