package handler

import (
	"strings"

	"contacts/internal/delivery/http/middleware"
	"contacts/internal/domain/entity"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

// BearerToken extracts the credential from "Authorization: Bearer <token>".
func BearerToken(c echo.Context) (string, bool) {
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

// currentUser returns the account the auth middleware resolved for this request.
func currentUser(c echo.Context) (*entity.User, bool) {
	user, ok := c.Get(middleware.ContextKeyUser).(*entity.User)

	return user, ok
}

// currentUserID returns the account id the auth middleware resolved.
func currentUserID(c echo.Context) (uuid.UUID, bool) {
	id, ok := c.Get(middleware.ContextKeyUserID).(uuid.UUID)

	return id, ok
}
