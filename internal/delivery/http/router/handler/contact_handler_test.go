package handler

import (
	"context"
	"log/slog"
	"net/http"
	"testing"
	"time"

	"contacts/internal/delivery/http/middleware"
	"contacts/internal/domain/entity"
	domainerrors "contacts/internal/domain/errors"
	mocksusecase "contacts/internal/mocks/usecase"
	"contacts/internal/usecase"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func authedContact(c echo.Context, userID uuid.UUID) {
	c.Set(middleware.ContextKeyUserID, userID)
	c.Set(middleware.ContextKeyUser, &entity.User{ID: userID})
}

func TestContactHandler_Create_ParsesBirthday(t *testing.T) {
	userID := uuid.New()
	mockUC := mocksusecase.NewMockContactUsecase(t)
	mockUC.EXPECT().
		CreateContact(mock.Anything, userID, mock.Anything).
		Run(func(_ context.Context, _ uuid.UUID, input *usecase.ContactInput) {
			assert.Equal(t, "Bob", input.FirstName)
			assert.Equal(t, time.Date(1990, 4, 12, 0, 0, 0, 0, time.UTC), input.Birthday)
		}).
		Return(&entity.Contact{ID: uuid.New(), FirstName: "Bob"}, nil)

	h := NewContactHandler(mockUC, slog.Default())

	c, rec := newTestContext(t, http.MethodPost, "/api/contacts",
		`{"first_name":"Bob","last_name":"Stone","email":"bob@example.com","birthday":"1990-04-12"}`)
	authedContact(c, userID)

	require.NoError(t, h.Create(c))
	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Contains(t, rec.Body.String(), "Contact created successfully")
}

func TestContactHandler_Create_BadBirthdayRejected(t *testing.T) {
	mockUC := mocksusecase.NewMockContactUsecase(t)
	h := NewContactHandler(mockUC, slog.Default())

	c, _ := newTestContext(t, http.MethodPost, "/api/contacts",
		`{"first_name":"Bob","birthday":"12/04/1990"}`)
	authedContact(c, uuid.New())

	err := h.Create(c)
	require.Error(t, err)

	var appErr domainerrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, http.StatusBadRequest, appErr.HTTPCode())
	mockUC.AssertNotCalled(t, "CreateContact", mock.Anything, mock.Anything, mock.Anything)
}

func TestContactHandler_List_ForwardsPaging(t *testing.T) {
	userID := uuid.New()
	mockUC := mocksusecase.NewMockContactUsecase(t)
	mockUC.EXPECT().
		ListContacts(mock.Anything, userID, &usecase.ListContactsInput{
			Search: "sto",
			Offset: 10,
			Limit:  5,
		}).
		Return([]*entity.Contact{}, nil)

	h := NewContactHandler(mockUC, slog.Default())

	c, rec := newTestContext(t, http.MethodGet, "/api/contacts?skip=10&limit=5&query=sto", "")
	authedContact(c, userID)

	require.NoError(t, h.List(c))
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestContactHandler_Get_MalformedIDBehavesLikeMissing(t *testing.T) {
	mockUC := mocksusecase.NewMockContactUsecase(t)
	h := NewContactHandler(mockUC, slog.Default())

	c, _ := newTestContext(t, http.MethodGet, "/api/contacts/not-a-uuid", "")
	authedContact(c, uuid.New())
	c.SetParamNames("id")
	c.SetParamValues("not-a-uuid")

	err := h.Get(c)
	require.Error(t, err)
	require.ErrorIs(t, err, domainerrors.ErrContactNotFound)
	mockUC.AssertNotCalled(t, "GetContact", mock.Anything, mock.Anything, mock.Anything)
}

func TestContactHandler_Delete_Success(t *testing.T) {
	userID := uuid.New()
	contactID := uuid.New()
	mockUC := mocksusecase.NewMockContactUsecase(t)
	mockUC.EXPECT().
		DeleteContact(mock.Anything, userID, contactID).
		Return(nil)

	h := NewContactHandler(mockUC, slog.Default())

	c, rec := newTestContext(t, http.MethodDelete, "/api/contacts/"+contactID.String(), "")
	authedContact(c, userID)
	c.SetParamNames("id")
	c.SetParamValues(contactID.String())

	require.NoError(t, h.Delete(c))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Contact deleted")
}

func TestContactHandler_Birthdays_ForwardsWindow(t *testing.T) {
	userID := uuid.New()
	mockUC := mocksusecase.NewMockContactUsecase(t)
	mockUC.EXPECT().
		UpcomingBirthdays(mock.Anything, userID, 30).
		Return([]*entity.Contact{{FirstName: "Bob"}}, nil)

	h := NewContactHandler(mockUC, slog.Default())

	c, rec := newTestContext(t, http.MethodGet, "/api/contacts/birthdays?days=30", "")
	authedContact(c, userID)

	require.NoError(t, h.Birthdays(c))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Bob")
}

func TestContactHandler_Birthdays_DefaultWindowIsZero(t *testing.T) {
	userID := uuid.New()
	mockUC := mocksusecase.NewMockContactUsecase(t)
	// The usecase substitutes its default window when days is zero.
	mockUC.EXPECT().
		UpcomingBirthdays(mock.Anything, userID, 0).
		Return([]*entity.Contact{}, nil)

	h := NewContactHandler(mockUC, slog.Default())

	c, rec := newTestContext(t, http.MethodGet, "/api/contacts/birthdays", "")
	authedContact(c, userID)

	require.NoError(t, h.Birthdays(c))
	assert.Equal(t, http.StatusOK, rec.Code)
}
