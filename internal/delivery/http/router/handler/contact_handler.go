package handler

import (
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"contacts/internal/delivery/http/response"
	domainerrors "contacts/internal/domain/errors"
	"contacts/internal/usecase"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// ContactHandler holds dependencies for contact book handlers.
type ContactHandler struct {
	uc     usecase.ContactUsecase
	logger *slog.Logger
}

// NewContactHandler is the constructor for ContactHandler, injected by Fx.
func NewContactHandler(uc usecase.ContactUsecase, logger *slog.Logger) *ContactHandler {
	return &ContactHandler{
		uc:     uc,
		logger: logger,
	}
}

type contactRequest struct {
	FirstName string `json:"first_name" validate:"required,max=100"`
	LastName  string `json:"last_name" validate:"max=100"`
	Email     string `json:"email" validate:"omitempty,email"`
	Phone     string `json:"phone" validate:"max=50"`
	Birthday  string `json:"birthday" validate:"omitempty,datetime=2006-01-02"`
	Notes     string `json:"notes"`
}

func (req *contactRequest) toInput() *usecase.ContactInput {
	input := &usecase.ContactInput{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Email:     req.Email,
		Phone:     req.Phone,
		Notes:     req.Notes,
	}
	if req.Birthday != "" {
		// Format already enforced by the validator.
		input.Birthday, _ = time.Parse(time.DateOnly, req.Birthday)
	}

	return input
}

// Create adds a contact to the caller's book.
func (h *ContactHandler) Create(c echo.Context) error {
	userID, ok := currentUserID(c)
	if !ok {
		return domainerrors.ErrInvalidToken.WrapMessage("no authenticated account on request")
	}

	var req contactRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid contact input")
	}
	if err := c.Validate(&req); err != nil {
		return errors.WithStack(err)
	}

	contact, err := h.uc.CreateContact(c.Request().Context(), userID, req.toInput())
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusCreated, contact, "Contact created successfully")
}

// List returns the caller's contacts, optionally filtered and paged.
func (h *ContactHandler) List(c echo.Context) error {
	userID, ok := currentUserID(c)
	if !ok {
		return domainerrors.ErrInvalidToken.WrapMessage("no authenticated account on request")
	}

	offset, _ := strconv.Atoi(c.QueryParam("skip"))
	limit, _ := strconv.Atoi(c.QueryParam("limit"))

	contactList, err := h.uc.ListContacts(c.Request().Context(), userID, &usecase.ListContactsInput{
		Search: c.QueryParam("query"),
		Offset: offset,
		Limit:  limit,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, contactList, "")
}

// Get returns one contact from the caller's book.
func (h *ContactHandler) Get(c echo.Context) error {
	userID, contactID, err := h.pathIDs(c)
	if err != nil {
		return err
	}

	contact, err := h.uc.GetContact(c.Request().Context(), userID, contactID)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, contact, "")
}

// Update replaces a contact's fields.
func (h *ContactHandler) Update(c echo.Context) error {
	userID, contactID, err := h.pathIDs(c)
	if err != nil {
		return err
	}

	var req contactRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid contact input")
	}
	if err := c.Validate(&req); err != nil {
		return errors.WithStack(err)
	}

	contact, err := h.uc.UpdateContact(c.Request().Context(), userID, contactID, req.toInput())
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, contact, "Contact updated successfully")
}

// Delete removes a contact from the caller's book.
func (h *ContactHandler) Delete(c echo.Context) error {
	userID, contactID, err := h.pathIDs(c)
	if err != nil {
		return err
	}

	if err := h.uc.DeleteContact(c.Request().Context(), userID, contactID); err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, map[string]string{"message": "Contact deleted"}, "Contact deleted")
}

// Birthdays lists contacts with a birthday in the coming window.
func (h *ContactHandler) Birthdays(c echo.Context) error {
	userID, ok := currentUserID(c)
	if !ok {
		return domainerrors.ErrInvalidToken.WrapMessage("no authenticated account on request")
	}

	days, _ := strconv.Atoi(c.QueryParam("days"))

	contactList, err := h.uc.UpcomingBirthdays(c.Request().Context(), userID, days)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, contactList, "")
}

func (h *ContactHandler) pathIDs(c echo.Context) (uuid.UUID, uuid.UUID, error) {
	userID, ok := currentUserID(c)
	if !ok {
		return uuid.Nil, uuid.Nil, domainerrors.ErrInvalidToken.WrapMessage("no authenticated account on request")
	}

	contactID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		// An unparseable id behaves like a missing contact, not a 400.
		return uuid.Nil, uuid.Nil, domainerrors.ErrContactNotFound.WrapMessage("malformed contact id")
	}

	return userID, contactID, nil
}
