// Package validator wires go-playground/validator into echo's Validator hook.
package validator

import (
	domainerrors "contacts/internal/domain/errors"

	playground "github.com/go-playground/validator/v10"
)

// echoValidator adapts the playground validator to echo.Validator.
type echoValidator struct {
	validate *playground.Validate
}

// New creates the request validator used by the HTTP server.
func New() *echoValidator {
	return &echoValidator{
		validate: playground.New(playground.WithRequiredStructEnabled()),
	}
}

// Validate checks struct tags and maps failures to the domain validation error
// so the error handler renders a 400 envelope.
func (v *echoValidator) Validate(i any) error {
	if err := v.validate.Struct(i); err != nil {
		return domainerrors.ErrValidationFailed.WithDetails(err.Error())
	}

	return nil
}
