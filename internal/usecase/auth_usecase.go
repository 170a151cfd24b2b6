// Package usecase contains the application-specific business rules.
// It orchestrates the domain layer to perform tasks.
package usecase

import (
	"context"

	"contacts/internal/domain/entity"
)

// --- Input DTOs ---

// SignupInput defines the data required to register a new account.
type SignupInput struct {
	Name     string
	Email    string
	Password string
}

// LoginInput defines the data required for a user to log in.
type LoginInput struct {
	Email    string
	Password string
}

// RefreshInput carries the refresh token presented for rotation.
type RefreshInput struct {
	RefreshToken string
}

// ConfirmEmailInput carries the confirmation token from the emailed link.
type ConfirmEmailInput struct {
	Token string
}

// --- Output DTOs ---

// SignupOutput returns the newly created account's basic information.
type SignupOutput struct {
	User *entity.User
}

// TokenPairOutput returns a freshly issued access/refresh pair.
type TokenPairOutput struct {
	AccessToken  string
	RefreshToken string
	TokenType    string
}

// ConfirmEmailOutput reports the result of an email confirmation.
type ConfirmEmailOutput struct {
	Message string
}

// AuthUsecase defines the interface for session and account lifecycle operations.
// This is the contract that the delivery layer (e.g., API handlers) will depend on.
type AuthUsecase interface {
	// Signup registers a new account and fires the confirmation mail.
	Signup(ctx context.Context, input *SignupInput) (*SignupOutput, error)

	// Login verifies credentials and opens the account's single session.
	Login(ctx context.Context, input *LoginInput) (*TokenPairOutput, error)

	// RefreshTokenPair rotates a valid refresh token into a fresh pair.
	// Presenting a superseded token closes the session entirely.
	RefreshTokenPair(ctx context.Context, input *RefreshInput) (*TokenPairOutput, error)

	// ResolveCurrentUser maps a bearer access token to the account it belongs to.
	ResolveCurrentUser(ctx context.Context, accessToken string) (*entity.User, error)

	// ConfirmEmail marks the account named by the token as verified.
	ConfirmEmail(ctx context.Context, input *ConfirmEmailInput) (*ConfirmEmailOutput, error)
}
