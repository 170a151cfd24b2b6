// Package entity contains the core business objects of the project,
// each representing a unique, identifiable concept within the domain.
package entity

import (
	"time"

	"github.com/google/uuid"
)

// User is the account entity. Email doubles as the login identifier and is
// unique across all accounts. The password is only ever held as a bcrypt hash.
type User struct {
	ID            uuid.UUID `json:"id"`
	Email         string    `json:"email"`
	Name          string    `json:"name"`
	PasswordHash  string    `json:"-"`
	Avatar        *string   `json:"avatar"`
	EmailVerified bool      `json:"email_verified"`

	// RefreshToken is the single stored refresh token slot. nil means the
	// account has no live session; each login or rotation overwrites it
	// wholesale, so at most one refresh token is valid at any time.
	RefreshToken *string `json:"-"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
