package service

import "time"

// TokenScope tags what an issued token may be used for. A token's scope must
// match the operation consuming it; an access token is never accepted where a
// refresh token is required, and vice versa.
type TokenScope string

// Wire values for the `scope` claim.
const (
	ScopeAccess  TokenScope = "access_token"
	ScopeRefresh TokenScope = "refresh_token"
)

// TokenService defines the interface for issuing and decoding signed, expiring,
// scoped tokens. This abstracts the token format from the use cases.
type TokenService interface {
	// GenerateTokenPair issues a fresh access/refresh pair for the subject.
	GenerateTokenPair(subject string) (accessToken string, refreshToken string, err error)

	// Decode verifies the token's signature, expiry and scope, returning the
	// subject. Every failure mode (bad signature, expired, wrong scope,
	// malformed) surfaces as the same unified invalid-token error; callers
	// must not be able to tell which check failed.
	Decode(token string, expectedScope TokenScope) (subject string, err error)

	// RefreshTokenTTL returns the configured lifetime for refresh tokens.
	RefreshTokenTTL() time.Duration
}
