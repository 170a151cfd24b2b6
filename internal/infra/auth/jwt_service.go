// Package auth provides concrete implementations for authentication-related domain services.
package auth

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/pkg/errors"

	"contacts/config"
	domainerrors "contacts/internal/domain/errors"
	"contacts/internal/domain/service"
)

const (
	defaultAccessTTL  = 15 * time.Minute
	defaultRefreshTTL = 7 * 24 * time.Hour
)

// jwtService is a concrete implementation of the TokenService interface using the JWT standard.
// Each scope signs with its own secret, so a token presented under the wrong
// scope fails signature verification even before the scope claim is compared.
type jwtService struct {
	accessSecret  string
	refreshSecret string
	accessTTL     time.Duration
	refreshTTL    time.Duration
}

// NewJWTService is the constructor for jwtService.
// It takes configuration values to create a new token service instance.
func NewJWTService(cfg *config.Config) (service.TokenService, error) {
	if cfg.SecretKey.Access == "" || cfg.SecretKey.Refresh == "" {
		return nil, errors.New("jwt secrets must be provided")
	}

	accessTTL := defaultAccessTTL
	refreshTTL := defaultRefreshTTL
	if cfg.Auth != nil {
		if cfg.Auth.AccessTokenTTL > 0 {
			accessTTL = cfg.Auth.AccessTokenTTL
		}
		if cfg.Auth.RefreshTokenTTL > 0 {
			refreshTTL = cfg.Auth.RefreshTokenTTL
		}
	}

	return &jwtService{
		accessSecret:  cfg.SecretKey.Access,
		refreshSecret: cfg.SecretKey.Refresh,
		accessTTL:     accessTTL,
		refreshTTL:    refreshTTL,
	}, nil
}

// GenerateTokenPair issues a fresh access/refresh pair for the subject.
func (s *jwtService) GenerateTokenPair(subject string) (string, string, error) {
	accessToken, err := s.generateToken(subject, service.ScopeAccess, s.accessTTL, s.accessSecret)
	if err != nil {
		return "", "", errors.Wrap(err, "failed to sign access token")
	}

	refreshToken, err := s.generateToken(subject, service.ScopeRefresh, s.refreshTTL, s.refreshSecret)
	if err != nil {
		return "", "", errors.Wrap(err, "failed to sign refresh token")
	}

	return accessToken, refreshToken, nil
}

// Decode verifies signature, expiry and scope, and returns the subject.
//
// Every failure collapses into domainerrors.ErrInvalidToken: the caller must
// not be able to distinguish an expired token from a forged or wrong-scope
// one. Expiry has no leeway; a token is valid strictly before its exp claim
// and rejected from the expiry instant onward.
func (s *jwtService) Decode(tokenString string, expectedScope service.TokenScope) (string, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (any, error) {
		// Ensure the signing method is what we expect.
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}

		return []byte(s.secretFor(expectedScope)), nil
	})
	if err != nil || !token.Valid {
		return "", domainerrors.ErrInvalidToken
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return "", domainerrors.ErrInvalidToken
	}

	scope, _ := claims["scope"].(string)
	if service.TokenScope(scope) != expectedScope {
		return "", domainerrors.ErrInvalidToken
	}

	subject, _ := claims["sub"].(string)
	if subject == "" {
		return "", domainerrors.ErrInvalidToken
	}

	return subject, nil
}

// RefreshTokenTTL returns the configured duration for refresh tokens.
func (s *jwtService) RefreshTokenTTL() time.Duration {
	return s.refreshTTL
}

// generateToken is a private helper to create a JWT with specific claims.
func (s *jwtService) generateToken(subject string, scope service.TokenScope, ttl time.Duration, secret string) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"sub":   subject,             // Subject (who the token is for)
		"iat":   now.Unix(),          // Issued At
		"exp":   now.Add(ttl).Unix(), // Expiration Time
		"scope": string(scope),       // What the token may be used for
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)

	return token.SignedString([]byte(secret))
}

func (s *jwtService) secretFor(scope service.TokenScope) string {
	if scope == service.ScopeRefresh {
		return s.refreshSecret
	}

	return s.accessSecret
}
