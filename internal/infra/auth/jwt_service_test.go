package auth

import (
	"testing"
	"time"

	"contacts/config"
	domainerrors "contacts/internal/domain/errors"
	"contacts/internal/domain/service"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestTokenConfig() *config.Config {
	cfg := &config.Config{
		Auth: &config.AuthConfig{
			AccessTokenTTL:  15 * time.Minute,
			RefreshTokenTTL: 7 * 24 * time.Hour,
		},
	}
	cfg.SecretKey.Access = "test_access_secret_key_very_long_for_testing"
	cfg.SecretKey.Refresh = "test_refresh_secret_key_very_long_for_testing"

	return cfg
}

func TestJWTService_RoundTrip(t *testing.T) {
	svc, err := NewJWTService(newTestTokenConfig())
	require.NoError(t, err)

	accessToken, refreshToken, err := svc.GenerateTokenPair("a@x.com")
	require.NoError(t, err)
	assert.NotEmpty(t, accessToken)
	assert.NotEmpty(t, refreshToken)

	subject, err := svc.Decode(accessToken, service.ScopeAccess)
	assert.NoError(t, err)
	assert.Equal(t, "a@x.com", subject)

	subject, err = svc.Decode(refreshToken, service.ScopeRefresh)
	assert.NoError(t, err)
	assert.Equal(t, "a@x.com", subject)
}

func TestJWTService_ScopeIsolation(t *testing.T) {
	svc, err := NewJWTService(newTestTokenConfig())
	require.NoError(t, err)

	accessToken, refreshToken, err := svc.GenerateTokenPair("a@x.com")
	require.NoError(t, err)

	// An access token must never pass where a refresh token is required, and vice versa.
	_, err = svc.Decode(accessToken, service.ScopeRefresh)
	assert.ErrorIs(t, err, domainerrors.ErrInvalidToken)

	_, err = svc.Decode(refreshToken, service.ScopeAccess)
	assert.ErrorIs(t, err, domainerrors.ErrInvalidToken)
}

func TestJWTService_ExpiredToken(t *testing.T) {
	cfg := newTestTokenConfig()
	cfg.Auth.AccessTokenTTL = -time.Second
	svc, err := NewJWTService(cfg)
	require.NoError(t, err)

	accessToken, _, err := svc.GenerateTokenPair("a@x.com")
	require.NoError(t, err)

	_, err = svc.Decode(accessToken, service.ScopeAccess)
	assert.ErrorIs(t, err, domainerrors.ErrInvalidToken)
}

func TestJWTService_MalformedToken(t *testing.T) {
	svc, err := NewJWTService(newTestTokenConfig())
	require.NoError(t, err)

	for _, token := range []string{"", "clearly-not-a-jwt", "a.b.c"} {
		_, err := svc.Decode(token, service.ScopeAccess)
		assert.ErrorIs(t, err, domainerrors.ErrInvalidToken)
	}
}

func TestJWTService_TamperedSignature(t *testing.T) {
	svc, err := NewJWTService(newTestTokenConfig())
	require.NoError(t, err)

	accessToken, _, err := svc.GenerateTokenPair("a@x.com")
	require.NoError(t, err)

	tampered := accessToken[:len(accessToken)-2] + "xx"
	_, err = svc.Decode(tampered, service.ScopeAccess)
	assert.ErrorIs(t, err, domainerrors.ErrInvalidToken)
}

func TestJWTService_RejectsNonHMACAlgorithm(t *testing.T) {
	svc, err := NewJWTService(newTestTokenConfig())
	require.NoError(t, err)

	// alg=none with a matching scope claim must still be rejected.
	unsigned := jwt.NewWithClaims(jwt.SigningMethodNone, jwt.MapClaims{
		"sub":   "a@x.com",
		"iat":   time.Now().Unix(),
		"exp":   time.Now().Add(time.Hour).Unix(),
		"scope": string(service.ScopeAccess),
	})
	tokenString, err := unsigned.SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	_, err = svc.Decode(tokenString, service.ScopeAccess)
	assert.ErrorIs(t, err, domainerrors.ErrInvalidToken)
}

func TestJWTService_MissingSubject(t *testing.T) {
	cfg := newTestTokenConfig()
	svc, err := NewJWTService(cfg)
	require.NoError(t, err)

	claims := jwt.MapClaims{
		"iat":   time.Now().Unix(),
		"exp":   time.Now().Add(time.Hour).Unix(),
		"scope": string(service.ScopeAccess),
	}
	tokenString, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).
		SignedString([]byte(cfg.SecretKey.Access))
	require.NoError(t, err)

	_, err = svc.Decode(tokenString, service.ScopeAccess)
	assert.ErrorIs(t, err, domainerrors.ErrInvalidToken)
}

func TestJWTService_EmptySecrets(t *testing.T) {
	cfg := &config.Config{}
	svc, err := NewJWTService(cfg)
	assert.Error(t, err)
	assert.Nil(t, svc)
	assert.Contains(t, err.Error(), "jwt secrets must be provided")
}

func TestJWTService_DefaultTTLs(t *testing.T) {
	cfg := newTestTokenConfig()
	cfg.Auth = nil
	svc, err := NewJWTService(cfg)
	require.NoError(t, err)

	assert.Equal(t, 7*24*time.Hour, svc.RefreshTokenTTL())
}
