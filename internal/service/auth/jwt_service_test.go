package auth

import (
	"context"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/phrazzld/slidedeck/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testAuthConfig() config.AuthConfig {
	return config.AuthConfig{
		JWTSecret:            "test-jwt-secret-that-is-32-chars-long",
		TokenLifetimeMinutes: 60,
	}
}

func TestNewJWTService(t *testing.T) {
	_, err := NewJWTService(testAuthConfig())
	require.NoError(t, err)

	short := testAuthConfig()
	short.JWTSecret = "short"
	_, err = NewJWTService(short)
	assert.Error(t, err)

	noLifetime := testAuthConfig()
	noLifetime.TokenLifetimeMinutes = 0
	_, err = NewJWTService(noLifetime)
	assert.Error(t, err)
}

func TestGenerateAndValidate(t *testing.T) {
	ctx := context.Background()
	fixed := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	svc, err := newHMACService(testAuthConfig(), func() time.Time { return fixed })
	require.NoError(t, err)

	token, err := svc.GenerateToken(ctx, "editor@example.com")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := svc.ValidateToken(ctx, token)
	require.NoError(t, err)
	assert.Equal(t, "editor@example.com", claims.Subject)
	assert.Equal(t, fixed, claims.IssuedAt)
	assert.Equal(t, fixed.Add(time.Hour), claims.ExpiresAt)
	assert.Equal(t, time.UTC, claims.ExpiresAt.Location())
	assert.NotEmpty(t, claims.ID)

	t.Run("empty subject", func(t *testing.T) {
		_, err := svc.GenerateToken(ctx, "")
		assert.ErrorIs(t, err, ErrEmptySubject)
	})
}

func TestValidateToken_Failures(t *testing.T) {
	ctx := context.Background()
	issued := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	issuer, err := newHMACService(testAuthConfig(), func() time.Time { return issued })
	require.NoError(t, err)
	token, err := issuer.GenerateToken(ctx, "someone")
	require.NoError(t, err)

	t.Run("missing", func(t *testing.T) {
		_, err := issuer.ValidateToken(ctx, "")
		assert.ErrorIs(t, err, ErrMissingToken)
	})

	t.Run("malformed", func(t *testing.T) {
		_, err := issuer.ValidateToken(ctx, "not.a.token")
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("expired beyond skew", func(t *testing.T) {
		later, err := newHMACService(testAuthConfig(), func() time.Time { return issued.Add(2 * time.Hour) })
		require.NoError(t, err)
		_, err = later.ValidateToken(ctx, token)
		assert.ErrorIs(t, err, ErrExpiredToken)
	})

	t.Run("expired within skew", func(t *testing.T) {
		later, err := newHMACService(testAuthConfig(), func() time.Time { return issued.Add(61 * time.Minute) })
		require.NoError(t, err)
		_, err = later.ValidateToken(ctx, token)
		assert.NoError(t, err)
	})

	t.Run("not yet valid", func(t *testing.T) {
		earlier, err := newHMACService(testAuthConfig(), func() time.Time { return issued.Add(-time.Hour) })
		require.NoError(t, err)
		_, err = earlier.ValidateToken(ctx, token)
		assert.ErrorIs(t, err, ErrTokenNotYetValid)
	})

	t.Run("wrong secret", func(t *testing.T) {
		cfg := testAuthConfig()
		cfg.JWTSecret = "another-secret-that-is-also-32-chars!"
		other, err := newHMACService(cfg, func() time.Time { return issued })
		require.NoError(t, err)
		_, err = other.ValidateToken(ctx, token)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("foreign issuer", func(t *testing.T) {
		claims := jwt.RegisteredClaims{
			Issuer:    "elsewhere",
			Subject:   "someone",
			ExpiresAt: jwt.NewNumericDate(issued.Add(time.Hour)),
		}
		foreign, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testAuthConfig().JWTSecret))
		require.NoError(t, err)
		_, err = issuer.ValidateToken(ctx, foreign)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("unexpected algorithm", func(t *testing.T) {
		claims := jwt.RegisteredClaims{
			Issuer:    "slidedeck",
			Subject:   "someone",
			ExpiresAt: jwt.NewNumericDate(issued.Add(time.Hour)),
		}
		none, err := jwt.NewWithClaims(jwt.SigningMethodNone, claims).SignedString(jwt.UnsafeAllowNoneSignatureType)
		require.NoError(t, err)
		_, err = issuer.ValidateToken(ctx, none)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})
}
