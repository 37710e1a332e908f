package auth

import (
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "unit-test-secret"

func signToken(t *testing.T, secret string, claims jwt.Claims) string {
	t.Helper()
	raw, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	require.NoError(t, err)
	return raw
}

func validClaims() *Claims {
	return &Claims{
		Subject: "admin",
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    "catalog",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}
}

func TestVerifier_Verify(t *testing.T) {
	v := NewVerifier(testSecret, "catalog")

	t.Run("accepts a well-formed token", func(t *testing.T) {
		claims, err := v.Verify(signToken(t, testSecret, validClaims()))
		require.NoError(t, err)
		assert.Equal(t, "admin", claims.Subject)
	})

	t.Run("rejects empty token", func(t *testing.T) {
		_, err := v.Verify("")
		assert.ErrorIs(t, err, ErrMissingToken)
	})

	t.Run("rejects wrong signature", func(t *testing.T) {
		_, err := v.Verify(signToken(t, "other-secret", validClaims()))
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("rejects expired token", func(t *testing.T) {
		claims := validClaims()
		claims.ExpiresAt = jwt.NewNumericDate(time.Now().Add(-time.Minute))
		_, err := v.Verify(signToken(t, testSecret, claims))
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("rejects token without expiry", func(t *testing.T) {
		claims := validClaims()
		claims.ExpiresAt = nil
		_, err := v.Verify(signToken(t, testSecret, claims))
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("rejects wrong issuer", func(t *testing.T) {
		claims := validClaims()
		claims.Issuer = "someone-else"
		_, err := v.Verify(signToken(t, testSecret, claims))
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("rejects unexpected signing method", func(t *testing.T) {
		raw, err := jwt.NewWithClaims(jwt.SigningMethodNone, validClaims()).SignedString(jwt.UnsafeAllowNoneSignatureType)
		require.NoError(t, err)
		_, err = v.Verify(raw)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("skips issuer check when unset", func(t *testing.T) {
		open := NewVerifier(testSecret, "")
		claims := validClaims()
		claims.Issuer = "anything"
		_, err := open.Verify(signToken(t, testSecret, claims))
		assert.NoError(t, err)
	})
}

func TestVerifier_FromRequest(t *testing.T) {
	v := NewVerifier(testSecret, "catalog")

	t.Run("extracts bearer token from header", func(t *testing.T) {
		r := httptest.NewRequest("POST", "/products", nil)
		r.Header.Set("Authorization", "Bearer "+signToken(t, testSecret, validClaims()))

		claims, err := v.FromRequest(r)
		require.NoError(t, err)
		assert.Equal(t, "admin", claims.Subject)
	})

	t.Run("missing header", func(t *testing.T) {
		r := httptest.NewRequest("POST", "/products", nil)
		_, err := v.FromRequest(r)
		assert.ErrorIs(t, err, ErrMissingToken)
	})

	t.Run("non-bearer scheme", func(t *testing.T) {
		r := httptest.NewRequest("POST", "/products", nil)
		r.Header.Set("Authorization", "Basic dXNlcjpwYXNz")
		_, err := v.FromRequest(r)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})
}
