package service

import (
	"context"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func signDevToken(t *testing.T, secret []byte, email string, expiresAt time.Time) string {
	t.Helper()
	claims := &devClaims{
		Email: email,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(secret)
	require.NoError(t, err)
	return token
}

func TestDevVerifier(t *testing.T) {
	secret := []byte("test-secret")
	v := &DevVerifier{Secret: secret}
	ctx := context.Background()

	t.Run("valid token yields the email claim", func(t *testing.T) {
		token := signDevToken(t, secret, "reader@example.com", time.Now().Add(time.Hour))
		email, err := v.VerifyToken(ctx, token)
		require.NoError(t, err)
		assert.Equal(t, "reader@example.com", email)
	})

	t.Run("expired token is rejected", func(t *testing.T) {
		token := signDevToken(t, secret, "reader@example.com", time.Now().Add(-time.Hour))
		_, err := v.VerifyToken(ctx, token)
		assert.Error(t, err)
	})

	t.Run("wrong secret is rejected", func(t *testing.T) {
		token := signDevToken(t, []byte("other-secret"), "reader@example.com", time.Now().Add(time.Hour))
		_, err := v.VerifyToken(ctx, token)
		assert.Error(t, err)
	})

	t.Run("missing email claim is rejected", func(t *testing.T) {
		token := signDevToken(t, secret, "", time.Now().Add(time.Hour))
		_, err := v.VerifyToken(ctx, token)
		assert.Error(t, err)
	})

	t.Run("garbage is rejected", func(t *testing.T) {
		_, err := v.VerifyToken(ctx, "not-a-jwt")
		assert.Error(t, err)
	})
}
