package service

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/guardia-api/internal/models"
	"github.com/noah-isme/guardia-api/pkg/config"
)

func signToken(t *testing.T, secret string, claims models.AdminClaims) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(secret))
	require.NoError(t, err)
	return signed
}

func TestValidateTokenAcceptsSignedClaims(t *testing.T) {
	service := NewAuthService(config.AuthConfig{JWTSecret: "secret"})
	signed := signToken(t, "secret", models.AdminClaims{
		Email: "admin@school.test",
		Role:  "ADMIN",
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	})

	claims, err := service.ValidateToken(signed)
	require.NoError(t, err)
	assert.Equal(t, "admin@school.test", claims.Email)
	assert.True(t, claims.IsAdmin())
}

func TestValidateTokenRejectsWrongSecret(t *testing.T) {
	service := NewAuthService(config.AuthConfig{JWTSecret: "secret"})
	signed := signToken(t, "other", models.AdminClaims{Email: "admin@school.test"})

	_, err := service.ValidateToken(signed)
	require.Error(t, err)
}

func TestValidateTokenRejectsExpired(t *testing.T) {
	service := NewAuthService(config.AuthConfig{JWTSecret: "secret"})
	signed := signToken(t, "secret", models.AdminClaims{
		Email: "admin@school.test",
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Hour)),
		},
	})

	_, err := service.ValidateToken(signed)
	require.Error(t, err)
}

func TestNonAdminRole(t *testing.T) {
	claims := &models.AdminClaims{Email: "teacher@school.test", Role: "TEACHER"}
	assert.False(t, claims.IsAdmin())
}
