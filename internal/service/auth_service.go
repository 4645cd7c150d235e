package service

import (
	"fmt"

	"github.com/golang-jwt/jwt/v5"

	"github.com/noah-isme/guardia-api/internal/models"
	"github.com/noah-isme/guardia-api/pkg/config"
	appErrors "github.com/noah-isme/guardia-api/pkg/errors"
)

// AuthService validates the platform-issued bearer tokens this API trusts.
// Token issuance lives in the identity service; here we only verify.
type AuthService struct {
	secret []byte
}

// NewAuthService constructs the service.
func NewAuthService(cfg config.AuthConfig) *AuthService {
	return &AuthService{secret: []byte(cfg.JWTSecret)}
}

// ValidateToken parses and verifies an HS256 token, returning its claims.
func (s *AuthService) ValidateToken(tokenString string) (*models.AdminClaims, error) {
	claims := &models.AdminClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return s.secret, nil
	})
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrUnauthorized.Code, appErrors.ErrUnauthorized.Status, "invalid token")
	}
	if !token.Valid {
		return nil, appErrors.Clone(appErrors.ErrUnauthorized, "invalid token")
	}
	return claims, nil
}
