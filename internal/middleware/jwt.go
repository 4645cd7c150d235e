package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/guardia-api/internal/models"
	appErrors "github.com/noah-isme/guardia-api/pkg/errors"
	"github.com/noah-isme/guardia-api/pkg/response"
)

// ContextUserKey is where authenticated claims live in the gin context.
const ContextUserKey = "auth_claims"

type tokenValidator interface {
	ValidateToken(tokenString string) (*models.AdminClaims, error)
}

// JWT rejects requests without a valid bearer token.
func JWT(auth tokenValidator) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" {
			response.Error(c, appErrors.Clone(appErrors.ErrUnauthorized, "missing authorization header"))
			c.Abort()
			return
		}
		token, found := strings.CutPrefix(header, "Bearer ")
		if !found || token == "" {
			response.Error(c, appErrors.Clone(appErrors.ErrUnauthorized, "authorization header must be a bearer token"))
			c.Abort()
			return
		}

		claims, err := auth.ValidateToken(token)
		if err != nil {
			response.Error(c, err)
			c.Abort()
			return
		}
		c.Set(ContextUserKey, claims)
		c.Next()
	}
}

// RequireAdmin gates the administrative endpoints. Must run after JWT.
func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		value, ok := c.Get(ContextUserKey)
		claims, valid := value.(*models.AdminClaims)
		if !ok || !valid {
			response.Error(c, appErrors.Clone(appErrors.ErrUnauthorized, "authentication required"))
			c.Abort()
			return
		}
		if !claims.IsAdmin() {
			response.Error(c, appErrors.Clone(appErrors.ErrForbidden, "administrator role required"))
			c.Abort()
			return
		}
		c.Next()
	}
}
