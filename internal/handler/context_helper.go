package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/noah-isme/guardia-api/internal/middleware"
	"github.com/noah-isme/guardia-api/internal/models"
)

// claimsFromContext returns the authenticated claims set by the JWT
// middleware, or nil when the route is unauthenticated.
func claimsFromContext(c *gin.Context) *models.AdminClaims {
	value, ok := c.Get(middleware.ContextUserKey)
	if !ok {
		return nil
	}
	claims, ok := value.(*models.AdminClaims)
	if !ok {
		return nil
	}
	return claims
}
