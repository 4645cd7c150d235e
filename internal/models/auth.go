package models

import "github.com/golang-jwt/jwt/v5"

// AdminClaims is the JWT payload issued by the upstream identity platform.
// This service only validates tokens; it never issues them.
type AdminClaims struct {
	Email    string `json:"email"`
	FullName string `json:"full_name"`
	Role     string `json:"role"`
	jwt.RegisteredClaims
}

// IsAdmin reports whether the token holder may validate or cancel coverages.
func (c *AdminClaims) IsAdmin() bool {
	return c != nil && c.Role == "ADMIN"
}
