package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"github.com/noah-isme/guardia-api/internal/models"
	appErrors "github.com/noah-isme/guardia-api/pkg/errors"
)

type validatorMock struct {
	claims *models.AdminClaims
	err    error
}

func (m *validatorMock) ValidateToken(tokenString string) (*models.AdminClaims, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.claims, nil
}

func runJWT(t *testing.T, auth tokenValidator, header string) (*httptest.ResponseRecorder, bool) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	req, _ := http.NewRequest(http.MethodGet, "/", nil)
	if header != "" {
		req.Header.Set("Authorization", header)
	}
	c.Request = req

	reached := false
	JWT(auth)(c)
	if !c.IsAborted() {
		reached = true
	}
	return w, reached
}

func TestJWTMissingHeader(t *testing.T) {
	w, reached := runJWT(t, &validatorMock{}, "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.False(t, reached)
}

func TestJWTMalformedHeader(t *testing.T) {
	w, reached := runJWT(t, &validatorMock{}, "Token abc")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.False(t, reached)
}

func TestJWTInvalidToken(t *testing.T) {
	auth := &validatorMock{err: appErrors.Clone(appErrors.ErrUnauthorized, "invalid token")}
	w, reached := runJWT(t, auth, "Bearer bad")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.False(t, reached)
}

func TestJWTValidTokenSetsClaims(t *testing.T) {
	auth := &validatorMock{claims: &models.AdminClaims{Email: "admin@school.test", Role: "ADMIN"}}

	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	req, _ := http.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer good")
	c.Request = req

	JWT(auth)(c)
	assert.False(t, c.IsAborted())

	value, ok := c.Get(ContextUserKey)
	assert.True(t, ok)
	claims, ok := value.(*models.AdminClaims)
	assert.True(t, ok)
	assert.Equal(t, "admin@school.test", claims.Email)
}

func TestRequireAdminRejectsTeacherRole(t *testing.T) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	req, _ := http.NewRequest(http.MethodGet, "/", nil)
	c.Request = req
	c.Set(ContextUserKey, &models.AdminClaims{Email: "teacher@school.test", Role: "TEACHER"})

	RequireAdmin()(c)
	assert.True(t, c.IsAborted())
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestRequireAdminAllowsAdmin(t *testing.T) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	req, _ := http.NewRequest(http.MethodGet, "/", nil)
	c.Request = req
	c.Set(ContextUserKey, &models.AdminClaims{Email: "admin@school.test", Role: "ADMIN"})

	RequireAdmin()(c)
	assert.False(t, c.IsAborted())
}
