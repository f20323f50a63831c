package http

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"techstore/internal/domain"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

type stubTokenParser struct {
	claims *domain.AdminClaims
	err    error
}

func (s *stubTokenParser) ParseToken(tokenString string) (*domain.AdminClaims, error) {
	return s.claims, s.err
}

func adminRouter(parser TokenParser) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/admin/ping", RequireAdmin(parser), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"adminId": c.GetString("adminID")})
	})
	return r
}

func TestRequireAdmin(t *testing.T) {
	t.Run("missing header", func(t *testing.T) {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/admin/ping", nil)
		adminRouter(&stubTokenParser{}).ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Contains(t, w.Body.String(), "missing bearer token")
	})

	t.Run("not a bearer scheme", func(t *testing.T) {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/admin/ping", nil)
		req.Header.Set("Authorization", "Basic abc123")
		adminRouter(&stubTokenParser{}).ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("rejected token", func(t *testing.T) {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/admin/ping", nil)
		req.Header.Set("Authorization", "Bearer bad-token")
		adminRouter(&stubTokenParser{err: errors.New("token is expired")}).ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Contains(t, w.Body.String(), "invalid token")
	})

	t.Run("valid token exposes the admin identity", func(t *testing.T) {
		parser := &stubTokenParser{claims: &domain.AdminClaims{
			AdminID: testOrderID,
			Email:   "admin@techstore.com",
		}}

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/admin/ping", nil)
		req.Header.Set("Authorization", "Bearer good-token")
		adminRouter(parser).ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), testOrderID)
	})
}
