package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bookcatalog-backend/pkg/jwt"
)

func setupAuthRouter(manager *jwt.Manager) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(OptionalAuth(manager))
	r.GET("/open", func(c *gin.Context) {
		id := CurrentUserIDPtr(c)
		if id == nil {
			c.JSON(http.StatusOK, gin.H{"guest": true})
			return
		}
		c.JSON(http.StatusOK, gin.H{"guest": false, "user_id": *id})
	})
	r.GET("/private", RequireAuth(manager), func(c *gin.Context) {
		c.Status(http.StatusNoContent)
	})
	return r
}

func TestOptionalAuth_NoHeaderIsGuest(t *testing.T) {
	r := setupAuthRouter(jwt.NewManager("secret", 60))

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest("GET", "/open", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"guest":true`)
}

func TestOptionalAuth_ValidToken(t *testing.T) {
	manager := jwt.NewManager("secret", 60)
	r := setupAuthRouter(manager)

	token, err := manager.Generate(7, "reader")
	require.NoError(t, err)

	req := httptest.NewRequest("GET", "/open", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"user_id":7`)
}

func TestOptionalAuth_InvalidTokenRejected(t *testing.T) {
	r := setupAuthRouter(jwt.NewManager("secret", 60))

	req := httptest.NewRequest("GET", "/open", nil)
	req.Header.Set("Authorization", "Bearer garbage")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestOptionalAuth_MalformedHeaderRejected(t *testing.T) {
	r := setupAuthRouter(jwt.NewManager("secret", 60))

	req := httptest.NewRequest("GET", "/open", nil)
	req.Header.Set("Authorization", "Token abc")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRequireAuth_GuestRejected(t *testing.T) {
	r := setupAuthRouter(jwt.NewManager("secret", 60))

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest("GET", "/private", nil))

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRequireAuth_AuthenticatedAllowed(t *testing.T) {
	manager := jwt.NewManager("secret", 60)
	r := setupAuthRouter(manager)

	token, err := manager.Generate(9, "reader")
	require.NoError(t, err)

	req := httptest.NewRequest("GET", "/private", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNoContent, w.Code)
}
