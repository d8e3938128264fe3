package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bookcatalog-backend/internal/domains/rbac"
	"bookcatalog-backend/pkg/jwt"
)

type staticRoleStore struct {
	rolesByUser map[int64][]string
}

func (s *staticRoleStore) RoleExists(_ context.Context, name string) (bool, error) {
	return name == rbac.RoleUser, nil
}

func (s *staticRoleStore) RolesByUser(_ context.Context, userID int64) ([]string, error) {
	return s.rolesByUser[userID], nil
}

func (s *staticRoleStore) HasAssignment(_ context.Context, role string, userID int64) (bool, error) {
	for _, r := range s.rolesByUser[userID] {
		if r == role {
			return true, nil
		}
	}
	return false, nil
}

func (s *staticRoleStore) Assign(_ context.Context, role string, userID int64) error {
	s.rolesByUser[userID] = append(s.rolesByUser[userID], role)
	return nil
}

func setupPermissionRouter(manager *jwt.Manager, gate *rbac.Gate) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(OptionalAuth(manager))
	r.GET("/books", RequirePermission(gate, rbac.PermissionViewBooks), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})
	r.POST("/books", RequirePermission(gate, rbac.PermissionManageBooks), func(c *gin.Context) {
		c.Status(http.StatusCreated)
	})
	return r
}

func TestRequirePermission_GuestCanViewButNotManage(t *testing.T) {
	gate := rbac.NewGate(&staticRoleStore{rolesByUser: map[int64][]string{}})
	r := setupPermissionRouter(jwt.NewManager("secret", 60), gate)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest("GET", "/books", nil))
	assert.Equal(t, http.StatusOK, w.Code)

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest("POST", "/books", nil))
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestRequirePermission_UserWithRoleCanManage(t *testing.T) {
	manager := jwt.NewManager("secret", 60)
	gate := rbac.NewGate(&staticRoleStore{rolesByUser: map[int64][]string{
		5: {rbac.RoleUser},
	}})
	r := setupPermissionRouter(manager, gate)

	token, err := manager.Generate(5, "writer")
	require.NoError(t, err)

	req := httptest.NewRequest("POST", "/books", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusCreated, w.Code)
}

func TestRequirePermission_AuthenticatedUserWithoutRoleDenied(t *testing.T) {
	manager := jwt.NewManager("secret", 60)
	gate := rbac.NewGate(&staticRoleStore{rolesByUser: map[int64][]string{}})
	r := setupPermissionRouter(manager, gate)

	token, err := manager.Generate(6, "roleless")
	require.NoError(t, err)

	req := httptest.NewRequest("POST", "/books", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusForbidden, w.Code)
}
