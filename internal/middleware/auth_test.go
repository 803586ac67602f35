// internal/middleware/auth_test.go

package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"tournament-planner/internal/models"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// newRoleRouter wires RequireRole in front of a no-op 200 handler, with a
// stub auth step ahead of it that sets user_role directly (bypassing
// AuthService/JWT validation, which RequireRole does not depend on).
func newRoleRouter(role string, roleSet bool, allowed ...models.OperatorRole) *gin.Engine {
	router := gin.New()
	router.GET("/admin/stats",
		func(c *gin.Context) {
			if roleSet {
				c.Set("user_role", role)
			}
			c.Next()
		},
		RequireRole(allowed...),
		func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"ok": true}) },
	)
	return router
}

func TestRequireRole_AllowsMatchingRole(t *testing.T) {
	router := newRoleRouter(string(models.RoleDirector), true, models.RoleDirector, models.RoleAdmin)

	req := httptest.NewRequest(http.MethodGet, "/admin/stats", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestRequireRole_RejectsWrongRole(t *testing.T) {
	router := newRoleRouter("Player", true, models.RoleDirector, models.RoleAdmin)

	req := httptest.NewRequest(http.MethodGet, "/admin/stats", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestRequireRole_RejectsMissingRole(t *testing.T) {
	router := newRoleRouter("", false, models.RoleDirector)

	req := httptest.NewRequest(http.MethodGet, "/admin/stats", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestRequireRole_AdminOnlyRejectsDirector(t *testing.T) {
	router := newRoleRouter(string(models.RoleDirector), true, models.RoleAdmin)

	req := httptest.NewRequest(http.MethodGet, "/admin/stats", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusForbidden, w.Code)
}

func newAuthRouter() *gin.Engine {
	router := gin.New()
	router.GET("/tournaments",
		RequireAuth(nil),
		func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"ok": true}) },
	)
	return router
}

func TestRequireAuth_MissingHeader(t *testing.T) {
	router := newAuthRouter()

	req := httptest.NewRequest(http.MethodGet, "/tournaments", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRequireAuth_MalformedHeader(t *testing.T) {
	router := newAuthRouter()

	req := httptest.NewRequest(http.MethodGet, "/tournaments", nil)
	req.Header.Set("Authorization", "NotBearer sometoken")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
