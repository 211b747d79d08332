package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func guardedRouter(service *Service, roles ...Role) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	handlers := []gin.HandlerFunc{Middleware(service)}
	if len(roles) > 0 {
		handlers = append(handlers, RequireRole(roles...))
	}
	handlers = append(handlers, func(c *gin.Context) {
		c.Status(http.StatusNoContent)
	})
	router.POST("/guarded", handlers...)
	return router
}

func doGuarded(router *gin.Engine, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/guarded", nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestMiddlewareRejectsMissingAndMalformedHeader(t *testing.T) {
	service := NewService("test-secret", time.Hour, zap.NewNop())
	router := guardedRouter(service)

	w := doGuarded(router, "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	req := httptest.NewRequest(http.MethodPost, "/guarded", nil)
	req.Header.Set("Authorization", "Basic not-a-bearer-token")
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRequireRoleAllowsMatchingRole(t *testing.T) {
	service := NewService("test-secret", time.Hour, zap.NewNop())
	router := guardedRouter(service, RoleFleetManager)

	token, _, err := service.IssueToken("Priya", RoleFleetManager)
	require.NoError(t, err)

	w := doGuarded(router, token)
	assert.Equal(t, http.StatusNoContent, w.Code)
}

func TestRequireRoleForbidsOtherRoles(t *testing.T) {
	service := NewService("test-secret", time.Hour, zap.NewNop())
	router := guardedRouter(service, RoleFleetManager)

	token, _, err := service.IssueToken("Ramesh", RoleDriver)
	require.NoError(t, err)

	w := doGuarded(router, token)
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestRequireRoleAcceptsAnyListedRole(t *testing.T) {
	service := NewService("test-secret", time.Hour, zap.NewNop())
	router := guardedRouter(service, RoleLoadOwner, RoleDriver)

	token, _, err := service.IssueToken("Ramesh", RoleDriver)
	require.NoError(t, err)

	w := doGuarded(router, token)
	assert.Equal(t, http.StatusNoContent, w.Code)
}
