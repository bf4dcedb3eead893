package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"lab_platform_backend/internal/config"
	"lab_platform_backend/internal/model"
	"lab_platform_backend/internal/util"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig() *config.Config {
	cfg := &config.Config{}
	cfg.JWT.Secret = "middleware-test-secret-0123456789-01234"
	cfg.JWT.ExpireTime = time.Hour
	return cfg
}

func testRouter(cfg *config.Config) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	api := router.Group("/api", AuthMiddleware(cfg))
	api.GET("/open", func(c *gin.Context) { c.Status(http.StatusOK) })
	api.GET("/staff", StaffOnly(), func(c *gin.Context) { c.Status(http.StatusOK) })
	return router
}

func tokenFor(t *testing.T, cfg *config.Config, role model.UserRole) string {
	t.Helper()
	token, err := util.GenerateJWT(&model.User{ID: 1, Username: "u", Role: role}, cfg.JWT.Secret, time.Hour)
	require.NoError(t, err)
	return token
}

func TestAuthMiddlewareRejectsMissingToken(t *testing.T) {
	router := testRouter(testConfig())

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/open", nil)
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthMiddlewareRejectsBadToken(t *testing.T) {
	router := testRouter(testConfig())

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/open", nil)
	req.Header.Set("Authorization", "Bearer not-a-token")
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthMiddlewareAcceptsBearerAndQuery(t *testing.T) {
	cfg := testConfig()
	router := testRouter(cfg)
	token := tokenFor(t, cfg, model.RoleStudent)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/open", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)

	w = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodGet, "/api/open?token="+token, nil)
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestStaffOnly(t *testing.T) {
	cfg := testConfig()
	router := testRouter(cfg)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/staff", nil)
	req.Header.Set("Authorization", "Bearer "+tokenFor(t, cfg, model.RoleStudent))
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodGet, "/api/staff", nil)
	req.Header.Set("Authorization", "Bearer "+tokenFor(t, cfg, model.RoleStaff))
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
}
