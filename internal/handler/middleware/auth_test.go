//go:build unit

package middleware_test

import (
	"net/http"
	"testing"
	"time"

	"tablekeeper/internal/handler/middleware"
	"tablekeeper/internal/pkg/jwt"
	"tablekeeper/tests/common/authtest"
	"tablekeeper/tests/common/httptest"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

const testSecret = "test-secret-key-for-staff-tokens"

func newAuthRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	auth := middleware.NewAuthMiddleware(jwt.NewService(testSecret, time.Hour))

	whoami := func(c *gin.Context) {
		id, _ := middleware.GetStaffID(c)
		role, _ := middleware.GetStaffRole(c)
		c.JSON(http.StatusOK, gin.H{"staff": id, "role": role, "isStaff": middleware.IsStaff(c)})
	}

	r := gin.New()
	r.GET("/required", auth.RequireAuth(), whoami)
	r.GET("/manager", auth.RequireAuth(), auth.RequireRoleAtLeast(jwt.RoleManager), whoami)
	r.GET("/optional", auth.OptionalAuth(), whoami)
	return r
}

func TestAuthMiddleware(t *testing.T) {
	router := newAuthRouter()
	helper := authtest.NewJWTHelper(testSecret)
	staff := helper.GenerateToken(t, "staff-1", jwt.RoleStaff)
	manager := helper.GenerateToken(t, "staff-2", jwt.RoleManager)
	expired := helper.CreateExpiredToken(t, "staff-1", jwt.RoleStaff)
	foreign := authtest.NewJWTHelper("another-secret").GenerateToken(t, "staff-1", jwt.RoleManager)

	tests := []struct {
		name       string
		path       string
		token      string
		wantStatus int
		wantMsg    string
	}{
		{name: "required without token", path: "/required", wantStatus: http.StatusUnauthorized, wantMsg: "Access token required"},
		{name: "required with staff token", path: "/required", token: staff, wantStatus: http.StatusOK},
		{name: "required with expired token", path: "/required", token: expired, wantStatus: http.StatusUnauthorized, wantMsg: "Invalid or expired token"},
		{name: "required with foreign signature", path: "/required", token: foreign, wantStatus: http.StatusUnauthorized, wantMsg: "Invalid or expired token"},
		{name: "manager route with staff token", path: "/manager", token: staff, wantStatus: http.StatusForbidden, wantMsg: "Insufficient permissions"},
		{name: "manager route with manager token", path: "/manager", token: manager, wantStatus: http.StatusOK},
		{name: "optional without token", path: "/optional", wantStatus: http.StatusOK},
		{name: "optional with invalid token", path: "/optional", token: "garbage", wantStatus: http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.PerformRequest(t, router, http.MethodGet, tt.path, nil, tt.token)
			if tt.wantStatus != http.StatusOK {
				httptest.AssertErrorResponse(t, rec, tt.wantStatus, tt.wantMsg)
				return
			}
			assert.Equal(t, http.StatusOK, rec.Code)
		})
	}
}

func TestOptionalAuth_IdentifiesStaff(t *testing.T) {
	router := newAuthRouter()
	token := authtest.NewJWTHelper(testSecret).GenerateToken(t, "staff-1", jwt.RoleStaff)

	var body struct {
		Staff   string `json:"staff"`
		Role    string `json:"role"`
		IsStaff bool   `json:"isStaff"`
	}
	rec := httptest.PerformRequest(t, router, http.MethodGet, "/optional", nil, token)
	httptest.AssertSuccessResponse(t, rec, http.StatusOK, &body)
	assert.True(t, body.IsStaff)
	assert.Equal(t, "staff-1", body.Staff)
	assert.Equal(t, "staff", body.Role)

	rec = httptest.PerformRequest(t, router, http.MethodGet, "/optional", nil, "garbage")
	httptest.AssertSuccessResponse(t, rec, http.StatusOK, &body)
	assert.False(t, body.IsStaff)
}
