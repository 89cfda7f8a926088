package middleware

import (
	"log/slog"
	"net/http"
	"strings"

	"tablekeeper/internal/handler/httperr"
	"tablekeeper/internal/pkg/errs"
	"tablekeeper/internal/pkg/jwt"

	"github.com/gin-gonic/gin"
)

// TokenVerifier checks staff tokens issued by the restaurant's auth service.
type TokenVerifier interface {
	ValidateToken(token string) (*jwt.Claims, error)
}

type AuthMiddleware struct {
	verifier TokenVerifier
}

const (
	ctxStaffIDKey   = "staff_id"
	ctxStaffRoleKey = "staff_role"
)

var (
	errTokenRequired = errs.New("access token required")
	errForbidden     = errs.New("insufficient permissions")
)

var roleHierarchy = map[jwt.Role]int{
	jwt.RoleStaff:   1,
	jwt.RoleManager: 2,
}

func NewAuthMiddleware(verifier TokenVerifier) *AuthMiddleware {
	return &AuthMiddleware{
		verifier: verifier,
	}
}

func bearerToken(c *gin.Context) string {
	authHeader := c.GetHeader("Authorization")
	if authHeader != "" && strings.HasPrefix(authHeader, "Bearer ") {
		return strings.TrimSpace(authHeader[len("Bearer "):])
	}
	return ""
}

func (m *AuthMiddleware) authenticate(c *gin.Context, token string) error {
	claims, err := m.verifier.ValidateToken(token)
	if err != nil {
		return err
	}
	role := jwt.Role(claims.Role)
	if !role.IsValid() {
		return errs.Newf("unknown role %q", claims.Role)
	}
	c.Set(ctxStaffIDKey, claims.StaffID)
	c.Set(ctxStaffRoleKey, role)
	c.Set("jwt_claims", map[string]any{
		"user_id": claims.StaffID,
		"role":    string(role),
	})
	return nil
}

func (m *AuthMiddleware) RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		token := bearerToken(c)
		if token == "" {
			httperr.AbortWithError(c, http.StatusUnauthorized, errTokenRequired, "Access token required", nil)
			return
		}

		if err := m.authenticate(c, token); err != nil {
			slog.Warn("Token validation failed in auth middleware", "error", err.Error())
			httperr.AbortWithError(c, http.StatusUnauthorized, err, "Invalid or expired token", nil)
			return
		}
		c.Next()
	}
}

func hasMinimumRole(staffRole, minRole jwt.Role) bool {
	staffLevel, staffExists := roleHierarchy[staffRole]
	minLevel, minExists := roleHierarchy[minRole]
	return staffExists && minExists && staffLevel >= minLevel
}

// RequireRoleAtLeast must run after RequireAuth.
func (m *AuthMiddleware) RequireRoleAtLeast(minRole jwt.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		role, ok := GetStaffRole(c)
		if !ok {
			httperr.AbortWithError(c, http.StatusInternalServerError, errs.New("role missing from context"), "Internal server error", nil)
			return
		}

		if !hasMinimumRole(role, minRole) {
			httperr.AbortWithError(c, http.StatusForbidden, errForbidden, "Insufficient permissions", nil)
			return
		}

		c.Next()
	}
}

// OptionalAuth identifies staff when a valid token is present and lets
// anonymous callers through. Guests book through the same endpoints.
func (m *AuthMiddleware) OptionalAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		token := bearerToken(c)
		if token == "" {
			c.Next()
			return
		}

		if err := m.authenticate(c, token); err != nil {
			slog.Debug("Ignoring invalid token on optional auth route", "error", err.Error())
		}
		c.Next()
	}
}

func GetStaffID(c *gin.Context) (string, bool) {
	staffID, exists := c.Get(ctxStaffIDKey)
	if !exists {
		return "", false
	}

	id, ok := staffID.(string)
	return id, ok
}

func GetStaffRole(c *gin.Context) (jwt.Role, bool) {
	staffRole, exists := c.Get(ctxStaffRoleKey)
	if !exists {
		return "", false
	}

	role, ok := staffRole.(jwt.Role)
	return role, ok
}

// IsStaff reports whether the request carries a verified staff token.
func IsStaff(c *gin.Context) bool {
	_, ok := GetStaffRole(c)
	return ok
}
