//go:build unit || e2e

package authtest

import (
	"testing"
	"time"

	"tablekeeper/internal/pkg/jwt"

	"github.com/stretchr/testify/require"
)

// JWTHelper issues staff tokens the way the restaurant's auth service does.
type JWTHelper struct {
	secret string
}

func NewJWTHelper(secret string) *JWTHelper {
	return &JWTHelper{secret: secret}
}

func (h *JWTHelper) GenerateToken(t *testing.T, staffID string, role jwt.Role) string {
	t.Helper()
	token, err := jwt.NewService(h.secret, time.Hour).GenerateToken(staffID, role)
	require.NoError(t, err)
	return token
}

func (h *JWTHelper) CreateExpiredToken(t *testing.T, staffID string, role jwt.Role) string {
	t.Helper()
	token, err := jwt.NewService(h.secret, time.Millisecond).GenerateToken(staffID, role)
	require.NoError(t, err)
	time.Sleep(10 * time.Millisecond)
	return token
}

// AuthHeader formats a bearer header for PerformRequestWithHeaders.
func AuthHeader(token string) map[string]string {
	return map[string]string{"Authorization": "Bearer " + token}
}
