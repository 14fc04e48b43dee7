package jwt

import (
	"context"
	"testing"
	"time"

	"github.com/go-chi/jwtauth/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/wasabi-works/shift-payroll-backend/internal/domain/auth"
)

func TestGenerateAccessToken(t *testing.T) {
	svc := NewJWTService("test-secret", time.Hour)
	claims := auth.Claims{Subject: "e1", Role: auth.RoleEmployee, EmployeeID: "e1"}

	token, expiresAt, err := svc.GenerateAccessToken(claims)
	require.NoError(t, err)
	assert.Greater(t, expiresAt, time.Now().Unix())

	decoded, err := jwtauth.VerifyToken(svc.JWTAuth(), token)
	require.NoError(t, err)
	m, err := decoded.AsMap(context.Background())
	require.NoError(t, err)

	got, err := ClaimsFromMap(m, "")
	require.NoError(t, err)
	assert.Equal(t, claims, got)
	assert.Equal(t, "access", m["type"])
}

func TestSSEToken(t *testing.T) {
	svc := NewJWTService("test-secret", time.Hour)
	claims := auth.Claims{Subject: auth.AdminSubject, Role: auth.RoleAdmin}

	token, expiresIn, err := svc.GenerateSSEToken(claims)
	require.NoError(t, err)
	assert.Equal(t, 300, expiresIn)

	got, err := svc.ValidateSSEToken(token)
	require.NoError(t, err)
	assert.Equal(t, claims, got)

	access, _, err := svc.GenerateAccessToken(claims)
	require.NoError(t, err)
	_, err = svc.ValidateSSEToken(access)
	assert.Error(t, err)
}

func TestRevokeToken(t *testing.T) {
	svc := NewJWTService("test-secret", time.Hour)

	assert.False(t, svc.IsTokenRevoked("abc"))
	svc.RevokeToken("abc")
	assert.True(t, svc.IsTokenRevoked("abc"))
}

func TestRevokeToken_DropsExpiredEntries(t *testing.T) {
	current := time.Unix(1_700_000_000, 0)
	svc := NewJWTService("test-secret", time.Hour).(*JWTService)
	svc.now = func() time.Time { return current }
	claims := auth.Claims{Subject: "e1", Role: auth.RoleEmployee, EmployeeID: "e1"}

	first, expiresAt, err := svc.GenerateAccessToken(claims)
	require.NoError(t, err)
	svc.RevokeToken(first)
	assert.Equal(t, expiresAt, svc.revokedTokens[first])

	current = current.Add(30 * time.Minute)
	second, _, err := svc.GenerateAccessToken(claims)
	require.NoError(t, err)
	svc.RevokeToken(second)
	assert.True(t, svc.IsTokenRevoked(first))

	current = current.Add(45 * time.Minute)
	svc.RevokeToken("not-a-jwt")
	assert.False(t, svc.IsTokenRevoked(first))
	assert.True(t, svc.IsTokenRevoked(second))
	assert.True(t, svc.IsTokenRevoked("not-a-jwt"))
	assert.Len(t, svc.revokedTokens, 2)
}

func TestClaimsFromMap_RejectsUnknownRole(t *testing.T) {
	_, err := ClaimsFromMap(map[string]interface{}{"role": "owner"}, "x")
	assert.Error(t, err)
}
