package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJWTIssuer_Issue(t *testing.T) {
	secret := "test-secret"
	issuer := NewJWTIssuer(secret)

	token, err := issuer.Issue("admin", []string{RoleAdmin}, time.Hour)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	parsed, err := jwt.ParseWithClaims(token, &jwtClaims{}, func(t *jwt.Token) (interface{}, error) {
		return []byte(secret), nil
	})
	require.NoError(t, err)
	require.True(t, parsed.Valid)
	claims, ok := parsed.Claims.(*jwtClaims)
	require.True(t, ok)
	assert.Equal(t, "admin", claims.Subject)
	assert.Equal(t, []string{RoleAdmin}, claims.Roles)
}

func TestJWTVerifier_Verify(t *testing.T) {
	issuer := NewJWTIssuer("secret-a")

	valid, err := issuer.Issue("admin", []string{RoleAdmin}, time.Hour)
	require.NoError(t, err)
	expired, err := issuer.Issue("admin", []string{RoleAdmin}, -time.Minute)
	require.NoError(t, err)

	t.Run("valid token", func(t *testing.T) {
		sub, roles, err := NewJWTVerifier("secret-a").Verify(valid)
		require.NoError(t, err)
		assert.Equal(t, "admin", sub)
		assert.Equal(t, []string{RoleAdmin}, roles)
	})
	t.Run("wrong secret", func(t *testing.T) {
		_, _, err := NewJWTVerifier("secret-b").Verify(valid)
		assert.Error(t, err)
	})
	t.Run("expired", func(t *testing.T) {
		_, _, err := NewJWTVerifier("secret-a").Verify(expired)
		assert.Error(t, err)
	})
	t.Run("garbage", func(t *testing.T) {
		_, _, err := NewJWTVerifier("secret-a").Verify("not-a-token")
		assert.Error(t, err)
	})
	t.Run("no secret configured", func(t *testing.T) {
		_, err := NewJWTIssuer("").Issue("admin", nil, time.Hour)
		assert.Error(t, err)
	})
}
