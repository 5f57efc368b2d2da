package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJWTManager_AccessToken(t *testing.T) {
	m := NewJWTManager("test-secret-with-enough-length-000", 30*time.Minute, time.Hour)

	token, err := m.GenerateToken("user-1", "a@example.com", true)
	require.NoError(t, err)

	claims, err := m.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, "user-1", claims.UserID)
	assert.Equal(t, "a@example.com", claims.Email)
	assert.True(t, claims.IsSuperuser)
	assert.Equal(t, 30*time.Minute, m.GetTokenDuration())
}

func TestJWTManager_TokenTypesAreNotInterchangeable(t *testing.T) {
	m := NewJWTManager("secret", time.Minute, time.Hour)

	refresh, err := m.GenerateRefreshToken("user-1")
	require.NoError(t, err)
	access, err := m.GenerateToken("user-1", "a@example.com", false)
	require.NoError(t, err)

	_, err = m.ValidateToken(refresh)
	assert.ErrorIs(t, err, ErrInvalidToken)
	_, err = m.ValidateRefreshToken(access)
	assert.ErrorIs(t, err, ErrInvalidToken)

	claims, err := m.ValidateRefreshToken(refresh)
	require.NoError(t, err)
	assert.Equal(t, "user-1", claims.UserID)
}

func TestJWTManager_Rejects(t *testing.T) {
	m := NewJWTManager("secret", time.Minute, time.Hour)
	other := NewJWTManager("other-secret", time.Minute, time.Hour)
	expired := NewJWTManager("secret", -time.Minute, time.Hour)

	foreign, err := other.GenerateToken("u", "e", false)
	require.NoError(t, err)
	stale, err := expired.GenerateToken("u", "e", false)
	require.NoError(t, err)

	for name, token := range map[string]string{
		"wrong secret": foreign,
		"expired":      stale,
		"garbage":      "not.a.token",
	} {
		t.Run(name, func(t *testing.T) {
			_, err := m.ValidateToken(token)
			assert.ErrorIs(t, err, ErrInvalidToken)
		})
	}
}

func TestPasswordHash(t *testing.T) {
	hash, err := HashPassword("hunter22")
	require.NoError(t, err)

	assert.NotEqual(t, "hunter22", hash)
	assert.True(t, CheckPasswordHash("hunter22", hash))
	assert.False(t, CheckPasswordHash("hunter23", hash))
}
