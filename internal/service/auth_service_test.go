package service

import (
	"context"
	"testing"
	"time"

	"cardmax/internal/dto"
	"cardmax/pkg/auth"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newAuthService() (*AuthService, *auth.JWTManager, *fakeUsers) {
	users := newFakeUsers()
	jwtManager := auth.NewJWTManager("test-secret", 30*time.Minute, time.Hour)
	return NewAuthService(users, jwtManager, zap.NewNop()), jwtManager, users
}

func TestAuthService_RegisterAndLogin(t *testing.T) {
	svc, jwtManager, _ := newAuthService()
	ctx := context.Background()

	resp, err := svc.Register(ctx, &dto.RegisterRequest{Email: " Alice@Example.com ", Password: "password123"})
	require.NoError(t, err)
	assert.Equal(t, "alice@example.com", resp.User.Email)
	assert.Equal(t, "Bearer", resp.TokenType)
	assert.Equal(t, int64(1800), resp.ExpiresIn)

	claims, err := jwtManager.ValidateToken(resp.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, resp.User.ID, claims.UserID)
	assert.False(t, claims.IsSuperuser)

	login, err := svc.Login(ctx, &dto.LoginRequest{Email: "alice@example.com", Password: "password123"})
	require.NoError(t, err)
	assert.Equal(t, resp.User.ID, login.User.ID)
}

func TestAuthService_RegisterDuplicate(t *testing.T) {
	svc, _, _ := newAuthService()
	ctx := context.Background()

	_, err := svc.Register(ctx, &dto.RegisterRequest{Email: "bob@example.com", Password: "password123"})
	require.NoError(t, err)

	_, err = svc.Register(ctx, &dto.RegisterRequest{Email: "BOB@example.com", Password: "other-password"})
	assert.ErrorIs(t, err, ErrUserExists)
}

func TestAuthService_LoginFailures(t *testing.T) {
	svc, _, users := newAuthService()
	ctx := context.Background()

	resp, err := svc.Register(ctx, &dto.RegisterRequest{Email: "carol@example.com", Password: "password123"})
	require.NoError(t, err)

	_, err = svc.Login(ctx, &dto.LoginRequest{Email: "carol@example.com", Password: "wrong"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = svc.Login(ctx, &dto.LoginRequest{Email: "nobody@example.com", Password: "password123"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	for _, u := range users.byID {
		if u.ID.String() == resp.User.ID {
			u.IsActive = false
		}
	}
	_, err = svc.Login(ctx, &dto.LoginRequest{Email: "carol@example.com", Password: "password123"})
	assert.ErrorIs(t, err, ErrInactiveUser)
}

func TestAuthService_RefreshToken(t *testing.T) {
	svc, _, _ := newAuthService()
	ctx := context.Background()

	resp, err := svc.Register(ctx, &dto.RegisterRequest{Email: "dave@example.com", Password: "password123"})
	require.NoError(t, err)

	refreshed, err := svc.RefreshToken(ctx, resp.RefreshToken)
	require.NoError(t, err)
	assert.Equal(t, resp.User.ID, refreshed.User.ID)

	_, err = svc.RefreshToken(ctx, resp.AccessToken)
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = svc.RefreshToken(ctx, "garbage")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}
