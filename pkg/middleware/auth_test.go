package middleware

import (
	"net/http/httptest"
	"testing"
	"time"

	"cardmax/pkg/auth"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newApp(jwtManager *auth.JWTManager) *fiber.App {
	app := fiber.New()
	logger := zap.NewNop()
	app.Get("/me", AuthMiddleware(jwtManager, logger), func(c *fiber.Ctx) error {
		return c.SendString(c.Locals("userID").(string))
	})
	app.Get("/admin", AuthMiddleware(jwtManager, logger), RequireSuperuser(logger), func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusNoContent)
	})
	return app
}

func TestAuthMiddleware(t *testing.T) {
	m := auth.NewJWTManager("secret", time.Minute, time.Hour)
	app := newApp(m)

	user, err := m.GenerateToken("user-1", "u@example.com", false)
	require.NoError(t, err)
	admin, err := m.GenerateToken("admin-1", "a@example.com", true)
	require.NoError(t, err)

	tests := []struct {
		name   string
		path   string
		header string
		want   int
	}{
		{"missing token", "/me", "", fiber.StatusUnauthorized},
		{"bad token", "/me", "Bearer nope", fiber.StatusUnauthorized},
		{"valid token", "/me", "Bearer " + user, fiber.StatusOK},
		{"user on admin route", "/admin", "Bearer " + user, fiber.StatusForbidden},
		{"superuser on admin route", "/admin", "Bearer " + admin, fiber.StatusNoContent},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest("GET", tt.path, nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			resp, err := app.Test(req)
			require.NoError(t, err)
			assert.Equal(t, tt.want, resp.StatusCode)
		})
	}
}
