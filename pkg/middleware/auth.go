package middleware

import (
	"strings"

	"cardmax/pkg/auth"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

func AuthMiddleware(jwtManager *auth.JWTManager, logger *zap.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		token := c.Get("Authorization")
		if token == "" {
			logger.Warn("Missing authorization token")
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "Authorization token required",
			})
		}

		token = strings.TrimPrefix(token, "Bearer ")

		claims, err := jwtManager.ValidateToken(token)
		if err != nil {
			logger.Warn("Invalid token", zap.Error(err))
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "Invalid or expired token",
			})
		}

		c.Locals("userID", claims.UserID)
		c.Locals("email", claims.Email)
		c.Locals("isSuperuser", claims.IsSuperuser)

		return c.Next()
	}
}

// RequireSuperuser must run after AuthMiddleware.
func RequireSuperuser(logger *zap.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if isSuper, _ := c.Locals("isSuperuser").(bool); !isSuper {
			logger.Warn("Superuser route denied", zap.Any("user_id", c.Locals("userID")))
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
				"error": "Superuser privileges required",
			})
		}
		return c.Next()
	}
}
