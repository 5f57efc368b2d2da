package handlers

import (
	"errors"

	"cardmax/internal/engine"
	"cardmax/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

var errNoUser = errors.New("no authenticated user")

// getUserID reads the user id stored by middleware.AuthMiddleware.
func getUserID(c *fiber.Ctx) (uuid.UUID, error) {
	raw, ok := c.Locals("userID").(string)
	if !ok || raw == "" {
		return uuid.Nil, errNoUser
	}
	return uuid.Parse(raw)
}

// writeError maps service and engine errors to HTTP responses. Anything
// unrecognized is logged and reported as fallback with status 500.
func writeError(c *fiber.Ctx, logger *zap.Logger, err error, fallback string) error {
	var verr *engine.ValidationError
	switch {
	case errors.As(err, &verr):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": verr.Error(),
			"field": verr.Field,
		})
	case errors.Is(err, engine.ErrNoCards),
		errors.Is(err, service.ErrCardNotFound),
		errors.Is(err, service.ErrCardNotInWallet):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": err.Error(),
		})
	case errors.Is(err, engine.ErrNoBestCard),
		errors.Is(err, service.ErrInvalidCard),
		errors.Is(err, service.ErrInsufficientTrainingData):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	logger.Error(fallback, zap.Error(err))
	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
		"error": fallback,
	})
}

func badRequest(c *fiber.Ctx, msg string) error {
	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
		"error": msg,
	})
}

func unauthorized(c *fiber.Ctx) error {
	return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
		"error": "Unauthorized",
	})
}
