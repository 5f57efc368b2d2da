package handlers

import (
	"cardmax/internal/dto"
	"cardmax/internal/service"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

type CardHandler struct {
	cardService *service.CardService
	logger      *zap.Logger
}

func NewCardHandler(cardService *service.CardService, logger *zap.Logger) *CardHandler {
	return &CardHandler{
		cardService: cardService,
		logger:      logger,
	}
}

// ListCards godoc
// @Summary List active cards
// @Description List every active card in the catalog
// @Tags cards
// @Produce json
// @Success 200 {array} dto.CardResponse
// @Failure 500 {object} map[string]string
// @Router /api/v1/cards [get]
func (h *CardHandler) ListCards(c *fiber.Ctx) error {
	cards, err := h.cardService.ListActive(c.Context())
	if err != nil {
		return writeError(c, h.logger, err, "Failed to list cards")
	}
	return c.JSON(dto.NewCardResponses(cards))
}

// CreateCard godoc
// @Summary Add a card to the catalog
// @Description Superuser only
// @Tags cards
// @Accept json
// @Produce json
// @Param request body dto.CreateCardRequest true "Card"
// @Security Bearer
// @Success 201 {object} dto.CardResponse
// @Failure 400 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Router /api/v1/cards [post]
func (h *CardHandler) CreateCard(c *fiber.Ctx) error {
	var req dto.CreateCardRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	card, err := h.cardService.Create(c.Context(), &req)
	if err != nil {
		return writeError(c, h.logger, err, "Failed to create card")
	}
	return c.Status(fiber.StatusCreated).JSON(dto.NewCardResponse(*card))
}
