package handlers

import (
	"cardmax/internal/dto"
	"cardmax/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type WalletHandler struct {
	walletService *service.WalletService
	logger        *zap.Logger
}

func NewWalletHandler(walletService *service.WalletService, logger *zap.Logger) *WalletHandler {
	return &WalletHandler{
		walletService: walletService,
		logger:        logger,
	}
}

// GetWallet godoc
// @Summary List wallet cards
// @Description List the active cards in the current user's wallet
// @Tags wallet
// @Produce json
// @Security Bearer
// @Success 200 {object} dto.WalletResponse
// @Failure 401 {object} map[string]string
// @Router /api/v1/wallet [get]
func (h *WalletHandler) GetWallet(c *fiber.Ctx) error {
	userID, err := getUserID(c)
	if err != nil {
		return unauthorized(c)
	}

	cards, err := h.walletService.List(c.Context(), userID)
	if err != nil {
		return writeError(c, h.logger, err, "Failed to list wallet")
	}
	return c.JSON(dto.WalletResponse{Cards: dto.NewCardResponses(cards)})
}

// AddCard godoc
// @Summary Add a card to the wallet
// @Tags wallet
// @Produce json
// @Param cardId path string true "Card ID"
// @Security Bearer
// @Success 204
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /api/v1/wallet/{cardId} [post]
func (h *WalletHandler) AddCard(c *fiber.Ctx) error {
	userID, err := getUserID(c)
	if err != nil {
		return unauthorized(c)
	}

	cardID, err := uuid.Parse(c.Params("cardId"))
	if err != nil {
		return badRequest(c, "Invalid card ID")
	}

	if err := h.walletService.Add(c.Context(), userID, cardID); err != nil {
		return writeError(c, h.logger, err, "Failed to add card to wallet")
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// RemoveCard godoc
// @Summary Remove a card from the wallet
// @Tags wallet
// @Param cardId path string true "Card ID"
// @Security Bearer
// @Success 204
// @Failure 404 {object} map[string]string
// @Router /api/v1/wallet/{cardId} [delete]
func (h *WalletHandler) RemoveCard(c *fiber.Ctx) error {
	userID, err := getUserID(c)
	if err != nil {
		return unauthorized(c)
	}

	cardID, err := uuid.Parse(c.Params("cardId"))
	if err != nil {
		return badRequest(c, "Invalid card ID")
	}

	if err := h.walletService.Remove(c.Context(), userID, cardID); err != nil {
		return writeError(c, h.logger, err, "Failed to remove card from wallet")
	}
	return c.SendStatus(fiber.StatusNoContent)
}
