package handlers

import (
	"cardmax/internal/dto"
	"cardmax/internal/service"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

const (
	defaultHistoryLimit = 50
	maxHistoryLimit     = 500
)

type RecommendationHandler struct {
	recService *service.RecommendationService
	advisor    *service.AdvisorService // nil when GigaChat is not configured
	logger     *zap.Logger
}

func NewRecommendationHandler(recService *service.RecommendationService, advisor *service.AdvisorService, logger *zap.Logger) *RecommendationHandler {
	return &RecommendationHandler{
		recService: recService,
		advisor:    advisor,
		logger:     logger,
	}
}

// Optimize godoc
// @Summary Recommend a card anonymously
// @Description Pick the card with the highest reward for a purchase. No history is recorded.
// @Tags recommendations
// @Accept json
// @Produce json
// @Param request body dto.RecommendationRequest true "Purchase"
// @Success 200 {object} dto.RecommendationResponse
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /api/v1/optimize [post]
func (h *RecommendationHandler) Optimize(c *fiber.Ctx) error {
	var req dto.RecommendationRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}
	req.UseWallet = false

	resp, err := h.recService.Recommend(c.Context(), nil, &req)
	if err != nil {
		return writeError(c, h.logger, err, "Failed to generate recommendation")
	}
	return c.JSON(resp)
}

// Recommend godoc
// @Summary Recommend a card for the current user
// @Description Personalized recommendation; the purchase is added to the user's history
// @Tags recommendations
// @Accept json
// @Produce json
// @Param request body dto.RecommendationRequest true "Purchase"
// @Security Bearer
// @Success 200 {object} dto.RecommendationResponse
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /api/v1/recommendations [post]
func (h *RecommendationHandler) Recommend(c *fiber.Ctx) error {
	userID, err := getUserID(c)
	if err != nil {
		return unauthorized(c)
	}

	var req dto.RecommendationRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	resp, err := h.recService.Recommend(c.Context(), &userID, &req)
	if err != nil {
		return writeError(c, h.logger, err, "Failed to generate recommendation")
	}
	return c.JSON(resp)
}

// Advice godoc
// @Summary Recommendation with written advice
// @Tags recommendations
// @Accept json
// @Produce json
// @Param request body dto.RecommendationRequest true "Purchase"
// @Security Bearer
// @Success 200 {object} dto.AdviceResponse
// @Failure 503 {object} map[string]string
// @Router /api/v1/recommendations/advice [post]
func (h *RecommendationHandler) Advice(c *fiber.Ctx) error {
	if h.advisor == nil {
		return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
			"error": "Advisor is not configured",
		})
	}

	userID, err := getUserID(c)
	if err != nil {
		return unauthorized(c)
	}

	var req dto.RecommendationRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	rec, err := h.recService.Recommend(c.Context(), &userID, &req)
	if err != nil {
		return writeError(c, h.logger, err, "Failed to generate recommendation")
	}

	advice, err := h.advisor.Advise(c.Context(), &req, rec)
	if err != nil {
		h.logger.Warn("Advice generation failed", zap.Error(err))
		return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{
			"error": "Failed to generate advice",
		})
	}

	return c.JSON(dto.AdviceResponse{Recommendation: *rec, Advice: advice})
}

// ListTransactions godoc
// @Summary Purchase history
// @Description Most recent purchases recorded by personalized recommendations
// @Tags transactions
// @Produce json
// @Param limit query int false "Maximum number of entries" default(50)
// @Security Bearer
// @Success 200 {array} dto.TransactionResponse
// @Failure 401 {object} map[string]string
// @Router /api/v1/transactions [get]
func (h *RecommendationHandler) ListTransactions(c *fiber.Ctx) error {
	userID, err := getUserID(c)
	if err != nil {
		return unauthorized(c)
	}

	limit := c.QueryInt("limit", defaultHistoryLimit)
	if limit <= 0 || limit > maxHistoryLimit {
		limit = defaultHistoryLimit
	}

	txs, err := h.recService.History(c.Context(), userID, uint64(limit))
	if err != nil {
		return writeError(c, h.logger, err, "Failed to list transactions")
	}

	resp := make([]dto.TransactionResponse, 0, len(txs))
	for _, tx := range txs {
		resp = append(resp, dto.NewTransactionResponse(tx))
	}
	return c.JSON(resp)
}

