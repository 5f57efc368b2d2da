package handlers

import (
	"errors"
	"strings"
	"time"

	"cardmax/internal/dto"
	"cardmax/internal/models"
	"cardmax/internal/repository"
	"cardmax/internal/service"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

type ModelHandler struct {
	modelService *service.ModelService
	logger       *zap.Logger
}

func NewModelHandler(modelService *service.ModelService, logger *zap.Logger) *ModelHandler {
	return &ModelHandler{
		modelService: modelService,
		logger:       logger,
	}
}

// PredictCategory godoc
// @Summary Predict a spending category
// @Description Classify a transaction description. An untrained classifier answers "other".
// @Tags models
// @Accept json
// @Produce json
// @Param request body dto.PredictCategoryRequest true "Description"
// @Success 200 {object} dto.PredictCategoryResponse
// @Failure 400 {object} map[string]string
// @Router /api/v1/categories/predict [post]
func (h *ModelHandler) PredictCategory(c *fiber.Ctx) error {
	var req dto.PredictCategoryRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}
	if strings.TrimSpace(req.Description) == "" {
		return badRequest(c, "Description is required")
	}

	category, trained := h.modelService.PredictCategory(req.Description)
	return c.JSON(dto.PredictCategoryResponse{
		Description: req.Description,
		Category:    string(category),
		Trained:     trained,
	})
}

// TrainClassifier godoc
// @Summary Train the category classifier
// @Description Superuser only. Replaces the classifier with one fit on the given examples.
// @Tags models
// @Accept json
// @Produce json
// @Param request body dto.TrainClassifierRequest true "Labeled examples"
// @Security Bearer
// @Success 200 {object} dto.ModelMetadataResponse
// @Failure 400 {object} map[string]string
// @Router /api/v1/models/classifier/train [post]
func (h *ModelHandler) TrainClassifier(c *fiber.Ctx) error {
	var req dto.TrainClassifierRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	descriptions := make([]string, 0, len(req.Examples))
	categories := make([]models.Category, 0, len(req.Examples))
	for _, ex := range req.Examples {
		descriptions = append(descriptions, ex.Description)
		categories = append(categories, models.Category(strings.ToLower(strings.TrimSpace(ex.Category))))
	}

	if err := h.modelService.TrainClassifier(c.Context(), descriptions, categories); err != nil {
		return writeError(c, h.logger, err, "Failed to train classifier")
	}
	return h.metadata(c, models.ModelNameCategoryPredictor, len(descriptions))
}

// RetrainClassifier godoc
// @Summary Retrain the classifier from stored transactions
// @Description Superuser only. Requires at least MIN_TRAINING_SAMPLES labeled transactions.
// @Tags models
// @Produce json
// @Security Bearer
// @Success 200 {object} dto.ModelMetadataResponse
// @Failure 400 {object} map[string]string
// @Router /api/v1/models/classifier/retrain [post]
func (h *ModelHandler) RetrainClassifier(c *fiber.Ctx) error {
	n, err := h.modelService.RetrainFromHistory(c.Context())
	if err != nil {
		return writeError(c, h.logger, err, "Failed to retrain classifier")
	}
	return h.metadata(c, models.ModelNameCategoryPredictor, n)
}

// SaveModels godoc
// @Summary Persist model snapshots
// @Description Superuser only
// @Tags models
// @Security Bearer
// @Success 204
// @Failure 500 {object} map[string]string
// @Router /api/v1/models/save [post]
func (h *ModelHandler) SaveModels(c *fiber.Ctx) error {
	if err := h.modelService.Save(c.Context()); err != nil {
		return writeError(c, h.logger, err, "Failed to save models")
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// metadata answers with the stored metadata, or a minimal record when the
// metadata store has nothing for the model.
func (h *ModelHandler) metadata(c *fiber.Ctx, name string, samples int) error {
	md, err := h.modelService.Metadata(c.Context(), name)
	if err != nil {
		if !errors.Is(err, repository.ErrNotFound) {
			h.logger.Warn("Failed to read model metadata", zap.Error(err))
		}
		return c.JSON(dto.ModelMetadataResponse{
			ModelName:       name,
			LastTrained:     time.Now().UTC().Format(time.RFC3339),
			TrainingSamples: samples,
		})
	}

	return c.JSON(dto.ModelMetadataResponse{
		ModelName:       md.ModelName,
		Version:         md.Version,
		LastTrained:     md.TrainedAt.Format(time.RFC3339),
		TrainingSamples: md.TrainingSamples,
		Metrics:         md.Metrics,
	})
}
