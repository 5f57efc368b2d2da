package service

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"cardmax/internal/dto"
	"cardmax/internal/engine"
	"cardmax/internal/metrics"
	"cardmax/internal/models"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const maxAlternatives = 3

type RecommendationService struct {
	cards        *CardService
	wallets      *WalletService
	modelSvc     *ModelService
	transactions TransactionLog
	metrics      *metrics.Collector
	logger       *zap.Logger
}

func NewRecommendationService(
	cards *CardService,
	wallets *WalletService,
	modelService *ModelService,
	transactions TransactionLog,
	m *metrics.Collector,
	logger *zap.Logger,
) *RecommendationService {
	return &RecommendationService{
		cards:        cards,
		wallets:      wallets,
		modelSvc:     modelService,
		transactions: transactions,
		metrics:      m,
		logger:       logger,
	}
}

// Recommend picks the best card for a purchase. A nil userID gives an
// anonymous, unpersonalized answer and nothing is recorded.
func (s *RecommendationService) Recommend(ctx context.Context, userID *uuid.UUID, req *dto.RecommendationRequest) (*dto.RecommendationResponse, error) {
	category, predicted, err := s.resolveCategory(req)
	if err != nil {
		return nil, err
	}

	catalog, err := s.catalogFor(ctx, userID, req.UseWallet)
	if err != nil {
		return nil, err
	}

	q := models.Query{
		Category:           category,
		Amount:             req.Amount,
		ForeignTransaction: req.ForeignTransaction,
	}

	var uid string
	if userID != nil {
		uid = userID.String()
	}

	rec, err := s.modelSvc.Recommend(catalog, q, uid)
	if err != nil {
		return nil, err
	}
	s.metrics.ObserveRecommendation(rec.Personalized, rec.RewardValue)

	if userID != nil {
		s.record(ctx, *userID, req, q, rec)
	}

	s.logger.Debug("Recommendation generated",
		zap.String("category", string(category)),
		zap.Bool("category_predicted", predicted),
		zap.String("card", rec.Card.Name),
		zap.Float64("reward_value", rec.RewardValue),
		zap.Bool("personalized", rec.Personalized),
	)

	return &dto.RecommendationResponse{
		Card:              dto.NewCardResponse(rec.Card),
		RewardValue:       rec.RewardValue,
		Explanation:       rec.Explanation,
		Category:          string(category),
		CategoryPredicted: predicted,
		Personalized:      rec.Personalized,
		Alternatives:      s.alternatives(catalog, q, rec.Card.ID),
	}, nil
}

// History returns the user's most recent recorded purchases.
func (s *RecommendationService) History(ctx context.Context, userID uuid.UUID, limit uint64) ([]*models.Transaction, error) {
	txs, err := s.transactions.ListByUser(ctx, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list transactions: %w", err)
	}
	return txs, nil
}

func (s *RecommendationService) resolveCategory(req *dto.RecommendationRequest) (models.Category, bool, error) {
	if raw := strings.TrimSpace(req.Category); raw != "" {
		return models.Category(strings.ToLower(raw)), false, nil
	}
	if strings.TrimSpace(req.Description) == "" {
		return "", false, &engine.ValidationError{Field: "category", Reason: "category or description is required"}
	}
	category, _ := s.modelSvc.PredictCategory(req.Description)
	return category, true, nil
}

func (s *RecommendationService) catalogFor(ctx context.Context, userID *uuid.UUID, useWallet bool) ([]models.Card, error) {
	if useWallet && userID != nil {
		return s.wallets.List(ctx, *userID)
	}
	return s.cards.ListActive(ctx)
}

// alternatives lists the next best cards by unpersonalized value, highest
// first, skipping the recommended one.
func (s *RecommendationService) alternatives(catalog []models.Card, q models.Query, chosen uuid.UUID) []dto.AlternativeResponse {
	ranked := s.modelSvc.Rank(catalog, q)
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Value > ranked[j].Value
	})

	out := make([]dto.AlternativeResponse, 0, maxAlternatives)
	for _, rc := range ranked {
		if rc.Card.ID == chosen {
			continue
		}
		if len(out) == maxAlternatives {
			break
		}
		out = append(out, dto.AlternativeResponse{
			Card:        dto.NewCardResponse(rc.Card),
			RewardValue: rc.Value,
		})
	}
	return out
}

// record appends the purchase to the user's history. Failures are logged;
// the recommendation itself already succeeded.
func (s *RecommendationService) record(ctx context.Context, userID uuid.UUID, req *dto.RecommendationRequest, q models.Query, rec *models.Recommendation) {
	cardID := rec.Card.ID
	value := rec.RewardValue
	tx := &models.Transaction{
		ID:          uuid.New(),
		UserID:      userID,
		Description: strings.TrimSpace(req.Description),
		Amount:      q.Amount,
		Category:    q.Category,
		CardID:      &cardID,
		RewardValue: &value,
		IsForeign:   q.ForeignTransaction,
		Merchant:    req.Merchant,
		Location:    req.Location,
		CreatedAt:   time.Now(),
	}
	if err := s.transactions.Create(ctx, tx); err != nil {
		s.logger.Warn("Failed to record transaction",
			zap.String("user_id", userID.String()),
			zap.Error(err),
		)
	}
}
