package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"cardmax/internal/dto"
	"cardmax/internal/metrics"
	"cardmax/internal/models"
	"cardmax/internal/repository"
	"cardmax/pkg/cache"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

var (
	ErrCardNotFound = errors.New("card not found")
	ErrInvalidCard  = errors.New("invalid card")
)

// CardService serves the active catalog through a read-through TTL cache.
// Returned slices are shared and must not be modified.
type CardService struct {
	store   CardStore
	catalog *cache.TTL[[]models.Card]
	metrics *metrics.Collector
	logger  *zap.Logger
}

func NewCardService(store CardStore, ttl time.Duration, m *metrics.Collector, logger *zap.Logger) *CardService {
	return &CardService{
		store:   store,
		catalog: cache.NewTTL[[]models.Card](ttl, store.ListActive),
		metrics: m,
		logger:  logger,
	}
}

func (s *CardService) ListActive(ctx context.Context) ([]models.Card, error) {
	cards, hit, err := s.catalog.Get(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load card catalog: %w", err)
	}
	s.metrics.ObserveCatalogLookup(hit)
	return cards, nil
}

func (s *CardService) Get(ctx context.Context, id uuid.UUID) (*models.Card, error) {
	card, err := s.store.GetByID(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, ErrCardNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get card: %w", err)
	}
	return card, nil
}

func (s *CardService) Create(ctx context.Context, req *dto.CreateCardRequest) (*models.Card, error) {
	card := &models.Card{
		Name:                  req.Name,
		Issuer:                req.Issuer,
		Rewards:               req.Rewards,
		RewardType:            req.RewardType,
		AnnualFee:             req.AnnualFee,
		ForeignTransactionFee: req.ForeignTransactionFee,
		SignUpBonus:           req.SignUpBonus,
		IsActive:              true,
	}
	if err := s.save(ctx, card); err != nil {
		return nil, err
	}
	s.catalog.Invalidate()

	s.logger.Info("Card created", zap.String("card_id", card.ID.String()), zap.String("name", card.Name))
	return card, nil
}

// Import upserts a batch of cards, keeping ids that are already set. The
// whole batch is validated before anything is written.
func (s *CardService) Import(ctx context.Context, cards []*models.Card) (int, error) {
	for i, card := range cards {
		applyCardDefaults(card)
		if err := card.Validate(); err != nil {
			return 0, fmt.Errorf("%w: card %d: %v", ErrInvalidCard, i, err)
		}
	}

	imported := 0
	for _, card := range cards {
		if err := s.save(ctx, card); err != nil {
			return imported, err
		}
		imported++
	}
	s.catalog.Invalidate()

	s.logger.Info("Cards imported", zap.Int("count", imported))
	return imported, nil
}

func (s *CardService) save(ctx context.Context, card *models.Card) error {
	applyCardDefaults(card)
	if err := card.Validate(); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidCard, err)
	}

	now := time.Now()
	if card.ID == uuid.Nil {
		card.ID = uuid.New()
	}
	if card.CreatedAt.IsZero() {
		card.CreatedAt = now
	}
	card.UpdatedAt = now

	if err := s.store.Upsert(ctx, card); err != nil {
		return fmt.Errorf("failed to save card: %w", err)
	}
	return nil
}

func applyCardDefaults(card *models.Card) {
	if card.Rewards == nil {
		card.Rewards = map[models.Category]float64{}
	}
	if card.RewardType == "" {
		card.RewardType = models.RewardTypeCashback
	}
}
