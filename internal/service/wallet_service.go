package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"cardmax/internal/models"
	"cardmax/internal/repository"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

var ErrCardNotInWallet = errors.New("card not in wallet")

type WalletService struct {
	wallets WalletStore
	cards   *CardService
	logger  *zap.Logger
}

func NewWalletService(wallets WalletStore, cards *CardService, logger *zap.Logger) *WalletService {
	return &WalletService{
		wallets: wallets,
		cards:   cards,
		logger:  logger,
	}
}

func (s *WalletService) Add(ctx context.Context, userID, cardID uuid.UUID) error {
	card, err := s.cards.Get(ctx, cardID)
	if err != nil {
		return err
	}
	if !card.IsActive {
		return ErrCardNotFound
	}

	err = s.wallets.Add(ctx, &models.WalletCard{
		UserID:    userID,
		CardID:    cardID,
		CreatedAt: time.Now(),
	})
	if err != nil {
		return fmt.Errorf("failed to add card to wallet: %w", err)
	}

	s.logger.Info("Card added to wallet",
		zap.String("user_id", userID.String()),
		zap.String("card_id", cardID.String()),
	)
	return nil
}

func (s *WalletService) Remove(ctx context.Context, userID, cardID uuid.UUID) error {
	err := s.wallets.Remove(ctx, userID, cardID)
	if errors.Is(err, repository.ErrNotFound) {
		return ErrCardNotInWallet
	}
	if err != nil {
		return fmt.Errorf("failed to remove card from wallet: %w", err)
	}
	return nil
}

// List returns the active cards in the user's wallet, in catalog order.
func (s *WalletService) List(ctx context.Context, userID uuid.UUID) ([]models.Card, error) {
	ids, err := s.wallets.CardIDs(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list wallet: %w", err)
	}

	catalog, err := s.cards.ListActive(ctx)
	if err != nil {
		return nil, err
	}

	return filterCatalog(catalog, ids), nil
}

func filterCatalog(catalog []models.Card, ids []uuid.UUID) []models.Card {
	owned := make(map[uuid.UUID]struct{}, len(ids))
	for _, id := range ids {
		owned[id] = struct{}{}
	}

	cards := make([]models.Card, 0, len(ids))
	for _, card := range catalog {
		if _, ok := owned[card.ID]; ok {
			cards = append(cards, card)
		}
	}
	return cards
}
