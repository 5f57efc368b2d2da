package service

import (
	"testing"
	"time"

	"cardmax/internal/metrics"
	"cardmax/internal/models"
	"cardmax/pkg/config"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

var (
	trainingDescriptions = []string{"UBER EATS DELIVERY", "AMAZON.COM", "SHELL GAS STATION", "WALMART GROCERY"}
	trainingCategories   = []models.Category{
		models.CategoryDining, models.CategoryOnlineShopping, models.CategoryGas, models.CategoryGroceries,
	}
)

func newCard(name string, rewards map[models.Category]float64, rewardType models.RewardType, foreignFee float64, created time.Time) models.Card {
	return models.Card{
		ID:                    uuid.New(),
		Name:                  name,
		Issuer:                "Test Bank",
		Rewards:               rewards,
		RewardType:            rewardType,
		ForeignTransactionFee: foreignFee,
		IsActive:              true,
		CreatedAt:             created,
		UpdatedAt:             created,
	}
}

// testCatalog returns Sapphire, Freedom and Gas Plus in catalog order.
func testCatalog() []models.Card {
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	return []models.Card{
		newCard("Sapphire", map[models.Category]float64{
			models.CategoryDining: 3, models.CategoryTravel: 2, models.CategoryOther: 1,
		}, models.RewardTypePoints, 0, base),
		newCard("Freedom", map[models.Category]float64{
			models.CategoryGroceries: 5, models.CategoryOther: 1.5,
		}, models.RewardTypeCashback, 3, base.Add(time.Minute)),
		newCard("Gas Plus", map[models.Category]float64{
			models.CategoryGas: 4, models.CategoryOther: 1,
		}, models.RewardTypeCashback, 0, base.Add(2*time.Minute)),
	}
}

type fixture struct {
	cards        *fakeCards
	wallets      *fakeWallets
	transactions *fakeTransactions
	metadata     *fakeMetadata

	cardService    *CardService
	walletService  *WalletService
	modelService   *ModelService
	recommendation *RecommendationService
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	logger := zap.NewNop()
	m := metrics.New()

	f := &fixture{
		cards:        &fakeCards{cards: testCatalog()},
		wallets:      newFakeWallets(),
		transactions: &fakeTransactions{},
		metadata:     newFakeMetadata(),
	}
	cfg := config.ModelConfig{
		Path:                  t.TempDir(),
		MinTrainingSamples:    4,
		PersonalizationWeight: 0.2,
		EmbeddingDim:          8,
		Seed:                  42,
	}

	f.cardService = NewCardService(f.cards, time.Hour, m, logger)
	f.walletService = NewWalletService(f.wallets, f.cardService, logger)
	f.modelService = NewModelService(cfg, f.transactions, f.metadata, m, logger)
	f.recommendation = NewRecommendationService(f.cardService, f.walletService, f.modelService, f.transactions, m, logger)
	return f
}
