package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"cardmax/internal/metrics"
	"cardmax/internal/models"
	"cardmax/internal/repository"
	"cardmax/internal/service"

	"github.com/goccy/go-json"
	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// cardNamespace derives stable card ids from issuer and name, so importing
// the same file twice updates rather than duplicates.
var cardNamespace = uuid.MustParse("6f1c7a52-8a0e-4b8e-9d57-3c2f0e9b1a44")

type seedCard struct {
	ID                    *uuid.UUID                  `json:"id,omitempty"`
	Name                  string                      `json:"name"`
	Issuer                string                      `json:"issuer"`
	Rewards               map[models.Category]float64 `json:"rewards"`
	RewardType            models.RewardType           `json:"reward_type"`
	AnnualFee             float64                     `json:"annual_fee"`
	ForeignTransactionFee float64                     `json:"foreign_transaction_fee"`
	SignUpBonus           *string                     `json:"sign_up_bonus,omitempty"`
	IsActive              *bool                       `json:"is_active,omitempty"`
}

func (s seedCard) toModel(created time.Time) *models.Card {
	id := uuid.NewSHA1(cardNamespace, []byte(strings.ToLower(s.Issuer+"/"+s.Name)))
	if s.ID != nil {
		id = *s.ID
	}
	active := true
	if s.IsActive != nil {
		active = *s.IsActive
	}
	return &models.Card{
		ID:                    id,
		Name:                  s.Name,
		Issuer:                s.Issuer,
		Rewards:               s.Rewards,
		RewardType:            s.RewardType,
		AnnualFee:             s.AnnualFee,
		ForeignTransactionFee: s.ForeignTransactionFee,
		SignUpBonus:           s.SignUpBonus,
		IsActive:              active,
		CreatedAt:             created,
	}
}

// parseCards decodes a JSON array of cards. Creation times are spaced one
// millisecond apart so catalog order follows file order.
func parseCards(data []byte, now time.Time) ([]*models.Card, error) {
	var raw []seedCard
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("failed to parse cards file: %w", err)
	}

	cards := make([]*models.Card, 0, len(raw))
	for i, s := range raw {
		cards = append(cards, s.toModel(now.Add(time.Duration(i)*time.Millisecond)))
	}
	return cards, nil
}

func cardsCmd() *cobra.Command {
	var (
		force     bool
		cacheFile string
	)

	cmd := &cobra.Command{
		Use:   "cards <file.json>",
		Short: "Import a card catalog",
		Long: `Import a JSON array of cards into the catalog. Cards without an id get
one derived from issuer and name. Unchanged files are skipped unless --force is set.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			path := filepath.Clean(args[0])

			e, err := setup(ctx)
			if err != nil {
				return err
			}
			defer e.db.Close()

			fileHash, err := calculateFileHash(path)
			if err != nil {
				return fmt.Errorf("failed to hash %s: %w", path, err)
			}

			cache, err := loadCache(cacheFile)
			if err != nil {
				e.logger.Warn("Failed to load cache, importing anyway", zap.Error(err))
				cache = &CacheData{ImportedFiles: make(map[string]ImportedFile)}
			}
			if !force && cache.unchanged(path, fileHash) {
				e.logger.Info("Cards file unchanged, skipping",
					zap.String("file", path),
					zap.Time("imported_at", cache.ImportedFiles[path].ImportedAt),
				)
				return nil
			}

			data, err := os.ReadFile(path)
			if err != nil {
				return fmt.Errorf("failed to read %s: %w", path, err)
			}
			cards, err := parseCards(data, time.Now())
			if err != nil {
				return err
			}

			cardService := service.NewCardService(
				repository.NewCardRepository(e.db, e.logger),
				e.cfg.Cache.CatalogTTL,
				metrics.New(),
				e.logger,
			)
			n, err := cardService.Import(ctx, cards)
			if err != nil {
				return err
			}

			cache.ImportedFiles[path] = ImportedFile{
				FilePath:   path,
				FileHash:   fileHash,
				ImportedAt: time.Now(),
				Records:    n,
			}
			if err := saveCache(cacheFile, cache); err != nil {
				e.logger.Warn("Failed to save cache", zap.Error(err))
			}

			e.logger.Info("Card catalog imported", zap.String("file", path), zap.Int("cards", n))
			return nil
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "import even if the file has not changed")
	cmd.Flags().StringVar(&cacheFile, "cache", defaultCacheFile, "path of the import cache file")
	return cmd
}
