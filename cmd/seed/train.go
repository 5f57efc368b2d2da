package main

import (
	"fmt"
	"os"
	"strings"

	"cardmax/internal/metrics"
	"cardmax/internal/models"
	"cardmax/internal/repository"
	"cardmax/internal/service"

	"github.com/goccy/go-json"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

type labeledExample struct {
	Description string `json:"description"`
	Category    string `json:"category"`
}

func parseExamples(data []byte) ([]string, []models.Category, error) {
	var examples []labeledExample
	if err := json.Unmarshal(data, &examples); err != nil {
		return nil, nil, fmt.Errorf("failed to parse examples file: %w", err)
	}

	descriptions := make([]string, 0, len(examples))
	categories := make([]models.Category, 0, len(examples))
	for _, ex := range examples {
		descriptions = append(descriptions, ex.Description)
		categories = append(categories, models.Category(strings.ToLower(strings.TrimSpace(ex.Category))))
	}
	return descriptions, categories, nil
}

func trainCmd() *cobra.Command {
	var examplesFile string

	cmd := &cobra.Command{
		Use:   "train",
		Short: "Train the category classifier",
		Long: `Train the category classifier and write the model snapshots to MODEL_PATH.
Without --examples the classifier is retrained from stored transactions, which
requires at least MIN_TRAINING_SAMPLES of them.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			e, err := setup(ctx)
			if err != nil {
				return err
			}
			defer e.db.Close()

			modelService := service.NewModelService(
				e.cfg.Model,
				repository.NewTransactionRepository(e.db, e.logger),
				repository.NewModelMetadataRepository(e.db, e.logger),
				metrics.New(),
				e.logger,
			)
			// Keep the existing personalization snapshot; Save rewrites both.
			if err := modelService.Load(); err != nil {
				return err
			}

			samples := 0
			if examplesFile != "" {
				data, err := os.ReadFile(examplesFile)
				if err != nil {
					return fmt.Errorf("failed to read %s: %w", examplesFile, err)
				}
				descriptions, categories, err := parseExamples(data)
				if err != nil {
					return err
				}
				if err := modelService.TrainClassifier(ctx, descriptions, categories); err != nil {
					return err
				}
				samples = len(descriptions)
			} else {
				if samples, err = modelService.RetrainFromHistory(ctx); err != nil {
					return err
				}
			}

			if err := modelService.Save(ctx); err != nil {
				return err
			}

			e.logger.Info("Classifier trained", zap.Int("samples", samples), zap.String("path", e.cfg.Model.Path))
			return nil
		},
	}

	cmd.Flags().StringVar(&examplesFile, "examples", "", "JSON array of {description, category} examples")
	return cmd
}
