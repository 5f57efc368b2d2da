package repository

import (
	"context"
	"fmt"

	"cardmax/internal/models"

	"github.com/Masterminds/squirrel"
	"github.com/goccy/go-json"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

var metadataColumns = []string{
	"model_name", "version", "last_trained", "training_samples",
	"performance_metrics", "is_active", "created_at", "updated_at",
}

type ModelMetadataRepository struct {
	db     *pgxpool.Pool
	logger *zap.Logger
}

func NewModelMetadataRepository(db *pgxpool.Pool, logger *zap.Logger) *ModelMetadataRepository {
	return &ModelMetadataRepository{
		db:     db,
		logger: logger,
	}
}

// Upsert keeps one row per model name.
func (r *ModelMetadataRepository) Upsert(ctx context.Context, md *models.ModelMetadata) error {
	metrics, err := json.Marshal(md.Metrics)
	if err != nil {
		return fmt.Errorf("failed to encode metrics: %w", err)
	}

	query := squirrel.Insert("ml_model_metadata").
		Columns(metadataColumns...).
		Values(md.ModelName, md.Version, md.TrainedAt, md.TrainingSamples, string(metrics), md.IsActive, md.CreatedAt, md.UpdatedAt).
		Suffix(`ON CONFLICT (model_name) DO UPDATE SET
			version = EXCLUDED.version,
			last_trained = EXCLUDED.last_trained,
			training_samples = EXCLUDED.training_samples,
			performance_metrics = EXCLUDED.performance_metrics,
			is_active = EXCLUDED.is_active,
			updated_at = EXCLUDED.updated_at`).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return err
	}

	_, err = r.db.Exec(ctx, sql, args...)
	return err
}

func (r *ModelMetadataRepository) Get(ctx context.Context, modelName string) (*models.ModelMetadata, error) {
	query := squirrel.Select(metadataColumns...).
		From("ml_model_metadata").
		Where(squirrel.Eq{"model_name": modelName}).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, err
	}

	var (
		md      models.ModelMetadata
		metrics []byte
	)
	err = r.db.QueryRow(ctx, sql, args...).Scan(
		&md.ModelName, &md.Version, &md.TrainedAt, &md.TrainingSamples, &metrics, &md.IsActive, &md.CreatedAt, &md.UpdatedAt,
	)
	if err != nil {
		return nil, notFound(err)
	}
	if err := json.Unmarshal(metrics, &md.Metrics); err != nil {
		return nil, fmt.Errorf("failed to decode metrics: %w", err)
	}

	return &md, nil
}
