package models

import "time"

const (
	ModelNameCategoryPredictor = "category_predictor"
	ModelNamePersonalization   = "personalized_recommender"
)

type ModelMetadata struct {
	ModelName       string             `db:"model_name"`
	Version         string             `db:"version"`
	TrainedAt       time.Time          `db:"last_trained"`
	TrainingSamples int                `db:"training_samples"`
	Metrics         map[string]float64 `db:"performance_metrics"` // stored as JSONB
	IsActive        bool               `db:"is_active"`
	CreatedAt       time.Time          `db:"created_at"`
	UpdatedAt       time.Time          `db:"updated_at"`
}
