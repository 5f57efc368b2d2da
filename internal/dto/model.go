package dto

type PredictCategoryRequest struct {
	Description string `json:"description" validate:"required"`
}

type PredictCategoryResponse struct {
	Description string `json:"description"`
	Category    string `json:"category"`
	Trained     bool   `json:"trained"`
}

type TrainExample struct {
	Description string `json:"description"`
	Category    string `json:"category"`
}

type TrainClassifierRequest struct {
	Examples []TrainExample `json:"examples" validate:"required,min=1"`
}

type ModelMetadataResponse struct {
	ModelName       string             `json:"model_name"`
	Version         string             `json:"version"`
	LastTrained     string             `json:"last_trained"`
	TrainingSamples int                `json:"training_samples"`
	Metrics         map[string]float64 `json:"metrics,omitempty"`
}
