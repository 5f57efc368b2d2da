package service

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"path/filepath"
	"sync"
	"time"

	"cardmax/internal/engine"
	"cardmax/internal/metrics"
	"cardmax/internal/models"
	"cardmax/pkg/config"

	"go.uber.org/zap"
)

const (
	classifierSnapshot      = "category_predictor.json"
	personalizationSnapshot = "personalized_recommender.json"

	// historyLimit caps how many stored transactions a retrain reads.
	historyLimit = 50000
)

var ErrInsufficientTrainingData = errors.New("insufficient training data")

// ModelService owns the in-memory classifier and personalization scorer.
// Predictions take a read lock on the classifier; a recommendation holds the
// personalization lock across scoring and the follow-up update.
type ModelService struct {
	classifierMu sync.RWMutex
	classifier   *engine.Classifier

	personalizationMu sync.Mutex
	scorer            *engine.Scorer
	recommender       *engine.Recommender

	cfg          config.ModelConfig
	transactions TransactionLog
	metadata     MetadataStore
	metrics      *metrics.Collector
	logger       *zap.Logger
}

func NewModelService(
	cfg config.ModelConfig,
	transactions TransactionLog,
	metadata MetadataStore,
	m *metrics.Collector,
	logger *zap.Logger,
) *ModelService {
	scorer := engine.NewScorer(cfg.EmbeddingDim, rand.New(rand.NewSource(cfg.Seed))) //nolint:gosec // embedding init does not need crypto randomness
	return &ModelService{
		classifier:   engine.NewClassifier(),
		scorer:       scorer,
		recommender:  engine.NewRecommender(scorer, cfg.PersonalizationWeight),
		cfg:          cfg,
		transactions: transactions,
		metadata:     metadata,
		metrics:      m,
		logger:       logger,
	}
}

// PredictCategory returns the predicted category and whether the classifier
// was trained. An untrained classifier always answers CategoryOther.
func (s *ModelService) PredictCategory(description string) (models.Category, bool) {
	s.classifierMu.RLock()
	category := s.classifier.Predict(description)
	trained := s.classifier.Trained()
	s.classifierMu.RUnlock()

	s.metrics.ObservePrediction(string(category))
	return category, trained
}

// TrainClassifier fits a fresh classifier and swaps it in on success.
func (s *ModelService) TrainClassifier(ctx context.Context, descriptions []string, categories []models.Category) error {
	next := engine.NewClassifier()
	err := next.Train(descriptions, categories)
	s.metrics.ObserveTraining(len(descriptions), err)
	if err != nil {
		return err
	}

	accuracy := trainingAccuracy(next, descriptions, categories)

	s.classifierMu.Lock()
	s.classifier = next
	s.classifierMu.Unlock()

	s.logger.Info("Category classifier trained",
		zap.Int("samples", len(descriptions)),
		zap.Int("classes", len(next.Classes())),
		zap.Float64("training_accuracy", accuracy),
	)

	s.recordMetadata(ctx, models.ModelNameCategoryPredictor, len(descriptions), map[string]float64{
		"training_accuracy": accuracy,
		"classes":           float64(len(next.Classes())),
	})
	return nil
}

// RetrainFromHistory trains on stored transactions once at least
// MinTrainingSamples usable ones exist. It returns the number of examples used.
func (s *ModelService) RetrainFromHistory(ctx context.Context) (int, error) {
	history, err := s.transactions.ListLabeled(ctx, historyLimit)
	if err != nil {
		return 0, fmt.Errorf("failed to load training data: %w", err)
	}

	descriptions := make([]string, 0, len(history))
	categories := make([]models.Category, 0, len(history))
	for _, tx := range history {
		if tx.Description == "" || !tx.Category.Valid() {
			continue
		}
		descriptions = append(descriptions, tx.Description)
		categories = append(categories, tx.Category)
	}

	if len(descriptions) < s.cfg.MinTrainingSamples {
		return len(descriptions), fmt.Errorf("%w: have %d, need %d",
			ErrInsufficientTrainingData, len(descriptions), s.cfg.MinTrainingSamples)
	}

	if err := s.TrainClassifier(ctx, descriptions, categories); err != nil {
		return 0, err
	}
	return len(descriptions), nil
}

// Recommend runs the recommender under the personalization lock. An empty
// userID yields an unpersonalized recommendation.
func (s *ModelService) Recommend(catalog []models.Card, q models.Query, userID string) (*models.Recommendation, error) {
	s.personalizationMu.Lock()
	defer s.personalizationMu.Unlock()

	rec, err := s.recommender.Recommend(catalog, q, userID)
	if err != nil {
		return nil, err
	}
	s.metrics.SetPersonalizationSize(s.scorer.Users(), s.scorer.Cards())
	return rec, nil
}

// Rank values every card without personalization, in catalog order.
func (s *ModelService) Rank(catalog []models.Card, q models.Query) []engine.RankedCard {
	return s.recommender.Rank(catalog, q, nil)
}

// Save writes both model snapshots under the configured model path.
func (s *ModelService) Save(ctx context.Context) error {
	s.classifierMu.RLock()
	err := s.classifier.Save(s.snapshotPath(classifierSnapshot))
	s.classifierMu.RUnlock()
	if err != nil {
		return fmt.Errorf("failed to save classifier: %w", err)
	}

	s.personalizationMu.Lock()
	err = s.scorer.Save(s.snapshotPath(personalizationSnapshot))
	users, cards, dim := s.scorer.Users(), s.scorer.Cards(), s.scorer.Dim()
	s.personalizationMu.Unlock()
	if err != nil {
		return fmt.Errorf("failed to save personalization model: %w", err)
	}

	s.logger.Info("Models saved", zap.String("path", s.cfg.Path))
	s.recordMetadata(ctx, models.ModelNamePersonalization, users, map[string]float64{
		"users":         float64(users),
		"cards":         float64(cards),
		"embedding_dim": float64(dim),
	})
	return nil
}

// Load restores both snapshots. Missing snapshots are a cold start; a
// corrupt one is reported and leaves that model as it was.
func (s *ModelService) Load() error {
	var errs []error

	s.classifierMu.Lock()
	if err := s.classifier.Load(s.snapshotPath(classifierSnapshot)); err != nil {
		errs = append(errs, fmt.Errorf("failed to load classifier: %w", err))
	}
	trained := s.classifier.Trained()
	s.classifierMu.Unlock()

	s.personalizationMu.Lock()
	if err := s.scorer.Load(s.snapshotPath(personalizationSnapshot)); err != nil {
		errs = append(errs, fmt.Errorf("failed to load personalization model: %w", err))
	}
	users, cards := s.scorer.Users(), s.scorer.Cards()
	s.personalizationMu.Unlock()

	s.metrics.SetPersonalizationSize(users, cards)
	s.logger.Info("Models loaded",
		zap.String("path", s.cfg.Path),
		zap.Bool("classifier_trained", trained),
		zap.Int("users", users),
		zap.Int("cards", cards),
	)
	return errors.Join(errs...)
}

// Metadata returns the stored metadata of a model.
func (s *ModelService) Metadata(ctx context.Context, modelName string) (*models.ModelMetadata, error) {
	return s.metadata.Get(ctx, modelName)
}

func (s *ModelService) snapshotPath(name string) string {
	return filepath.Join(s.cfg.Path, name)
}

// recordMetadata is best effort: a failed upsert is logged, not returned.
func (s *ModelService) recordMetadata(ctx context.Context, name string, samples int, perf map[string]float64) {
	now := time.Now().UTC()
	err := s.metadata.Upsert(ctx, &models.ModelMetadata{
		ModelName:       name,
		Version:         now.Format("20060102T150405Z"),
		TrainedAt:       now,
		TrainingSamples: samples,
		Metrics:         perf,
		IsActive:        true,
		CreatedAt:       now,
		UpdatedAt:       now,
	})
	if err != nil {
		s.logger.Warn("Failed to record model metadata", zap.String("model", name), zap.Error(err))
	}
}

func trainingAccuracy(c *engine.Classifier, descriptions []string, categories []models.Category) float64 {
	if len(descriptions) == 0 {
		return 0
	}
	correct := 0
	for i, d := range descriptions {
		if c.Predict(d) == categories[i] {
			correct++
		}
	}
	return float64(correct) / float64(len(descriptions))
}
