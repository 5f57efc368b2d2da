package engine

import (
	"fmt"
	"math"
	"sort"

	"cardmax/internal/models"
)

const nbAlpha = 1.0

// Classifier predicts a spending category from a transaction description
// using TF-IDF features and multinomial naive Bayes.
//
// Not safe for concurrent use.
type Classifier struct {
	trained        bool
	features       *tfidf
	classes        []models.Category
	classLogPrior  []float64
	featureLogProb [][]float64
}

func NewClassifier() *Classifier {
	return &Classifier{}
}

func (c *Classifier) Trained() bool {
	return c.trained
}

// Classes returns the categories seen at training time in sorted order.
func (c *Classifier) Classes() []models.Category {
	out := make([]models.Category, len(c.classes))
	copy(out, c.classes)
	return out
}

// Predict never fails: an untrained classifier returns CategoryOther.
func (c *Classifier) Predict(description string) models.Category {
	if !c.trained || len(c.classes) == 0 {
		return models.CategoryOther
	}
	x := c.features.transform(description)

	best := 0
	bestScore := math.Inf(-1)
	for k := range c.classes {
		score := c.classLogPrior[k]
		for j, v := range x {
			if v != 0 {
				score += v * c.featureLogProb[k][j]
			}
		}
		if score > bestScore {
			best, bestScore = k, score
		}
	}
	return c.classes[best]
}

// Train fits the feature extractor and the classifier from scratch,
// replacing any prior state. On error the previous state is kept.
func (c *Classifier) Train(descriptions []string, categories []models.Category) error {
	if len(descriptions) == 0 {
		return &ValidationError{Field: "descriptions", Reason: "at least one example is required"}
	}
	if len(descriptions) != len(categories) {
		return &ValidationError{
			Field:  "categories",
			Reason: fmt.Sprintf("got %d categories for %d descriptions", len(categories), len(descriptions)),
		}
	}
	for i, cat := range categories {
		if !cat.Valid() {
			return &ValidationError{Field: "categories", Reason: fmt.Sprintf("unknown category %q at index %d", cat, i)}
		}
	}

	features := fitTFIDF(descriptions)
	if len(features.Vocabulary) == 0 {
		return &ValidationError{Field: "descriptions", Reason: "no usable terms after stop-word removal"}
	}

	classIndex := make(map[models.Category]int)
	for _, cat := range categories {
		classIndex[cat] = 0
	}
	classes := make([]models.Category, 0, len(classIndex))
	for cat := range classIndex {
		classes = append(classes, cat)
	}
	sort.Slice(classes, func(i, j int) bool { return classes[i] < classes[j] })
	for i, cat := range classes {
		classIndex[cat] = i
	}

	v := len(features.IDF)
	counts := make([]float64, len(classes))
	featureCount := make([][]float64, len(classes))
	for k := range featureCount {
		featureCount[k] = make([]float64, v)
	}
	for i, desc := range descriptions {
		k := classIndex[categories[i]]
		counts[k]++
		for j, x := range features.transform(desc) {
			featureCount[k][j] += x
		}
	}

	n := float64(len(descriptions))
	classLogPrior := make([]float64, len(classes))
	featureLogProb := make([][]float64, len(classes))
	for k := range classes {
		classLogPrior[k] = math.Log(counts[k] / n)
		var total float64
		for _, fc := range featureCount[k] {
			total += fc
		}
		denom := math.Log(total + nbAlpha*float64(v))
		featureLogProb[k] = make([]float64, v)
		for j, fc := range featureCount[k] {
			featureLogProb[k][j] = math.Log(fc+nbAlpha) - denom
		}
	}

	c.features = features
	c.classes = classes
	c.classLogPrior = classLogPrior
	c.featureLogProb = featureLogProb
	c.trained = true
	return nil
}

type classifierSnapshot struct {
	Trained        bool              `json:"is_trained"`
	Features       *tfidf            `json:"vectorizer"`
	Classes        []models.Category `json:"classes"`
	ClassLogPrior  []float64         `json:"class_log_prior"`
	FeatureLogProb [][]float64       `json:"feature_log_prob"`
}

func (c *Classifier) Save(path string) error {
	return writeSnapshot(path, classifierSnapshot{
		Trained:        c.trained,
		Features:       c.features,
		Classes:        c.classes,
		ClassLogPrior:  c.classLogPrior,
		FeatureLogProb: c.featureLogProb,
	})
}

// Load restores a snapshot written by Save. A missing snapshot leaves the
// classifier unchanged.
func (c *Classifier) Load(path string) error {
	var snap classifierSnapshot
	found, err := readSnapshot(path, &snap)
	if err != nil || !found {
		return err
	}
	if snap.Trained {
		if err := snap.validate(); err != nil {
			return &StorageError{Op: "load", Path: path, Err: err}
		}
	}
	c.trained = snap.Trained
	c.features = snap.Features
	c.classes = snap.Classes
	c.classLogPrior = snap.ClassLogPrior
	c.featureLogProb = snap.FeatureLogProb
	return nil
}

// validate checks that every index Predict uses is in range.
func (s *classifierSnapshot) validate() error {
	if s.Features == nil {
		return fmt.Errorf("trained snapshot has no vectorizer")
	}
	n := len(s.Classes)
	if n == 0 || len(s.ClassLogPrior) != n || len(s.FeatureLogProb) != n {
		return fmt.Errorf("inconsistent classifier snapshot: %d classes, %d priors, %d feature rows",
			n, len(s.ClassLogPrior), len(s.FeatureLogProb))
	}
	v := len(s.Features.IDF)
	for k, row := range s.FeatureLogProb {
		if len(row) != v {
			return fmt.Errorf("feature row %d has %d entries, want %d", k, len(row), v)
		}
	}
	for term, idx := range s.Features.Vocabulary {
		if idx < 0 || idx >= v {
			return fmt.Errorf("vocabulary term %q has index %d outside [0, %d)", term, idx, v)
		}
	}
	return nil
}
