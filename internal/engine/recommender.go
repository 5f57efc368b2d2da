package engine

import (
	"fmt"

	"cardmax/internal/models"
)

const (
	// DefaultPersonalizationWeight scales a personalization score into the
	// multiplier 1 + weight*score.
	DefaultPersonalizationWeight = 0.2

	personalizedNotice = " (personalized based on your card history)"
)

// RankedCard is a catalog card with its adjusted reward value.
type RankedCard struct {
	Card  models.Card
	Value float64
}

// Recommender picks the card with the highest adjusted reward.
type Recommender struct {
	scorer *Scorer
	weight float64
}

// NewRecommender returns a recommender. A nil scorer disables personalization.
func NewRecommender(scorer *Scorer, weight float64) *Recommender {
	return &Recommender{scorer: scorer, weight: weight}
}

// ValidateQuery reports a *ValidationError for an unknown category or a
// non-positive amount.
func ValidateQuery(q models.Query) error {
	if !q.Category.Valid() {
		return &ValidationError{Field: "category", Reason: fmt.Sprintf("unknown category %q", q.Category)}
	}
	if q.Amount <= 0 {
		return &ValidationError{Field: "amount", Reason: "must be greater than zero"}
	}
	return nil
}

// Rank computes the adjusted value of every card in catalog order. Cards
// present in scores are rescaled by 1 + weight*score.
func (r *Recommender) Rank(catalog []models.Card, q models.Query, scores map[string]float64) []RankedCard {
	ranked := make([]RankedCard, 0, len(catalog))
	for _, card := range catalog {
		value := ComputeReward(card, q)
		if score, ok := scores[card.ID.String()]; ok {
			value *= 1 + r.weight*score
		}
		ranked = append(ranked, RankedCard{Card: card, Value: value})
	}
	return ranked
}

// Recommend selects the best card for q. With a non-empty userID the scores
// are personalized and the selected card's adjusted value is fed back into
// the scorer. Ties keep the first card in catalog order.
func (r *Recommender) Recommend(catalog []models.Card, q models.Query, userID string) (*models.Recommendation, error) {
	if len(catalog) == 0 {
		return nil, ErrNoCards
	}
	if err := ValidateQuery(q); err != nil {
		return nil, err
	}

	var scores map[string]float64
	personalized := userID != "" && r.scorer != nil
	if personalized {
		scores = r.scorer.ScoreAll(userID, catalog)
	}

	var best *RankedCard
	ranked := r.Rank(catalog, q, scores)
	for i := range ranked {
		if best == nil || ranked[i].Value > best.Value {
			best = &ranked[i]
		}
	}
	if best == nil {
		return nil, ErrNoBestCard
	}

	if personalized {
		r.scorer.Update(userID, best.Card.ID.String(), best.Value)
	}

	return &models.Recommendation{
		Card:         best.Card,
		RewardValue:  best.Value,
		Explanation:  explain(best.Card, best.Value, q, personalized),
		Personalized: personalized,
	}, nil
}

func explain(card models.Card, value float64, q models.Query, personalized bool) string {
	s := fmt.Sprintf("Using %s will earn you %.2f %s on your %.2f %s purchase",
		card.Name, value, card.RewardType, q.Amount, q.Category)
	if personalized {
		s += personalizedNotice
	}
	return s
}
