package engine

import "cardmax/internal/models"

const (
	bonusThreshold  = 100.0
	bonusMultiplier = 1.10
)

// RewardRate returns the card's rate for the category, falling back to the
// card's "other" rate and then to zero.
func RewardRate(card models.Card, category models.Category) float64 {
	if rate, ok := card.Rewards[category]; ok {
		return rate
	}
	if rate, ok := card.Rewards[models.CategoryOther]; ok {
		return rate
	}
	return 0
}

// ComputeReward returns the net reward of paying for q with card. The result
// is negative when the foreign transaction fee exceeds the reward.
func ComputeReward(card models.Card, q models.Query) float64 {
	value := q.Amount * RewardRate(card, q.Category) / 100
	if q.ForeignTransaction {
		value -= q.Amount * card.ForeignTransactionFee / 100
	}
	if qualifiesForBonus(q) {
		value *= bonusMultiplier
	}
	return value
}

func qualifiesForBonus(q models.Query) bool {
	if q.Amount < bonusThreshold {
		return false
	}
	return q.Category == models.CategoryDining || q.Category == models.CategoryTravel
}
