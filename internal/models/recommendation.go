package models

// Query describes a single purchase to optimize.
type Query struct {
	Category           Category `json:"category"`
	Amount             float64  `json:"amount"`
	ForeignTransaction bool     `json:"foreign_transaction"`
}

type Recommendation struct {
	Card         Card    `json:"card"`
	RewardValue  float64 `json:"reward_value"` // may be negative when fees exceed rewards
	Explanation  string  `json:"explanation"`
	Personalized bool    `json:"personalized"`
}
