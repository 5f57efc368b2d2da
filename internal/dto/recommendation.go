package dto

// RecommendationRequest describes a purchase. Category may be omitted when a
// description is given; it is then predicted by the classifier.
type RecommendationRequest struct {
	Category           string  `json:"category,omitempty"`
	Description        string  `json:"description,omitempty"`
	Amount             float64 `json:"amount" validate:"required,gt=0"`
	ForeignTransaction bool    `json:"foreign_transaction"`
	Merchant           string  `json:"merchant,omitempty"`
	Location           string  `json:"location,omitempty"`
	UseWallet          bool    `json:"use_wallet"`
}

type AlternativeResponse struct {
	Card        CardResponse `json:"card"`
	RewardValue float64      `json:"reward_value"`
}

type RecommendationResponse struct {
	Card              CardResponse          `json:"card"`
	RewardValue       float64               `json:"reward_value"`
	Explanation       string                `json:"explanation"`
	Category          string                `json:"category"`
	CategoryPredicted bool                  `json:"category_predicted"`
	Personalized      bool                  `json:"personalized"`
	Alternatives      []AlternativeResponse `json:"alternatives"`
}

type AdviceResponse struct {
	Recommendation RecommendationResponse `json:"recommendation"`
	Advice         string                 `json:"advice"`
}
