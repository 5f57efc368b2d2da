package dto

import "cardmax/internal/models"

type CreateCardRequest struct {
	Name                  string                      `json:"name" validate:"required"`
	Issuer                string                      `json:"issuer"`
	Rewards               map[models.Category]float64 `json:"rewards"`
	RewardType            models.RewardType           `json:"reward_type"`
	AnnualFee             float64                     `json:"annual_fee"`
	ForeignTransactionFee float64                     `json:"foreign_transaction_fee"`
	SignUpBonus           *string                     `json:"sign_up_bonus,omitempty"`
}

type CardResponse struct {
	ID                    string             `json:"id"`
	Name                  string             `json:"name"`
	Issuer                string             `json:"issuer"`
	Rewards               map[string]float64 `json:"rewards"`
	RewardType            string             `json:"reward_type"`
	AnnualFee             float64            `json:"annual_fee"`
	ForeignTransactionFee float64            `json:"foreign_transaction_fee"`
	SignUpBonus           *string            `json:"sign_up_bonus,omitempty"`
}

func NewCardResponse(card models.Card) CardResponse {
	rewards := make(map[string]float64, len(card.Rewards))
	for category, rate := range card.Rewards {
		rewards[string(category)] = rate
	}
	return CardResponse{
		ID:                    card.ID.String(),
		Name:                  card.Name,
		Issuer:                card.Issuer,
		Rewards:               rewards,
		RewardType:            string(card.RewardType),
		AnnualFee:             card.AnnualFee,
		ForeignTransactionFee: card.ForeignTransactionFee,
		SignUpBonus:           card.SignUpBonus,
	}
}

func NewCardResponses(cards []models.Card) []CardResponse {
	out := make([]CardResponse, 0, len(cards))
	for _, card := range cards {
		out = append(out, NewCardResponse(card))
	}
	return out
}

type WalletResponse struct {
	Cards []CardResponse `json:"cards"`
}
