package dto

import (
	"time"

	"cardmax/internal/models"
)

type TransactionResponse struct {
	ID          string   `json:"id"`
	Description string   `json:"description"`
	Amount      float64  `json:"amount"`
	Category    string   `json:"category"`
	CardID      *string  `json:"card_id,omitempty"`
	RewardValue *float64 `json:"reward_value,omitempty"`
	IsForeign   bool     `json:"is_foreign"`
	Merchant    string   `json:"merchant,omitempty"`
	Location    string   `json:"location,omitempty"`
	CreatedAt   string   `json:"created_at"`
}

func NewTransactionResponse(tx *models.Transaction) TransactionResponse {
	resp := TransactionResponse{
		ID:          tx.ID.String(),
		Description: tx.Description,
		Amount:      tx.Amount,
		Category:    string(tx.Category),
		RewardValue: tx.RewardValue,
		IsForeign:   tx.IsForeign,
		Merchant:    tx.Merchant,
		Location:    tx.Location,
		CreatedAt:   tx.CreatedAt.Format(time.RFC3339),
	}
	if tx.CardID != nil {
		id := tx.CardID.String()
		resp.CardID = &id
	}
	return resp
}
