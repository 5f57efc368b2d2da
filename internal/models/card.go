package models

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

type Card struct {
	ID                    uuid.UUID            `db:"id" json:"id"`
	Name                  string               `db:"name" json:"name"`
	Issuer                string               `db:"issuer" json:"issuer"`
	Rewards               map[Category]float64 `db:"rewards" json:"rewards"` // category -> percent
	RewardType            RewardType           `db:"reward_type" json:"reward_type"`
	AnnualFee             float64              `db:"annual_fee" json:"annual_fee"`
	ForeignTransactionFee float64              `db:"foreign_transaction_fee" json:"foreign_transaction_fee"` // percent
	SignUpBonus           *string              `db:"sign_up_bonus" json:"sign_up_bonus,omitempty"`
	IsActive              bool                 `db:"is_active" json:"is_active"`
	CreatedAt             time.Time            `db:"created_at" json:"created_at"`
	UpdatedAt             time.Time            `db:"updated_at" json:"updated_at"`
}

// Validate checks the catalog invariants: known categories, non-negative
// rates and fees, and a known reward type.
func (c *Card) Validate() error {
	if strings.TrimSpace(c.Name) == "" {
		return fmt.Errorf("card name is required")
	}
	if !c.RewardType.Valid() {
		return fmt.Errorf("unknown reward type %q", c.RewardType)
	}
	for category, rate := range c.Rewards {
		if !category.Valid() {
			return fmt.Errorf("unknown reward category %q", category)
		}
		if rate < 0 {
			return fmt.Errorf("reward rate for %s must be non-negative, got %.2f", category, rate)
		}
	}
	if c.AnnualFee < 0 {
		return fmt.Errorf("annual fee must be non-negative, got %.2f", c.AnnualFee)
	}
	if c.ForeignTransactionFee < 0 {
		return fmt.Errorf("foreign transaction fee must be non-negative, got %.2f", c.ForeignTransactionFee)
	}
	return nil
}

type WalletCard struct {
	UserID    uuid.UUID `db:"user_id"`
	CardID    uuid.UUID `db:"card_id"`
	CreatedAt time.Time `db:"created_at"`
}
