package models

import (
	"time"

	"github.com/google/uuid"
)

type Transaction struct {
	ID          uuid.UUID  `db:"id"`
	UserID      uuid.UUID  `db:"user_id"`
	Description string     `db:"description"`
	Amount      float64    `db:"amount"`
	Category    Category   `db:"category"`
	CardID      *uuid.UUID `db:"card_id"`
	RewardValue *float64   `db:"reward_value"`
	IsForeign   bool       `db:"is_foreign"`
	Merchant    string     `db:"merchant"`
	Location    string     `db:"location"`
	CreatedAt   time.Time  `db:"created_at"`
}
