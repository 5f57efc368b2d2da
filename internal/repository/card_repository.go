package repository

import (
	"context"
	"fmt"

	"cardmax/internal/models"

	"github.com/Masterminds/squirrel"
	"github.com/goccy/go-json"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

var cardColumns = []string{
	"id", "name", "issuer", "rewards", "reward_type", "annual_fee",
	"foreign_transaction_fee", "sign_up_bonus", "is_active", "created_at", "updated_at",
}

type CardRepository struct {
	db     *pgxpool.Pool
	logger *zap.Logger
}

func NewCardRepository(db *pgxpool.Pool, logger *zap.Logger) *CardRepository {
	return &CardRepository{
		db:     db,
		logger: logger,
	}
}

// Upsert inserts the card or replaces the stored one with the same id.
func (r *CardRepository) Upsert(ctx context.Context, card *models.Card) error {
	rewards, err := json.Marshal(card.Rewards)
	if err != nil {
		return fmt.Errorf("failed to encode rewards: %w", err)
	}

	query := squirrel.Insert("cards").
		Columns(cardColumns...).
		Values(card.ID, card.Name, card.Issuer, string(rewards), card.RewardType, card.AnnualFee,
			card.ForeignTransactionFee, card.SignUpBonus, card.IsActive, card.CreatedAt, card.UpdatedAt).
		Suffix(`ON CONFLICT (id) DO UPDATE SET
			name = EXCLUDED.name,
			issuer = EXCLUDED.issuer,
			rewards = EXCLUDED.rewards,
			reward_type = EXCLUDED.reward_type,
			annual_fee = EXCLUDED.annual_fee,
			foreign_transaction_fee = EXCLUDED.foreign_transaction_fee,
			sign_up_bonus = EXCLUDED.sign_up_bonus,
			is_active = EXCLUDED.is_active,
			updated_at = EXCLUDED.updated_at`).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return err
	}

	_, err = r.db.Exec(ctx, sql, args...)
	return err
}

func (r *CardRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Card, error) {
	cards, err := r.list(ctx, squirrel.Eq{"id": id})
	if err != nil {
		return nil, err
	}
	if len(cards) == 0 {
		return nil, ErrNotFound
	}
	return &cards[0], nil
}

// ListActive returns active cards in a stable order (creation time, then id).
func (r *CardRepository) ListActive(ctx context.Context) ([]models.Card, error) {
	return r.list(ctx, squirrel.Eq{"is_active": true})
}

func (r *CardRepository) list(ctx context.Context, where squirrel.Sqlizer) ([]models.Card, error) {
	query := squirrel.Select(cardColumns...).
		From("cards").
		Where(where).
		OrderBy("created_at ASC", "id ASC").
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var cards []models.Card
	for rows.Next() {
		card, err := scanCard(rows)
		if err != nil {
			return nil, err
		}
		cards = append(cards, card)
	}

	return cards, rows.Err()
}

func scanCard(rows pgx.Rows) (models.Card, error) {
	var (
		card    models.Card
		rewards []byte
	)
	if err := rows.Scan(
		&card.ID, &card.Name, &card.Issuer, &rewards, &card.RewardType, &card.AnnualFee,
		&card.ForeignTransactionFee, &card.SignUpBonus, &card.IsActive, &card.CreatedAt, &card.UpdatedAt,
	); err != nil {
		return card, err
	}
	if err := json.Unmarshal(rewards, &card.Rewards); err != nil {
		return card, fmt.Errorf("failed to decode rewards of card %s: %w", card.ID, err)
	}
	return card, nil
}
