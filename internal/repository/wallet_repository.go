package repository

import (
	"context"

	"cardmax/internal/models"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

type WalletRepository struct {
	db     *pgxpool.Pool
	logger *zap.Logger
}

func NewWalletRepository(db *pgxpool.Pool, logger *zap.Logger) *WalletRepository {
	return &WalletRepository{
		db:     db,
		logger: logger,
	}
}

func (r *WalletRepository) Add(ctx context.Context, wc *models.WalletCard) error {
	query := squirrel.Insert("wallet_cards").
		Columns("user_id", "card_id", "created_at").
		Values(wc.UserID, wc.CardID, wc.CreatedAt).
		Suffix("ON CONFLICT (user_id, card_id) DO NOTHING").
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return err
	}

	_, err = r.db.Exec(ctx, sql, args...)
	return err
}

func (r *WalletRepository) Remove(ctx context.Context, userID, cardID uuid.UUID) error {
	query := squirrel.Delete("wallet_cards").
		Where(squirrel.Eq{"user_id": userID, "card_id": cardID}).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return err
	}

	tag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *WalletRepository) CardIDs(ctx context.Context, userID uuid.UUID) ([]uuid.UUID, error) {
	query := squirrel.Select("card_id").
		From("wallet_cards").
		Where(squirrel.Eq{"user_id": userID}).
		OrderBy("created_at ASC").
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

	var ids []uuid.UUID
	for rows.Next() {
		var id uuid.UUID
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}

	return ids, rows.Err()
}
