package repository

import (
	"context"

	"cardmax/internal/models"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

var transactionColumns = []string{
	"id", "user_id", "description", "amount", "category", "card_id",
	"reward_value", "is_foreign", "merchant", "location", "created_at",
}

type TransactionRepository struct {
	db     *pgxpool.Pool
	logger *zap.Logger
}

func NewTransactionRepository(db *pgxpool.Pool, logger *zap.Logger) *TransactionRepository {
	return &TransactionRepository{
		db:     db,
		logger: logger,
	}
}

func (r *TransactionRepository) Create(ctx context.Context, tx *models.Transaction) error {
	query := squirrel.Insert("transactions").
		Columns(transactionColumns...).
		Values(tx.ID, tx.UserID, tx.Description, tx.Amount, tx.Category, tx.CardID,
			tx.RewardValue, tx.IsForeign, tx.Merchant, tx.Location, tx.CreatedAt).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return err
	}

	_, err = r.db.Exec(ctx, sql, args...)
	return err
}

func (r *TransactionRepository) ListByUser(ctx context.Context, userID uuid.UUID, limit uint64) ([]*models.Transaction, error) {
	query := squirrel.Select(transactionColumns...).
		From("transactions").
		Where(squirrel.Eq{"user_id": userID}).
		OrderBy("created_at DESC").
		Limit(limit).
		PlaceholderFormat(squirrel.Dollar)

	return r.query(ctx, query)
}

// ListLabeled returns transactions with a non-empty description, usable as
// classifier training examples.
func (r *TransactionRepository) ListLabeled(ctx context.Context, limit uint64) ([]*models.Transaction, error) {
	query := squirrel.Select(transactionColumns...).
		From("transactions").
		Where(squirrel.NotEq{"description": ""}).
		OrderBy("created_at DESC").
		Limit(limit).
		PlaceholderFormat(squirrel.Dollar)

	return r.query(ctx, query)
}

func (r *TransactionRepository) query(ctx context.Context, query squirrel.SelectBuilder) ([]*models.Transaction, error) {
	sql, args, err := query.ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var transactions []*models.Transaction
	for rows.Next() {
		var tx models.Transaction
		if err := rows.Scan(
			&tx.ID, &tx.UserID, &tx.Description, &tx.Amount, &tx.Category, &tx.CardID,
			&tx.RewardValue, &tx.IsForeign, &tx.Merchant, &tx.Location, &tx.CreatedAt,
		); err != nil {
			return nil, err
		}
		transactions = append(transactions, &tx)
	}

	return transactions, rows.Err()
}
