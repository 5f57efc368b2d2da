package service

import (
	"context"

	"cardmax/internal/models"

	"github.com/google/uuid"
)

// The stores below are implemented by internal/repository.

type UserStore interface {
	Create(ctx context.Context, user *models.User) error
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	GetByID(ctx context.Context, id uuid.UUID) (*models.User, error)
}

// CardStore lists the active catalog ordered by creation time, then id.
type CardStore interface {
	ListActive(ctx context.Context) ([]models.Card, error)
	GetByID(ctx context.Context, id uuid.UUID) (*models.Card, error)
	Upsert(ctx context.Context, card *models.Card) error
}

type WalletStore interface {
	Add(ctx context.Context, wc *models.WalletCard) error
	Remove(ctx context.Context, userID, cardID uuid.UUID) error
	CardIDs(ctx context.Context, userID uuid.UUID) ([]uuid.UUID, error)
}

type TransactionLog interface {
	Create(ctx context.Context, tx *models.Transaction) error
	ListByUser(ctx context.Context, userID uuid.UUID, limit uint64) ([]*models.Transaction, error)
	ListLabeled(ctx context.Context, limit uint64) ([]*models.Transaction, error)
}

type MetadataStore interface {
	Upsert(ctx context.Context, md *models.ModelMetadata) error
	Get(ctx context.Context, modelName string) (*models.ModelMetadata, error)
}
