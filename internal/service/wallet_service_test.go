package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWalletService_ListKeepsCatalogOrder(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	user := uuid.New()
	catalog := testCatalog()
	f.cards.cards = catalog

	require.NoError(t, f.walletService.Add(ctx, user, catalog[2].ID))
	require.NoError(t, f.walletService.Add(ctx, user, catalog[1].ID))
	require.NoError(t, f.walletService.Add(ctx, user, catalog[1].ID))

	cards, err := f.walletService.List(ctx, user)
	require.NoError(t, err)
	require.Len(t, cards, 2)
	assert.Equal(t, "Freedom", cards[0].Name)
	assert.Equal(t, "Gas Plus", cards[1].Name)
}

func TestWalletService_AddUnknownCard(t *testing.T) {
	f := newFixture(t)

	err := f.walletService.Add(context.Background(), uuid.New(), uuid.New())
	assert.ErrorIs(t, err, ErrCardNotFound)
}

func TestWalletService_AddInactiveCard(t *testing.T) {
	f := newFixture(t)
	f.cards.cards[0].IsActive = false

	err := f.walletService.Add(context.Background(), uuid.New(), f.cards.cards[0].ID)
	assert.ErrorIs(t, err, ErrCardNotFound)
}

func TestWalletService_Remove(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	user := uuid.New()
	card := f.cards.cards[0].ID

	require.NoError(t, f.walletService.Add(ctx, user, card))
	require.NoError(t, f.walletService.Remove(ctx, user, card))
	assert.ErrorIs(t, f.walletService.Remove(ctx, user, card), ErrCardNotInWallet)

	cards, err := f.walletService.List(ctx, user)
	require.NoError(t, err)
	assert.Empty(t, cards)
}
