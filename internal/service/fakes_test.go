package service

import (
	"context"
	"sort"
	"sync"

	"cardmax/internal/models"
	"cardmax/internal/repository"

	"github.com/google/uuid"
)

type fakeUsers struct {
	mu    sync.Mutex
	byID  map[uuid.UUID]*models.User
	email map[string]uuid.UUID
}

func newFakeUsers() *fakeUsers {
	return &fakeUsers{byID: map[uuid.UUID]*models.User{}, email: map[string]uuid.UUID{}}
}

func (f *fakeUsers) Create(_ context.Context, user *models.User) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	u := *user
	f.byID[u.ID] = &u
	f.email[u.Email] = u.ID
	return nil
}

func (f *fakeUsers) GetByEmail(_ context.Context, email string) (*models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	id, ok := f.email[email]
	if !ok {
		return nil, repository.ErrNotFound
	}
	u := *f.byID[id]
	return &u, nil
}

func (f *fakeUsers) GetByID(_ context.Context, id uuid.UUID) (*models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	u, ok := f.byID[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	cp := *u
	return &cp, nil
}

type fakeCards struct {
	mu        sync.Mutex
	cards     []models.Card
	listCalls int
}

func (f *fakeCards) ListActive(context.Context) ([]models.Card, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.listCalls++
	var out []models.Card
	for _, c := range f.cards {
		if c.IsActive {
			out = append(out, c)
		}
	}
	return out, nil
}

func (f *fakeCards) GetByID(_ context.Context, id uuid.UUID) (*models.Card, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, c := range f.cards {
		if c.ID == id {
			cp := c
			return &cp, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (f *fakeCards) Upsert(_ context.Context, card *models.Card) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i, c := range f.cards {
		if c.ID == card.ID {
			f.cards[i] = *card
			return nil
		}
	}
	f.cards = append(f.cards, *card)
	return nil
}

type fakeWallets struct {
	mu    sync.Mutex
	cards map[uuid.UUID][]uuid.UUID
}

func newFakeWallets() *fakeWallets {
	return &fakeWallets{cards: map[uuid.UUID][]uuid.UUID{}}
}

func (f *fakeWallets) Add(_ context.Context, wc *models.WalletCard) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, id := range f.cards[wc.UserID] {
		if id == wc.CardID {
			return nil
		}
	}
	f.cards[wc.UserID] = append(f.cards[wc.UserID], wc.CardID)
	return nil
}

func (f *fakeWallets) Remove(_ context.Context, userID, cardID uuid.UUID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	ids := f.cards[userID]
	for i, id := range ids {
		if id == cardID {
			f.cards[userID] = append(ids[:i], ids[i+1:]...)
			return nil
		}
	}
	return repository.ErrNotFound
}

func (f *fakeWallets) CardIDs(_ context.Context, userID uuid.UUID) ([]uuid.UUID, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]uuid.UUID(nil), f.cards[userID]...), nil
}

type fakeTransactions struct {
	mu  sync.Mutex
	txs []*models.Transaction
}

func (f *fakeTransactions) Create(_ context.Context, tx *models.Transaction) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.txs = append(f.txs, tx)
	return nil
}

func (f *fakeTransactions) ListByUser(_ context.Context, userID uuid.UUID, limit uint64) ([]*models.Transaction, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []*models.Transaction
	for i := len(f.txs) - 1; i >= 0 && uint64(len(out)) < limit; i-- {
		if f.txs[i].UserID == userID {
			out = append(out, f.txs[i])
		}
	}
	return out, nil
}

func (f *fakeTransactions) ListLabeled(_ context.Context, limit uint64) ([]*models.Transaction, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []*models.Transaction
	for _, tx := range f.txs {
		if tx.Description != "" && uint64(len(out)) < limit {
			out = append(out, tx)
		}
	}
	return out, nil
}

type fakeMetadata struct {
	mu   sync.Mutex
	rows map[string]*models.ModelMetadata
}

func newFakeMetadata() *fakeMetadata {
	return &fakeMetadata{rows: map[string]*models.ModelMetadata{}}
}

func (f *fakeMetadata) Upsert(_ context.Context, md *models.ModelMetadata) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	cp := *md
	f.rows[md.ModelName] = &cp
	return nil
}

func (f *fakeMetadata) Get(_ context.Context, name string) (*models.ModelMetadata, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	md, ok := f.rows[name]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return md, nil
}

func (f *fakeMetadata) names() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	var names []string
	for name := range f.rows {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
