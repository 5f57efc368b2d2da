package engine

import (
	"math"
	"math/rand"
	"os"
	"path/filepath"
	"testing"

	"cardmax/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seededScorer(seed int64) *Scorer {
	return NewScorer(DefaultEmbeddingDim, rand.New(rand.NewSource(seed)))
}

func TestNewScorer_Defaults(t *testing.T) {
	s := NewScorer(0, nil)

	assert.Equal(t, DefaultEmbeddingDim, s.Dim())
	assert.Zero(t, s.Users())
	assert.Zero(t, s.Cards())
}

func TestScorer_ScoreAllInitializesLazily(t *testing.T) {
	s := seededScorer(1)
	cards := []models.Card{
		testCard("one", nil, 0),
		testCard("two", nil, 0),
	}

	scores := s.ScoreAll("user-1", cards)

	require.Len(t, scores, 2)
	assert.Equal(t, 1, s.Users())
	assert.Equal(t, 2, s.Cards())
	for _, vec := range s.users {
		assert.Len(t, vec, DefaultEmbeddingDim)
	}
	for _, card := range cards {
		assert.Len(t, s.cards[card.ID.String()], DefaultEmbeddingDim)
		assert.Less(t, math.Abs(scores[card.ID.String()]), 1.0)
	}

	again := s.ScoreAll("user-1", cards)
	assert.Equal(t, scores, again)
}

func TestScorer_DeterministicWithSameSeed(t *testing.T) {
	cards := []models.Card{testCard("one", nil, 0), testCard("two", nil, 0)}

	a := seededScorer(7).ScoreAll("u", cards)
	b := seededScorer(7).ScoreAll("u", cards)

	assert.Equal(t, a, b)
}

func TestScorer_UpdateMovesTowardObserved(t *testing.T) {
	tests := []struct {
		name     string
		observed float64
	}{
		{"positive reward", 1.0},
		{"large reward", 25.0},
		{"negative reward", -2.0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := seededScorer(3)
			card := testCard("one", nil, 0)
			cardID := card.ID.String()

			before := s.ScoreAll("u", []models.Card{card})[cardID]
			s.Update("u", cardID, tt.observed)
			after := s.ScoreAll("u", []models.Card{card})[cardID]

			assert.Less(t, math.Abs(tt.observed-after), math.Abs(tt.observed-before))
			if tt.observed > before {
				assert.Greater(t, after, before)
			}
		})
	}
}

func TestScorer_UpdateIsSimultaneous(t *testing.T) {
	s := seededScorer(5)
	card := testCard("one", nil, 0)
	cardID := card.ID.String()
	s.ScoreAll("u", []models.Card{card})

	user := append([]float64(nil), s.users["u"]...)
	vec := append([]float64(nil), s.cards[cardID]...)
	step := LearningRate * (2.0 - dot(user, vec))

	s.Update("u", cardID, 2.0)

	for i := range user {
		assert.InDelta(t, user[i]+step*vec[i], s.users["u"][i], 1e-12)
		assert.InDelta(t, vec[i]+step*user[i], s.cards[cardID][i], 1e-12)
	}
}

func TestScorer_UpdateUnknownPairInitializes(t *testing.T) {
	s := seededScorer(9)

	s.Update("new-user", "new-card", 1.0)

	assert.Equal(t, 1, s.Users())
	assert.Equal(t, 1, s.Cards())
}

func TestScorer_SaveLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "models", "recommender.json")
	cards := []models.Card{testCard("one", nil, 0), testCard("two", nil, 0)}

	s := seededScorer(11)
	s.ScoreAll("u", cards)
	s.Update("u", cards[0].ID.String(), 3.0)
	want := s.ScoreAll("u", cards)
	require.NoError(t, s.Save(path))

	restored := seededScorer(99)
	require.NoError(t, restored.Load(path))

	assert.Equal(t, DefaultEmbeddingDim, restored.Dim())
	assert.Equal(t, 1, restored.Users())
	assert.Equal(t, 2, restored.Cards())
	got := restored.ScoreAll("u", cards)
	for id, score := range want {
		assert.InDelta(t, score, got[id], 1e-12)
	}
}

func TestScorer_LoadMissingIsColdStart(t *testing.T) {
	s := seededScorer(1)
	require.NoError(t, s.Load(filepath.Join(t.TempDir(), "nope.json")))

	assert.Zero(t, s.Users())
	assert.Zero(t, s.Cards())
}

func TestScorer_LoadCorrupt(t *testing.T) {
	path := filepath.Join(t.TempDir(), "recommender.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"embedding_size": "x"`), 0o644))

	err := seededScorer(1).Load(path)

	var serr *StorageError
	assert.ErrorAs(t, err, &serr)
}
