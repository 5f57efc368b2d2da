package engine

import (
	"math/rand"

	"cardmax/internal/models"
)

const (
	DefaultEmbeddingDim = 32
	DefaultSeed         = 42

	// LearningRate is the step size of each online update.
	LearningRate = 0.01

	initStdDev = 0.1
)

// Scorer keeps a learned embedding per user and per card and scores their
// affinity as a dot product.
//
// Not safe for concurrent use.
type Scorer struct {
	dim   int
	users map[string][]float64
	cards map[string][]float64
	rng   *rand.Rand
}

// NewScorer creates an empty scorer. dim <= 0 selects DefaultEmbeddingDim
// and a nil rng selects a source seeded with DefaultSeed.
func NewScorer(dim int, rng *rand.Rand) *Scorer {
	if dim <= 0 {
		dim = DefaultEmbeddingDim
	}
	if rng == nil {
		rng = rand.New(rand.NewSource(DefaultSeed)) //nolint:gosec // embedding init does not need crypto randomness
	}
	return &Scorer{
		dim:   dim,
		users: make(map[string][]float64),
		cards: make(map[string][]float64),
		rng:   rng,
	}
}

func (s *Scorer) Dim() int   { return s.dim }
func (s *Scorer) Users() int { return len(s.users) }
func (s *Scorer) Cards() int { return len(s.cards) }

func (s *Scorer) embedding(m map[string][]float64, id string) []float64 {
	if vec, ok := m[id]; ok {
		return vec
	}
	vec := make([]float64, s.dim)
	for i := range vec {
		vec[i] = s.rng.NormFloat64() * initStdDev
	}
	m[id] = vec
	return vec
}

// ScoreAll returns the user's affinity for each card, keyed by card id.
// Missing embeddings are initialized on the way.
func (s *Scorer) ScoreAll(userID string, cards []models.Card) map[string]float64 {
	user := s.embedding(s.users, userID)
	scores := make(map[string]float64, len(cards))
	for _, card := range cards {
		id := card.ID.String()
		scores[id] = dot(user, s.embedding(s.cards, id))
	}
	return scores
}

// Update moves the user and card embeddings one gradient step toward the
// observed reward. Both deltas are computed from the pre-update vectors.
func (s *Scorer) Update(userID, cardID string, observed float64) {
	user := s.embedding(s.users, userID)
	card := s.embedding(s.cards, cardID)

	step := LearningRate * (observed - dot(user, card))
	for i := range user {
		u, c := user[i], card[i]
		user[i] = u + step*c
		card[i] = c + step*u
	}
}

type scorerSnapshot struct {
	EmbeddingSize  int                  `json:"embedding_size"`
	UserEmbeddings map[string][]float64 `json:"user_embeddings"`
	CardEmbeddings map[string][]float64 `json:"card_embeddings"`
}

func (s *Scorer) Save(path string) error {
	return writeSnapshot(path, scorerSnapshot{
		EmbeddingSize:  s.dim,
		UserEmbeddings: s.users,
		CardEmbeddings: s.cards,
	})
}

// Load replaces the embeddings with a snapshot written by Save. A missing
// snapshot is a cold start and leaves the scorer unchanged. The snapshot must
// have been written with the same embedding dimension; this is not checked.
func (s *Scorer) Load(path string) error {
	var snap scorerSnapshot
	found, err := readSnapshot(path, &snap)
	if err != nil || !found {
		return err
	}
	if snap.EmbeddingSize > 0 {
		s.dim = snap.EmbeddingSize
	}
	s.users = snap.UserEmbeddings
	s.cards = snap.CardEmbeddings
	if s.users == nil {
		s.users = make(map[string][]float64)
	}
	if s.cards == nil {
		s.cards = make(map[string][]float64)
	}
	return nil
}

func dot(a, b []float64) float64 {
	var sum float64
	for i := range a {
		sum += a[i] * b[i]
	}
	return sum
}
