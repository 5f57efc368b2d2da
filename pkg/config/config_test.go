package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	for _, key := range []string{"MODEL_PATH", "PERSONALIZATION_WEIGHT", "CACHE_TTL_SECONDS", "JWT_EXPIRATION_MINUTES", "EMBEDDING_DIM"} {
		t.Setenv(key, "")
	}

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "models", cfg.Model.Path)
	assert.Equal(t, 0.2, cfg.Model.PersonalizationWeight)
	assert.Equal(t, 32, cfg.Model.EmbeddingDim)
	assert.Equal(t, time.Hour, cfg.Cache.CatalogTTL)
	assert.Equal(t, 30*time.Minute, cfg.JWT.Expiration)
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("MODEL_PATH", "/var/lib/cardmax")
	t.Setenv("PERSONALIZATION_WEIGHT", "0.5")
	t.Setenv("CACHE_TTL_SECONDS", "60")
	t.Setenv("MIN_TRAINING_SAMPLES", "not-a-number")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "/var/lib/cardmax", cfg.Model.Path)
	assert.Equal(t, 0.5, cfg.Model.PersonalizationWeight)
	assert.Equal(t, time.Minute, cfg.Cache.CatalogTTL)
	assert.Equal(t, 100, cfg.Model.MinTrainingSamples)
}
