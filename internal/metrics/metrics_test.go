package metrics

import (
	"errors"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCollector_Register(t *testing.T) {
	reg := prometheus.NewRegistry()
	c := New()
	require.NotPanics(t, func() { c.Register(reg) })

	c.ObserveRecommendation(true, 3.3)
	c.ObserveRecommendation(false, 1)
	c.ObserveCatalogLookup(true)

	families, err := reg.Gather()
	require.NoError(t, err)
	assert.NotEmpty(t, families)
}

func TestCollector_Counters(t *testing.T) {
	c := New()

	c.ObserveRecommendation(true, 3.3)
	c.ObserveRecommendation(true, 2)
	c.ObserveRecommendation(false, 1)
	assert.Equal(t, 2.0, testutil.ToFloat64(c.recommendations.WithLabelValues("true")))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.recommendations.WithLabelValues("false")))

	c.ObservePrediction("dining")
	assert.Equal(t, 1.0, testutil.ToFloat64(c.categoryPredictions.WithLabelValues("dining")))

	c.ObserveCatalogLookup(false)
	c.ObserveCatalogLookup(true)
	c.ObserveCatalogLookup(true)
	assert.Equal(t, 2.0, testutil.ToFloat64(c.catalogCache.WithLabelValues("hit")))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.catalogCache.WithLabelValues("miss")))

	c.SetPersonalizationSize(4, 7)
	assert.Equal(t, 4.0, testutil.ToFloat64(c.personalizationUsers))
	assert.Equal(t, 7.0, testutil.ToFloat64(c.personalizationCards))
}

func TestCollector_ObserveTraining(t *testing.T) {
	c := New()

	c.ObserveTraining(120, nil)
	c.ObserveTraining(0, errors.New("boom"))

	assert.Equal(t, 1.0, testutil.ToFloat64(c.trainingRuns.WithLabelValues("success")))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.trainingRuns.WithLabelValues("failure")))
	assert.Equal(t, 120.0, testutil.ToFloat64(c.trainingSamples))
}
