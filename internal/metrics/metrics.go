package metrics

import (
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "cardmax"

type Collector struct {
	recommendations      *prometheus.CounterVec
	rewardValue          prometheus.Histogram
	categoryPredictions  *prometheus.CounterVec
	catalogCache         *prometheus.CounterVec
	personalizationUsers prometheus.Gauge
	personalizationCards prometheus.Gauge
	trainingRuns         *prometheus.CounterVec
	trainingSamples      prometheus.Gauge
}

func New() *Collector {
	c := &Collector{}

	c.recommendations = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "recommendations_total",
		Help:      "Recommendations served, by whether they were personalized",
	}, []string{"personalized"})

	c.rewardValue = prometheus.NewHistogram(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "recommendation_reward_value",
		Help:      "Adjusted reward value of the recommended card",
		Buckets:   []float64{0, 0.5, 1, 2, 5, 10, 25, 50, 100},
	})

	c.categoryPredictions = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "category_predictions_total",
		Help:      "Classifier predictions by predicted category",
	}, []string{"category"})

	c.catalogCache = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "catalog_cache_requests_total",
		Help:      "Catalog cache lookups (result is hit or miss)",
	}, []string{"result"})

	c.personalizationUsers = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "personalization_users",
		Help:      "Users with a personalization embedding",
	})
	c.personalizationCards = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "personalization_cards",
		Help:      "Cards with a personalization embedding",
	})

	c.trainingRuns = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "classifier_training_runs_total",
		Help:      "Classifier training runs by outcome",
	}, []string{"outcome"})

	c.trainingSamples = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "classifier_training_samples",
		Help:      "Number of examples used by the last successful training run",
	})

	return c
}

func (c *Collector) Register(reg prometheus.Registerer) {
	reg.MustRegister(
		c.recommendations,
		c.rewardValue,
		c.categoryPredictions,
		c.catalogCache,
		c.personalizationUsers,
		c.personalizationCards,
		c.trainingRuns,
		c.trainingSamples,
	)
}

func (c *Collector) ObserveRecommendation(personalized bool, value float64) {
	c.recommendations.WithLabelValues(strconv.FormatBool(personalized)).Inc()
	c.rewardValue.Observe(value)
}

func (c *Collector) ObservePrediction(category string) {
	c.categoryPredictions.WithLabelValues(category).Inc()
}

func (c *Collector) ObserveCatalogLookup(hit bool) {
	result := "miss"
	if hit {
		result = "hit"
	}
	c.catalogCache.WithLabelValues(result).Inc()
}

// SetPersonalizationSize records how many users and cards the scorer knows.
func (c *Collector) SetPersonalizationSize(users, cards int) {
	c.personalizationUsers.Set(float64(users))
	c.personalizationCards.Set(float64(cards))
}

func (c *Collector) ObserveTraining(samples int, err error) {
	if err != nil {
		c.trainingRuns.WithLabelValues("failure").Inc()
		return
	}
	c.trainingRuns.WithLabelValues("success").Inc()
	c.trainingSamples.Set(float64(samples))
}
