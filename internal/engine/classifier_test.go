package engine

import (
	"os"
	"path/filepath"
	"testing"

	"cardmax/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var trainingDescriptions = []string{
	"UBER EATS DELIVERY",
	"AMAZON.COM",
	"SHELL GAS STATION",
	"WALMART GROCERY",
}

var trainingCategories = []models.Category{
	models.CategoryDining,
	models.CategoryOnlineShopping,
	models.CategoryGas,
	models.CategoryGroceries,
}

func TestClassifier_UntrainedPredictsOther(t *testing.T) {
	c := NewClassifier()

	assert.False(t, c.Trained())
	for _, desc := range []string{"", "STARBUCKS", "DELTA AIRLINES 0042", "anything at all"} {
		assert.Equal(t, models.CategoryOther, c.Predict(desc))
	}
}

func TestClassifier_Train(t *testing.T) {
	c := NewClassifier()
	require.NoError(t, c.Train(trainingDescriptions, trainingCategories))

	assert.True(t, c.Trained())
	assert.Equal(t, []models.Category{
		models.CategoryDining, models.CategoryGas, models.CategoryGroceries, models.CategoryOnlineShopping,
	}, c.Classes())

	for i, desc := range trainingDescriptions {
		assert.Equal(t, trainingCategories[i], c.Predict(desc), desc)
	}
	assert.Equal(t, models.CategoryDining, c.Predict("DOORDASH FOOD DELIVERY"))
	assert.Equal(t, models.CategoryGas, c.Predict("EXXON GAS"))
}

func TestClassifier_TrainSingleExample(t *testing.T) {
	c := NewClassifier()
	require.NoError(t, c.Train([]string{"X1 bistro"}, []models.Category{models.CategoryDining}))

	assert.Equal(t, models.CategoryDining, c.Predict("X1 bistro"))
	assert.Equal(t, models.CategoryDining, c.Predict("unrelated words"))
}

func TestClassifier_TrainReplacesState(t *testing.T) {
	c := NewClassifier()
	require.NoError(t, c.Train(trainingDescriptions, trainingCategories))
	require.NoError(t, c.Train([]string{"delta airlines", "marriott hotel"}, []models.Category{models.CategoryTravel, models.CategoryTravel}))

	assert.Equal(t, []models.Category{models.CategoryTravel}, c.Classes())
	assert.Equal(t, models.CategoryTravel, c.Predict("SHELL GAS STATION"))
}

func TestClassifier_TrainValidation(t *testing.T) {
	tests := []struct {
		name       string
		descs      []string
		categories []models.Category
		field      string
	}{
		{"empty input", nil, nil, "descriptions"},
		{"length mismatch", []string{"a b", "c d"}, []models.Category{models.CategoryGas}, "categories"},
		{"unknown category", []string{"coffee shop"}, []models.Category{"coffee"}, "categories"},
		{"only stop words", []string{"the and of", "a"}, []models.Category{models.CategoryGas, models.CategoryDining}, "descriptions"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := NewClassifier()
			err := c.Train(tt.descs, tt.categories)

			var verr *ValidationError
			require.ErrorAs(t, err, &verr)
			assert.Equal(t, tt.field, verr.Field)
			assert.False(t, c.Trained())
		})
	}
}

func TestClassifier_SaveLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "category_predictor.json")

	trained := NewClassifier()
	require.NoError(t, trained.Train(trainingDescriptions, trainingCategories))
	require.NoError(t, trained.Save(path))

	restored := NewClassifier()
	require.NoError(t, restored.Load(path))

	assert.True(t, restored.Trained())
	for _, desc := range append(trainingDescriptions, "DOORDASH FOOD DELIVERY", "EXXON GAS") {
		assert.Equal(t, trained.Predict(desc), restored.Predict(desc), desc)
	}
}

func TestClassifier_LoadMissingSnapshotIsColdStart(t *testing.T) {
	c := NewClassifier()
	require.NoError(t, c.Load(filepath.Join(t.TempDir(), "missing.json")))

	assert.False(t, c.Trained())
	assert.Equal(t, models.CategoryOther, c.Predict("SHELL GAS STATION"))
}

func TestClassifier_LoadCorruptSnapshot(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{name: "invalid json", data: "{not json"},
		{
			name: "ragged feature rows",
			data: `{"is_trained":true,"vectorizer":{"vocabulary":{"bistro":0,"gas":1},"idf":[1,1]},` +
				`"classes":["dining","gas"],"class_log_prior":[-0.69,-0.69],"feature_log_prob":[[-1],[-1]]}`,
		},
		{
			name: "vocabulary index out of range",
			data: `{"is_trained":true,"vectorizer":{"vocabulary":{"bistro":0,"gas":5},"idf":[1,1]},` +
				`"classes":["dining","gas"],"class_log_prior":[-0.69,-0.69],"feature_log_prob":[[-1,-1],[-1,-1]]}`,
		},
		{
			name: "prior count mismatch",
			data: `{"is_trained":true,"vectorizer":{"vocabulary":{"gas":0},"idf":[1]},` +
				`"classes":["dining","gas"],"class_log_prior":[-0.69],"feature_log_prob":[[-1],[-1]]}`,
		},
		{
			name: "missing vectorizer",
			data: `{"is_trained":true,"classes":["gas"],"class_log_prior":[0],"feature_log_prob":[[-1]]}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "corrupt.json")
			require.NoError(t, os.WriteFile(path, []byte(tt.data), 0o644))

			c := NewClassifier()
			err := c.Load(path)

			var serr *StorageError
			require.ErrorAs(t, err, &serr)
			assert.Equal(t, "load", serr.Op)
			assert.False(t, c.Trained())
			assert.NotPanics(t, func() {
				assert.Equal(t, models.CategoryOther, c.Predict("gas station bistro"))
			})
		})
	}
}

func TestAnalyze(t *testing.T) {
	assert.Equal(t,
		[]string{"uber", "eats", "delivery", "uber eats", "eats delivery"},
		analyze("UBER EATS DELIVERY"))
	assert.Equal(t, []string{"amazon", "com", "amazon com"}, analyze("AMAZON.COM"))
	assert.Equal(t, []string{"shell", "station", "shell station"}, analyze("the shell at a station"))
	assert.Empty(t, analyze("x y z"))
}
