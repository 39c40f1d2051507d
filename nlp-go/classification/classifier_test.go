package classification

import (
	"math"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// separableData is a linearly separable toy problem: class 1 iff the first
// feature dominates the second.
func separableData() ([][]float64, []int) {
	feats := [][]float64{
		{3, 0}, {4, 1}, {5, 0}, {2, 0}, {6, 2}, {4, 0},
		{0, 3}, {1, 4}, {0, 5}, {0, 2}, {2, 6}, {0, 4},
	}
	labels := []int{1, 1, 1, 1, 1, 1, 0, 0, 0, 0, 0, 0}
	return feats, labels
}

func TestLogisticRegressionEvaluate(t *testing.T) {
	model := &LogisticRegression{Bias: -1, Coefs: []float64{2, -1}}
	act := model.Evaluate([]float64{1, 0})
	exp := 1 / (1 + math.Exp(-1))
	if math.Abs(act-exp) > 1e-8 {
		t.Errorf("expected %f, but got %f\n", exp, act)
	}
}

func TestTrainLogisticRegression(t *testing.T) {
	feats, labels := separableData()
	clf := TrainLogisticRegression(feats, labels, DefaultLogisticOptions())
	assert.Equal(t, 1.0, Accuracy(clf, feats, labels))
	assert.True(t, clf.PredictProba([]float64{5, 1}) > 0.5)
	assert.True(t, clf.PredictProba([]float64{1, 5}) < 0.5)
}

func TestTrainPerceptron(t *testing.T) {
	feats, labels := separableData()
	clf := TrainPerceptron(feats, labels, DefaultPerceptronOptions())
	assert.Equal(t, 1.0, Accuracy(clf, feats, labels))
}

func TestTrainNaiveBayes(t *testing.T) {
	feats, labels := separableData()
	clf := TrainNaiveBayes(feats, labels, 1.0)
	assert.Equal(t, 1.0, Accuracy(clf, feats, labels))

	proba := clf.PredictProba([]float64{4, 0})
	assert.True(t, proba > 0.5 && proba <= 1.0)
}

func TestLoadClassifierJSON(t *testing.T) {
	payload := `{
		"ScorerType": "logistic_regression",
		"Scorer": {"Bias": [0.5], "Coefs": [[1.0, -2.0]]}
	}`
	clf, err := NewBinaryClassifierFromJSON(strings.NewReader(payload))
	require.NoError(t, err)
	require.Equal(t, "logistic_regression", clf.ScorerType)

	act := clf.PredictProba([]float64{1, 0})
	exp := 1 / (1 + math.Exp(-1.5))
	if math.Abs(act-exp) > 1e-8 {
		t.Errorf("expected %f, but got %f\n", exp, act)
	}
}

func TestLoadClassifierUnknownType(t *testing.T) {
	_, err := NewBinaryClassifierFromJSON(strings.NewReader(`{"ScorerType": "svm", "Scorer": {}}`))
	assert.Error(t, err)
}
