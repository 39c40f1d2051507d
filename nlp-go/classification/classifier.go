// Package classification provides the binary classifiers trained on
// bag-of-words feature vectors: logistic regression, perceptron, multinomial
// naive bayes, and decision tree ensembles.
package classification

import (
	"encoding/json"
	"io"

	"github.com/colorsquare/ml-for-nlp/nlp-golib/errors"
)

// Scorer scores a feature vector; for probabilistic models the score is the
// probability of class 1.
type Scorer interface {
	Evaluate(feats []float64) float64
}

// BinaryClassifier is a binary classifier (could be a logistic regression,
// a perceptron, a naive bayes model, or a tree ensemble).
type BinaryClassifier struct {
	ScorerType string
	Scorer     Scorer
}

// PredictProba returns the probability of feat to be classified as class 1 (v.s. 0) given the model.
func (c *BinaryClassifier) PredictProba(feat []float64) float64 {
	return c.Scorer.Evaluate(feat)
}

// Predict returns the predicted class (0 or 1) for the feature vector.
func (c *BinaryClassifier) Predict(feat []float64) int {
	if c.PredictProba(feat) >= 0.5 {
		return 1
	}
	return 0
}

// NewBinaryClassifierFromJSON loads a classifier from JSON.
func NewBinaryClassifierFromJSON(r io.Reader) (*BinaryClassifier, error) {
	var intermediate struct {
		Scorer     json.RawMessage
		ScorerType string
	}

	if err := json.NewDecoder(r).Decode(&intermediate); err != nil {
		return nil, err
	}
	classifier := &BinaryClassifier{
		ScorerType: intermediate.ScorerType,
	}

	switch intermediate.ScorerType {
	case "logistic_regression":
		var multiclass struct {
			Bias  []float64
			Coefs [][]float64
		}

		if err := json.Unmarshal(intermediate.Scorer, &multiclass); err != nil {
			return nil, err
		}

		if len(multiclass.Bias) == 0 {
			return nil, errors.Errorf("length of Bias is 0")
		}
		if len(multiclass.Coefs) == 0 {
			return nil, errors.Errorf("length of coefficients is 0")
		}
		classifier.Scorer = &LogisticRegression{
			Bias:  multiclass.Bias[0],
			Coefs: multiclass.Coefs[0],
		}
	case "ensemble":
		var ensemble Ensemble
		if err := json.Unmarshal(intermediate.Scorer, &ensemble); err != nil {
			return nil, err
		}
		classifier.Scorer = &ensemble
	default:
		return nil, errors.Errorf("unknown scorer type %q", intermediate.ScorerType)
	}
	return classifier, nil
}

// Accuracy computes the fraction of feature vectors whose predicted class
// matches the label.
func Accuracy(c *BinaryClassifier, feats [][]float64, labels []int) float64 {
	if len(feats) == 0 {
		return 0
	}
	var correct int
	for i, feat := range feats {
		if c.Predict(feat) == labels[i] {
			correct++
		}
	}
	return float64(correct) / float64(len(feats))
}
