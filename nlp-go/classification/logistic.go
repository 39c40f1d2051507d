package classification

import (
	"log"
	"math/rand"

	"github.com/colorsquare/ml-for-nlp/nlp-golib/mathutil"
)

// LogisticRegression represents a binary logistic regression classifier
type LogisticRegression struct {
	Bias  float64
	Coefs []float64
}

// Print prints coefficients of a logistic regression classifier.
func (l *LogisticRegression) Print() {
	log.Println("Bias", l.Bias)
	log.Println("Coefs", l.Coefs)
}

// Evaluate returns the probability of the feature vector to be classified as class 1 (v.s. 0) given
// the model.
func (l *LogisticRegression) Evaluate(feats []float64) float64 {
	if len(feats) != len(l.Coefs) {
		log.Fatalln("feature length is not equal to length of coefs", len(feats), len(l.Coefs))
	}
	var score float64
	for i := range l.Coefs {
		score += feats[i] * l.Coefs[i]
	}
	score += l.Bias
	return mathutil.Sigmoid(score)
}

// LogisticOptions control TrainLogisticRegression.
type LogisticOptions struct {
	Epochs       int
	LearningRate float64
	L2           float64
	Seed         int64
}

// DefaultLogisticOptions are the options used by the bow-classify command.
func DefaultLogisticOptions() LogisticOptions {
	return LogisticOptions{
		Epochs:       30,
		LearningRate: 0.1,
		L2:           1e-4,
		Seed:         42,
	}
}

// TrainLogisticRegression fits a logistic regression with SGD over shuffled
// samples, minimizing sigmoid cross-entropy with L2 regularization on the
// coefficients. Labels must be 0 or 1.
func TrainLogisticRegression(feats [][]float64, labels []int, opts LogisticOptions) *BinaryClassifier {
	dim := 0
	if len(feats) > 0 {
		dim = len(feats[0])
	}
	model := &LogisticRegression{Coefs: make([]float64, dim)}
	rng := rand.New(rand.NewSource(opts.Seed))

	order := rng.Perm(len(feats))
	for epoch := 0; epoch < opts.Epochs; epoch++ {
		rng.Shuffle(len(order), func(i, j int) {
			order[i], order[j] = order[j], order[i]
		})
		for _, idx := range order {
			x := feats[idx]
			var score float64
			for i, c := range model.Coefs {
				score += x[i] * c
			}
			score += model.Bias

			// gradient of cross-entropy wrt score
			grad := mathutil.Sigmoid(score) - float64(labels[idx])
			for i := range model.Coefs {
				if x[i] != 0 {
					model.Coefs[i] -= opts.LearningRate * (grad*x[i] + opts.L2*model.Coefs[i])
				}
			}
			model.Bias -= opts.LearningRate * grad
		}
	}

	return &BinaryClassifier{ScorerType: "logistic_regression", Scorer: model}
}
