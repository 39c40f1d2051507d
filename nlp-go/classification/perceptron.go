package classification

import "math/rand"

// Perceptron is a binary perceptron classifier with mistake-driven updates.
type Perceptron struct {
	Bias    float64
	Weights []float64
}

// Evaluate returns 1 for a positive activation and 0 otherwise. The score is
// not a probability, but it satisfies the Scorer contract for thresholding
// at 0.5.
func (p *Perceptron) Evaluate(feats []float64) float64 {
	if p.activation(feats) > 0 {
		return 1
	}
	return 0
}

func (p *Perceptron) activation(feats []float64) float64 {
	score := p.Bias
	for i, w := range p.Weights {
		score += feats[i] * w
	}
	return score
}

// PerceptronOptions control TrainPerceptron.
type PerceptronOptions struct {
	Epochs       int
	LearningRate float64
	Seed         int64
}

// DefaultPerceptronOptions are the options used by the bow-classify command.
func DefaultPerceptronOptions() PerceptronOptions {
	return PerceptronOptions{Epochs: 20, LearningRate: 1.0, Seed: 42}
}

// TrainPerceptron fits a perceptron on the feature vectors: misclassified
// samples move the weights toward (label 1) or away from (label 0) the
// feature vector.
func TrainPerceptron(feats [][]float64, labels []int, opts PerceptronOptions) *BinaryClassifier {
	dim := 0
	if len(feats) > 0 {
		dim = len(feats[0])
	}
	model := &Perceptron{Weights: make([]float64, dim)}
	rng := rand.New(rand.NewSource(opts.Seed))

	order := rng.Perm(len(feats))
	for epoch := 0; epoch < opts.Epochs; epoch++ {
		rng.Shuffle(len(order), func(i, j int) {
			order[i], order[j] = order[j], order[i]
		})
		var mistakes int
		for _, idx := range order {
			predicted := 0
			if model.activation(feats[idx]) > 0 {
				predicted = 1
			}
			diff := float64(labels[idx] - predicted)
			if diff == 0 {
				continue
			}
			mistakes++
			for i, x := range feats[idx] {
				if x != 0 {
					model.Weights[i] += opts.LearningRate * diff * x
				}
			}
			model.Bias += opts.LearningRate * diff
		}
		if mistakes == 0 {
			break
		}
	}

	return &BinaryClassifier{ScorerType: "perceptron", Scorer: model}
}
