package bert

import (
	"fmt"
	"math"
	"math/rand"

	"github.com/sbwhitecap/tqdm"
	"github.com/sbwhitecap/tqdm/iterators"

	"github.com/colorsquare/ml-for-nlp/nlp-golib/errors"
	"github.com/colorsquare/ml-for-nlp/nlp-golib/mathutil"
)

// Sample is one encoded sequence with its label.
type Sample struct {
	IDs   []int
	Label int
}

// TrainOptions controls head training.
type TrainOptions struct {
	Epochs       int
	BatchSize    int
	LearningRate float64
	// WarmupRatio is the fraction of total steps spent ramping the learning
	// rate up from zero; afterwards it decays linearly to zero.
	WarmupRatio float64
	ClipNorm    float64
	Seed        int64
}

// DefaultTrainOptions returns the settings used by the pooler experiments.
func DefaultTrainOptions() TrainOptions {
	return TrainOptions{
		Epochs:       3,
		BatchSize:    32,
		LearningRate: 1e-3,
		WarmupRatio:  0.1,
		ClipNorm:     1.0,
		Seed:         42,
	}
}

// EpochStats records the loss and accuracies after one epoch.
type EpochStats struct {
	Epoch    int
	Loss     float64
	TrainAcc float64
	ValAcc   float64
}

// Train fits the pooler and classifier head on train, evaluating on val
// after every epoch. The encoder itself is not updated.
func Train(model *Model, train, val []Sample, opts TrainOptions) ([]EpochStats, error) {
	if len(train) == 0 {
		return nil, errors.Errorf("empty training set")
	}
	if opts.BatchSize < 1 {
		opts.BatchSize = 1
	}

	params := model.Params()
	optimizer := newAdam(params)
	rng := rand.New(rand.NewSource(opts.Seed))

	stepsPerEpoch := (len(train) + opts.BatchSize - 1) / opts.BatchSize
	totalSteps := opts.Epochs * stepsPerEpoch
	warmupSteps := int(opts.WarmupRatio * float64(totalSteps))

	var history []EpochStats
	step := 0
	for epoch := 1; epoch <= opts.Epochs; epoch++ {
		order := rng.Perm(len(train))
		model.Train(true)

		var epochLoss float64
		var trainCorrect int
		err := tqdm.With(iterators.Interval(0, stepsPerEpoch), fmt.Sprintf("epoch %d", epoch), func(c interface{}) (brk bool) {
			batch := c.(int)
			lo := batch * opts.BatchSize
			hi := lo + opts.BatchSize
			if hi > len(order) {
				hi = len(order)
			}
			for p := range params {
				params[p].ZeroGrad()
			}
			for _, idx := range order[lo:hi] {
				sample := train[idx]
				logits := model.Forward(sample.IDs)
				loss, dLogits := crossEntropy(logits, sample.Label)
				epochLoss += loss
				if mathutil.Argmax(logits) == sample.Label {
					trainCorrect++
				}
				scale := 1 / float64(hi-lo)
				for i := range dLogits {
					dLogits[i] *= scale
				}
				model.Backward(dLogits)
			}
			clipGradients(params, opts.ClipNorm)
			step++
			optimizer.step(scheduledLR(opts, step, totalSteps, warmupSteps))
			return
		})
		if err != nil {
			return nil, errors.Wrapf(err, "training epoch %d", epoch)
		}

		model.Train(false)
		stats := EpochStats{
			Epoch:    epoch,
			Loss:     epochLoss / float64(len(train)),
			TrainAcc: float64(trainCorrect) / float64(len(train)),
			ValAcc:   Evaluate(model, val),
		}
		history = append(history, stats)
		fmt.Printf("epoch %d: loss %.4f, train acc %.4f, val acc %.4f\n",
			stats.Epoch, stats.Loss, stats.TrainAcc, stats.ValAcc)
	}
	return history, nil
}

// Evaluate returns the model's accuracy on samples.
func Evaluate(model *Model, samples []Sample) float64 {
	if len(samples) == 0 {
		return 0
	}
	model.Train(false)
	correct := 0
	for _, sample := range samples {
		if mathutil.Argmax(model.Forward(sample.IDs)) == sample.Label {
			correct++
		}
	}
	return float64(correct) / float64(len(samples))
}

// crossEntropy returns the negative log likelihood of label and the logit
// gradient, softmax(logits) minus the one-hot target.
func crossEntropy(logits []float64, label int) (float64, []float64) {
	probs := mathutil.Softmax(logits)
	loss := -math.Log(math.Max(probs[label], 1e-12))
	dLogits := make([]float64, len(logits))
	copy(dLogits, probs)
	dLogits[label]--
	return loss, dLogits
}

// scheduledLR implements linear warmup followed by linear decay.
func scheduledLR(opts TrainOptions, step, totalSteps, warmupSteps int) float64 {
	if warmupSteps > 0 && step <= warmupSteps {
		return opts.LearningRate * float64(step) / float64(warmupSteps)
	}
	remaining := float64(totalSteps-step) / float64(totalSteps-warmupSteps)
	if remaining < 0 {
		remaining = 0
	}
	return opts.LearningRate * remaining
}

// clipGradients rescales all gradients so their global norm is at most
// maxNorm.
func clipGradients(params []Param, maxNorm float64) {
	if maxNorm <= 0 {
		return
	}
	var sum float64
	for _, p := range params {
		for _, g := range p.Grad {
			sum += g * g
		}
	}
	norm := math.Sqrt(sum)
	if norm <= maxNorm {
		return
	}
	scale := maxNorm / norm
	for _, p := range params {
		for i := range p.Grad {
			p.Grad[i] *= scale
		}
	}
}

// adam is the Adam optimizer over a fixed set of parameters.
type adam struct {
	params []Param
	m, v   [][]float64
	beta1  float64
	beta2  float64
	eps    float64
	t      int
}

func newAdam(params []Param) *adam {
	a := &adam{
		params: params,
		beta1:  0.9,
		beta2:  0.999,
		eps:    1e-8,
	}
	for _, p := range params {
		a.m = append(a.m, make([]float64, len(p.Value)))
		a.v = append(a.v, make([]float64, len(p.Value)))
	}
	return a
}

func (a *adam) step(lr float64) {
	a.t++
	bias1 := 1 - math.Pow(a.beta1, float64(a.t))
	bias2 := 1 - math.Pow(a.beta2, float64(a.t))
	for i, p := range a.params {
		for j, g := range p.Grad {
			a.m[i][j] = a.beta1*a.m[i][j] + (1-a.beta1)*g
			a.v[i][j] = a.beta2*a.v[i][j] + (1-a.beta2)*g*g
			mHat := a.m[i][j] / bias1
			vHat := a.v[i][j] / bias2
			p.Value[j] -= lr * mHat / (math.Sqrt(vHat) + a.eps)
		}
	}
}
