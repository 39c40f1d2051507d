// Package mathutil collects the small numeric helpers shared by the
// classifiers, the encoder and the bias scorer.
package mathutil

import (
	"math"
	"sort"
)

// LogSumExp receives a slice of log scores: log(a), log(b), log(c)...
// and returns log(a + b + c....)
func LogSumExp(logs []float64) float64 {
	max := math.Inf(-1)
	for _, l := range logs {
		if l > max {
			max = l
		}
	}
	var sum float64
	for _, l := range logs {
		sum += math.Exp(l - max)
	}
	return max + math.Log(sum)
}

// Sum sums all the entries in an input slice
func Sum(slice []float64) float64 {
	var sum float64
	for _, value := range slice {
		sum += value
	}
	return sum
}

// Softmax converts logits to a probability distribution.
// Subtracts the max logit before exponentiation for numerical stability.
func Softmax(logits []float64) []float64 {
	probs := make([]float64, len(logits))
	max := math.Inf(-1)
	for _, l := range logits {
		if l > max {
			max = l
		}
	}
	var sum float64
	for i, l := range logits {
		probs[i] = math.Exp(l - max)
		sum += probs[i]
	}
	for i := range probs {
		probs[i] /= sum
	}
	return probs
}

// Argmax returns the index of the largest value in the slice, or -1 for an
// empty slice.
func Argmax(values []float64) int {
	best := -1
	max := math.Inf(-1)
	for i, v := range values {
		if v > max {
			max = v
			best = i
		}
	}
	return best
}

// Sigmoid is the logistic function 1 / (1 + e^-x).
func Sigmoid(x float64) float64 {
	return 1 / (1 + math.Exp(-x))
}

// TopKIndices returns the indices of the k largest values, in decreasing
// order of value. If k exceeds len(values), all indices are returned.
func TopKIndices(values []float64, k int) []int {
	if k > len(values) {
		k = len(values)
	}
	idx := make([]int, len(values))
	for i := range idx {
		idx[i] = i
	}
	sort.SliceStable(idx, func(a, b int) bool {
		return values[idx[a]] > values[idx[b]]
	})
	return idx[:k]
}
