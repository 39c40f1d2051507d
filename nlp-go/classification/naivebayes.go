package classification

import (
	"math"

	"github.com/colorsquare/ml-for-nlp/nlp-golib/mathutil"
)

// NaiveBayes is a multinomial naive bayes classifier over bag-of-words
// count vectors.
type NaiveBayes struct {
	// LogPrior[c] is log p(class = c).
	LogPrior [2]float64
	// LogProb[c][i] is log p(feature i | class = c) after add-alpha smoothing.
	LogProb [2][]float64
}

// Evaluate returns the posterior probability of class 1 given the counts.
func (nb *NaiveBayes) Evaluate(feats []float64) float64 {
	scores := []float64{
		nb.logJoint(0, feats),
		nb.logJoint(1, feats),
	}
	return math.Exp(scores[1] - mathutil.LogSumExp(scores))
}

func (nb *NaiveBayes) logJoint(class int, feats []float64) float64 {
	score := nb.LogPrior[class]
	for i, count := range feats {
		if count != 0 {
			score += count * nb.LogProb[class][i]
		}
	}
	return score
}

// TrainNaiveBayes estimates class priors and per-feature multinomial
// probabilities from count vectors. alpha is the additive smoothing constant
// applied to every (class, feature) count.
func TrainNaiveBayes(feats [][]float64, labels []int, alpha float64) *BinaryClassifier {
	dim := 0
	if len(feats) > 0 {
		dim = len(feats[0])
	}
	nb := &NaiveBayes{}
	counts := [2][]float64{make([]float64, dim), make([]float64, dim)}
	var classTotals [2]float64

	for i, feat := range feats {
		class := labels[i]
		classTotals[class]++
		for j, count := range feat {
			counts[class][j] += count
		}
	}

	total := classTotals[0] + classTotals[1]
	for class := 0; class < 2; class++ {
		nb.LogPrior[class] = math.Log(classTotals[class]+1) - math.Log(total+2)

		sum := mathutil.Sum(counts[class]) + alpha*float64(dim)
		logSum := math.Log(sum)
		nb.LogProb[class] = make([]float64, dim)
		for j, count := range counts[class] {
			nb.LogProb[class][j] = math.Log(count+alpha) - logSum
		}
	}

	return &BinaryClassifier{ScorerType: "naive_bayes", Scorer: nb}
}
