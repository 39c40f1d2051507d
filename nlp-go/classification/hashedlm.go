package classification

import (
	"math"

	spooky "github.com/dgryski/go-spooky"

	"github.com/colorsquare/ml-for-nlp/nlp-golib/mathutil"
	"github.com/colorsquare/ml-for-nlp/nlp-golib/text"
)

const (
	hashedVecLen = 100003
	hashedAlpha  = 0.01
)

// HashedScorer classifies token streams with one hashed-vocabulary unigram
// language model per class: p(T|q) ~ p(q|T) * p(T). Tokens are hashed into a
// fixed-length count vector, so the model size is independent of the corpus
// vocabulary and models trained on different datasets stay comparable.
// Collisions are possible and accepted.
type HashedScorer struct {
	Prior          map[int]float64
	LanguageModels map[int]*hashedLanguageModel
}

type hashedLanguageModel struct {
	WordHashVec []float64
}

func newHashedLanguageModel() *hashedLanguageModel {
	return &hashedLanguageModel{WordHashVec: make([]float64, hashedVecLen)}
}

func (lm *hashedLanguageModel) addTokens(toks text.Tokens) {
	for _, t := range toks {
		id := spooky.Hash64([]byte(t))
		lm.WordHashVec[id%hashedVecLen]++
	}
}

// train smooths the word counts and normalizes them in log space.
func (lm *hashedLanguageModel) train() {
	for i := range lm.WordHashVec {
		lm.WordHashVec[i] += hashedAlpha
	}
	logTotal := math.Log(mathutil.Sum(lm.WordHashVec))
	for i := range lm.WordHashVec {
		lm.WordHashVec[i] = math.Log(lm.WordHashVec[i]) - logTotal
	}
}

// logLikelihood returns log p(W|model) = sum of log p(w_i|model).
func (lm *hashedLanguageModel) logLikelihood(toks text.Tokens) float64 {
	var score float64
	for _, t := range toks {
		id := spooky.Hash64([]byte(t))
		score += lm.WordHashVec[id%hashedVecLen]
	}
	return score
}

// TrainHashedScorer trains one language model per class from the token
// streams and their labels.
func TrainHashedScorer(docs []text.Tokens, labels []int) *HashedScorer {
	s := &HashedScorer{
		Prior:          make(map[int]float64),
		LanguageModels: make(map[int]*hashedLanguageModel),
	}
	for i, doc := range docs {
		class := labels[i]
		s.Prior[class]++
		lm, exists := s.LanguageModels[class]
		if !exists {
			lm = newHashedLanguageModel()
			s.LanguageModels[class] = lm
		}
		lm.addTokens(doc)
	}

	var sum float64
	for _, c := range s.Prior {
		sum += c
	}
	logSum := math.Log(sum)
	for class, lm := range s.LanguageModels {
		s.Prior[class] = math.Log(s.Prior[class]) - logSum
		lm.train()
	}
	return s
}

// Posterior returns the posterior probability of p(T|q) for each class given
// the token stream.
func (s *HashedScorer) Posterior(toks text.Tokens) map[int]float64 {
	var justScores []float64
	scores := make(map[int]float64)
	for class, prior := range s.Prior {
		scores[class] = prior + s.LanguageModels[class].logLikelihood(toks)
		justScores = append(justScores, scores[class])
	}
	logSum := mathutil.LogSumExp(justScores)
	for class, score := range scores {
		scores[class] = math.Exp(score - logSum)
	}
	return scores
}

// Predict returns the most probable class for the token stream.
func (s *HashedScorer) Predict(toks text.Tokens) int {
	best, bestScore := 0, math.Inf(-1)
	for class, score := range s.Posterior(toks) {
		if score > bestScore {
			best, bestScore = class, score
		}
	}
	return best
}
