// Package bow implements the n-gram bag-of-words review classification
// pipeline: dataset loading, vocabulary construction, count-vector encoding,
// and classifier training/evaluation.
package bow

import (
	"github.com/colorsquare/ml-for-nlp/nlp-golib/text"
)

// Vocabulary maps n-gram feature strings to dense vector indices. Indices
// are assigned in insertion order and are stable once the vocabulary is
// built: encoding never adds entries.
type Vocabulary struct {
	Index map[string]int
	NGram int
	// Stem applies Porter stemming to tokens before n-grams are formed.
	// It must match between construction and encoding, so it is fixed at
	// construction time.
	Stem bool
}

// NewVocabulary builds a vocabulary from the n-gram features of the given
// reviews. Every distinct feature receives the next free index.
func NewVocabulary(reviews []string, ngram int) *Vocabulary {
	return buildVocabulary(reviews, ngram, false)
}

// NewStemmedVocabulary is NewVocabulary over Porter-stemmed tokens.
func NewStemmedVocabulary(reviews []string, ngram int) *Vocabulary {
	return buildVocabulary(reviews, ngram, true)
}

func buildVocabulary(reviews []string, ngram int, stem bool) *Vocabulary {
	v := &Vocabulary{
		Index: make(map[string]int),
		NGram: ngram,
		Stem:  stem,
	}
	for _, review := range reviews {
		for _, feature := range v.features(review) {
			if _, seen := v.Index[feature]; !seen {
				v.Index[feature] = len(v.Index)
			}
		}
	}
	return v
}

func (v *Vocabulary) features(review string) text.Tokens {
	if v.Stem {
		return text.StemmedFeatures(review, v.NGram)
	}
	return text.Features(review, v.NGram)
}

// Size returns the number of features in the vocabulary, which is also the
// length of every encoded vector.
func (v *Vocabulary) Size() int {
	return len(v.Index)
}

// Encode converts a review to its bag-of-words count vector. Features
// outside the vocabulary are skipped.
func (v *Vocabulary) Encode(review string) []float64 {
	counts := make([]float64, v.Size())
	for _, feature := range v.features(review) {
		if idx, known := v.Index[feature]; known {
			counts[idx]++
		}
	}
	return counts
}

// EncodeAll encodes a batch of reviews.
func (v *Vocabulary) EncodeAll(reviews []string) [][]float64 {
	vectors := make([][]float64, 0, len(reviews))
	for _, review := range reviews {
		vectors = append(vectors, v.Encode(review))
	}
	return vectors
}
