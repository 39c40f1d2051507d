package text

import (
	"strings"

	porterstemmer "github.com/reiver/go-porterstemmer"

	"github.com/colorsquare/ml-for-nlp/nlp-golib/errors"
)

// NGrams constructs the n grams (of order n) for the given token stream.
func NGrams(n int, toks Tokens) ([]Tokens, error) {
	if n < 1 || len(toks) < n {
		return nil, errors.New("not enough tokens for nGrams")
	}
	var nGrams []Tokens
	for i := 0; i+n <= len(toks); i++ {
		var nGram Tokens
		for j := i; j < i+n; j++ {
			nGram = append(nGram, toks[j])
		}
		nGrams = append(nGrams, nGram)
	}
	return nGrams, nil
}

// JoinNGrams returns the n grams of the token stream as space-joined feature
// strings, e.g. JoinNGrams(2, {"i", "like", "apples"}) -> {"i like", "like apples"}.
// Too-short token streams yield no features rather than an error: a review
// shorter than the n-gram order simply contributes nothing to the vocabulary.
func JoinNGrams(n int, toks Tokens) Tokens {
	grams, err := NGrams(n, toks)
	if err != nil {
		return nil
	}
	joined := make(Tokens, 0, len(grams))
	for _, gram := range grams {
		joined = append(joined, strings.Join(gram, " "))
	}
	return joined
}

// Features tokenizes a review and returns its order-n n-gram feature strings.
func Features(review string, n int) Tokens {
	return JoinNGrams(n, Tokenize(review, n))
}

// StemmedFeatures is Features with Porter stemming applied to the word
// tokens before the n-grams are formed. Phrase markers pass through
// unstemmed.
func StemmedFeatures(review string, n int) Tokens {
	toks := Tokenize(review, n)
	for i, t := range toks {
		if t != PhraseMark {
			toks[i] = porterstemmer.StemString(t)
		}
	}
	return JoinNGrams(n, toks)
}
