package text

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNGrams(t *testing.T) {
	toks := Tokens(strings.Split("how to check if a script", " "))
	expected1 := []Tokens{{"how"}, {"to"}, {"check"}, {"if"}, {"a"}, {"script"}}
	expected2 := []Tokens{{"how", "to"}, {"to", "check"}, {"check", "if"}, {"if", "a"}, {"a", "script"}}
	expected3 := []Tokens{{"how", "to", "check"}, {"to", "check", "if"}, {"check", "if", "a"}, {"if", "a", "script"}}
	expected := [][]Tokens{expected1, expected2, expected3}
	ns := []int{1, 2, 3}
	for i, n := range ns {
		actual, err := NGrams(n, toks)
		assert.Nil(t, err, "err should be nil")
		assert.Equal(t, expected[i], actual)
	}
	actual, err := NGrams(0, toks)
	assert.NotNil(t, err, "should be non nil error for n = 0")
	assert.Nil(t, actual, "should be nil ngrams for n = 0")

	actual, err = NGrams(1, nil)
	assert.NotNil(t, err, "should be non nil error for toks = nil")
	assert.Nil(t, actual, "should be nil ngrams for toks = nil")
}

func TestJoinNGrams(t *testing.T) {
	toks := Tokens{"i", "like", "apples"}
	assert.Equal(t, Tokens{"i like", "like apples"}, JoinNGrams(2, toks))
	assert.Nil(t, JoinNGrams(4, toks), "too-short stream yields no features")
}

func TestFeatures(t *testing.T) {
	assert.Equal(t, Tokens{"i like", "like apples"}, Features("I like apples", 2))
	assert.Equal(t, Tokens{"like", "apples"}, Features("I like apples", 1))
}

func TestStemmedFeatures(t *testing.T) {
	assert.Equal(t, Tokens{"like", "tast", "appl"},
		StemmedFeatures("I liked tasted apples", 1))
}

func TestStemmedFeaturesKeepsPhraseMark(t *testing.T) {
	feats := StemmedFeatures("running fast. jumping high", 1)
	assert.Equal(t, Tokens{"run", "fast", PhraseMark, "jump", "high"}, feats)
}
