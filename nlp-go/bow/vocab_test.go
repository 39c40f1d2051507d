package bow

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVocabularyConstruction(t *testing.T) {
	vocab := NewVocabulary([]string{"I like apples", "I love python3"}, 2)

	// distinct bigrams only, in insertion order
	require.Equal(t, 4, vocab.Size())
	assert.Equal(t, 0, vocab.Index["i like"])
	assert.Equal(t, 1, vocab.Index["like apples"])
	assert.Equal(t, 2, vocab.Index["i love"])
	assert.Equal(t, 3, vocab.Index["love python3"])
}

func TestVocabularySizeIsDistinctTokenCount(t *testing.T) {
	vocab := NewVocabulary([]string{"good good movie", "movie movie movie"}, 1)
	// "good", "movie"
	assert.Equal(t, 2, vocab.Size())
}

func TestEncodeLengthEqualsVocabSize(t *testing.T) {
	vocab := NewVocabulary([]string{"I like apples", "I love python3"}, 1)
	vec := vocab.Encode("I like apples")
	assert.Len(t, vec, vocab.Size())
}

func TestEncodeCounts(t *testing.T) {
	vocab := NewVocabulary([]string{"good movie good fun"}, 1)
	vec := vocab.Encode("good movie good fun")

	assert.Equal(t, 2.0, vec[vocab.Index["good"]])
	assert.Equal(t, 1.0, vec[vocab.Index["movie"]])
	assert.Equal(t, 1.0, vec[vocab.Index["fun"]])
}

func TestEncodeDeterministic(t *testing.T) {
	vocab := NewVocabulary([]string{"I like apples", "I love python3"}, 1)
	first := vocab.Encode("I like apples and python3")
	second := vocab.Encode("I like apples and python3")
	assert.Equal(t, first, second)
}

func TestEncodeSkipsUnknownFeatures(t *testing.T) {
	vocab := NewVocabulary([]string{"good movie"}, 1)
	vec := vocab.Encode("terrible awful movie")

	assert.Equal(t, 0.0, vec[vocab.Index["good"]])
	assert.Equal(t, 1.0, vec[vocab.Index["movie"]])
}

func TestStemmedVocabulary(t *testing.T) {
	vocab := NewStemmedVocabulary([]string{"tasted apples"}, 1)
	require.Equal(t, 2, vocab.Size())
	assert.Equal(t, 0, vocab.Index["tast"])
	assert.Equal(t, 1, vocab.Index["appl"])

	// inflected forms collapse onto the same stemmed features
	assert.Equal(t, []float64{1, 1}, vocab.Encode("tasting apples"))
}
