package text

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCleanToken(t *testing.T) {
	assert.Equal(t, "apples", CleanToken("apples!"))
	assert.Equal(t, "dont", CleanToken("Don't"))
	assert.Equal(t, "python3", CleanToken("python3"))
	assert.Equal(t, "", CleanToken("..."))
}

func TestSplitPhrases(t *testing.T) {
	phrases := SplitPhrases("I like apples. They are tasty, really tasty!")
	require.Len(t, phrases, 3)

	assert.Equal(t, Tokens{"I", "like", "apples"}, phrases[0])
	assert.Equal(t, Tokens{"They", "are", "tasty"}, phrases[1])
	assert.Equal(t, Tokens{"really", "tasty"}, phrases[2])
}

func TestSplitPhrasesBreakMarker(t *testing.T) {
	phrases := SplitPhrases("great movie<br />would watch again - twice")
	require.Len(t, phrases, 3)
	assert.Equal(t, Tokens{"great", "movie"}, phrases[0])
	assert.Equal(t, Tokens{"would", "watch", "again"}, phrases[1])
	assert.Equal(t, Tokens{"twice"}, phrases[2])
}

func TestTokenizeUnigramRemovesStopWords(t *testing.T) {
	tokens := Tokenize("I like apples", 1)
	assert.Equal(t, Tokens{"like", "apples"}, tokens)
}

func TestTokenizeBigramKeepsStopWords(t *testing.T) {
	tokens := Tokenize("I like apples", 2)
	assert.Equal(t, Tokens{"i", "like", "apples"}, tokens)
}

func TestTokenizeInsertsPhraseMark(t *testing.T) {
	tokens := Tokenize("good start. strong finish", 2)
	assert.Equal(t, Tokens{"good", "start", PhraseMark, "strong", "finish"}, tokens)
}

func TestProcessor(t *testing.T) {
	p := NewProcessor(Lower, RemoveStopWords, Uniquify)
	tokens := p.Apply(Tokens{"The", "movie", "the", "Movie", "was", "movie"})
	assert.Equal(t, Tokens{"movie"}, tokens)
}

func TestStem(t *testing.T) {
	tokens := Stem(Tokens{"running", "tasted"})
	assert.Equal(t, Tokens{"run", "tast"}, tokens)
}
