package text

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStopWords(t *testing.T) {
	testWords := []string{"i", "he", "has", "werent", "dont"}
	stopWords := StopWords()
	for _, word := range testWords {
		_, exists := stopWords[word]
		assert.Equal(t, true, exists)
	}
	_, exists := stopWords["apples"]
	assert.Equal(t, false, exists)
}
