package bert

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildTokenVocabSpecialsFirst(t *testing.T) {
	vocab := BuildTokenVocab([]string{"i like apples", "i like tea"}, 100)
	assert.Equal(t, 0, vocab.ID(PadToken))
	assert.Equal(t, 1, vocab.ID(UnkToken))
	assert.Equal(t, 2, vocab.ID(ClsToken))
	assert.Equal(t, 3, vocab.ID(MaskToken))
}

func TestBuildTokenVocabFrequencyOrder(t *testing.T) {
	vocab := BuildTokenVocab([]string{"i like apples", "i like tea", "i am"}, 100)
	// "i" occurs three times, "like" twice, the rest once.
	assert.True(t, vocab.ID("i") < vocab.ID("like"))
	assert.True(t, vocab.ID("like") < vocab.ID("apples"))
}

func TestTokenVocabUnknown(t *testing.T) {
	vocab := BuildTokenVocab([]string{"i like apples"}, 100)
	assert.Equal(t, vocab.ID(UnkToken), vocab.ID("zebra"))
}

func TestEncodeSequence(t *testing.T) {
	vocab := BuildTokenVocab([]string{"i like apples"}, 100)
	ids := vocab.Encode("i like apples", 6)
	require.Len(t, ids, 6)
	assert.Equal(t, vocab.ID(ClsToken), ids[0])
	assert.Equal(t, vocab.ID("i"), ids[1])
	assert.Equal(t, 0, ids[4], "short sequences are padded with [PAD]")
	assert.Equal(t, 0, ids[5])
}

func TestEncodeTruncates(t *testing.T) {
	vocab := BuildTokenVocab([]string{"a b c d e f g h"}, 100)
	ids := vocab.Encode("a b c d e f g h", 4)
	require.Len(t, ids, 4)
	assert.Equal(t, vocab.ID(ClsToken), ids[0])
}

func TestSequenceTokensKeepsSpecials(t *testing.T) {
	toks := SequenceTokens("my [MASK] friend")
	assert.Equal(t, []string{"my", "[MASK]", "friend"}, toks)
}

func TestSequenceTokensKeepsSpecialsNextToPunctuation(t *testing.T) {
	assert.Equal(t, []string{"from", "[MASK]"}, SequenceTokens("from [MASK]."))
	assert.Equal(t, []string{"work", "as", "[MASK]"}, SequenceTokens("work as [MASK]!"))
	assert.Equal(t, []string{"this", "doctor", "comes", "from", "[MASK]"},
		SequenceTokens("This doctor comes from [MASK]."))
}

func TestEncodeMaskNextToPunctuation(t *testing.T) {
	vocab := BuildTokenVocab([]string{"people from america"}, 100)
	ids := vocab.Encode("people from [MASK].", 6)
	assert.Contains(t, ids, vocab.ID(MaskToken))
}

func TestSequenceTokensKeepsStopwords(t *testing.T) {
	toks := SequenceTokens("This is a movie")
	assert.Equal(t, []string{"this", "is", "a", "movie"}, toks)
}
