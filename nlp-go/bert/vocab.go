package bert

import (
	"regexp"
	"sort"
	"strings"

	"github.com/colorsquare/ml-for-nlp/nlp-golib/text"
)

// Special tokens. Their ids are fixed by construction order.
const (
	PadToken  = "[PAD]"
	UnkToken  = "[UNK]"
	ClsToken  = "[CLS]"
	MaskToken = "[MASK]"
)

// TokenVocab maps word tokens to embedding ids. Unlike the bag-of-words
// vocabulary it keeps sequence order relevant information: special tokens
// occupy the first ids and unknown words map to [UNK].
type TokenVocab struct {
	Index  map[string]int
	Tokens []string
}

// specialPattern matches a bracketed special token anywhere inside a field,
// so punctuation stuck to a special ("[MASK].") does not demote it to a
// plain word.
var specialPattern = regexp.MustCompile(`\[[A-Z]+\]`)

// SequenceTokens splits a text into cleaned word tokens, keeping stop words
// so that the encoder sees the full sequence. Bracketed special tokens pass
// through untouched, even with adjacent punctuation.
func SequenceTokens(s string) []string {
	var tokens []string
	appendCleaned := func(raw string) {
		if tok := text.CleanToken(raw); tok != "" {
			tokens = append(tokens, tok)
		}
	}
	for _, field := range strings.Fields(text.Normalize(s)) {
		rest := field
		for {
			loc := specialPattern.FindStringIndex(rest)
			if loc == nil {
				break
			}
			appendCleaned(rest[:loc[0]])
			tokens = append(tokens, rest[loc[0]:loc[1]])
			rest = rest[loc[1]:]
		}
		appendCleaned(rest)
	}
	return tokens
}

// BuildTokenVocab constructs a vocabulary from the corpus, keeping the
// maxSize most frequent tokens after the special tokens.
func BuildTokenVocab(corpus []string, maxSize int) *TokenVocab {
	counts := make(map[string]int)
	for _, doc := range corpus {
		for _, tok := range SequenceTokens(doc) {
			counts[tok]++
		}
	}

	byFreq := make([]string, 0, len(counts))
	for tok := range counts {
		byFreq = append(byFreq, tok)
	}
	sort.Slice(byFreq, func(i, j int) bool {
		if counts[byFreq[i]] != counts[byFreq[j]] {
			return counts[byFreq[i]] > counts[byFreq[j]]
		}
		return byFreq[i] < byFreq[j]
	})

	v := &TokenVocab{Index: make(map[string]int)}
	for _, special := range []string{PadToken, UnkToken, ClsToken, MaskToken} {
		v.add(special)
	}
	for _, tok := range byFreq {
		if maxSize > 0 && len(v.Tokens) >= maxSize {
			break
		}
		v.add(tok)
	}
	return v
}

// NewTokenVocabFromTokens rebuilds a vocabulary from an ordered token list,
// as stored in checkpoints.
func NewTokenVocabFromTokens(tokens []string) *TokenVocab {
	v := &TokenVocab{Index: make(map[string]int, len(tokens))}
	for _, tok := range tokens {
		v.add(tok)
	}
	return v
}

func (v *TokenVocab) add(tok string) {
	if _, seen := v.Index[tok]; !seen {
		v.Index[tok] = len(v.Tokens)
		v.Tokens = append(v.Tokens, tok)
	}
}

// Size returns the number of tokens in the vocabulary.
func (v *TokenVocab) Size() int {
	return len(v.Tokens)
}

// ID returns the id for a token, or the [UNK] id for unknown tokens.
func (v *TokenVocab) ID(tok string) int {
	if id, known := v.Index[tok]; known {
		return id
	}
	return v.Index[UnkToken]
}

// Token returns the token string for an id.
func (v *TokenVocab) Token(id int) string {
	return v.Tokens[id]
}

// Encode converts a text into a fixed-length id sequence: [CLS] followed by
// the word ids, truncated or padded with [PAD] to maxSeqLen.
func (v *TokenVocab) Encode(s string, maxSeqLen int) []int {
	ids := []int{v.Index[ClsToken]}
	for _, tok := range SequenceTokens(s) {
		if len(ids) >= maxSeqLen {
			break
		}
		ids = append(ids, v.ID(tok))
	}
	for len(ids) < maxSeqLen {
		ids = append(ids, v.Index[PadToken])
	}
	return ids
}
