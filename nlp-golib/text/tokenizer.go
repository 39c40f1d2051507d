package text

import (
	"regexp"
	"strings"

	porterstemmer "github.com/reiver/go-porterstemmer"
)

// PhraseMark separates phrases in a tokenized review so that n-grams never
// span a sentence or clause boundary.
const PhraseMark = "<br />"

// TokenFunc defines a type of function that takes in an array of tokens and
// returns an array of tokens.
type TokenFunc func(Tokens) Tokens

// Tokens represents a slice of strings
type Tokens []string

// Processor consists of a list of text processing rules.
type Processor struct {
	filters []TokenFunc
}

// NewProcessor takes a list of TokenFuncs to instantiate a Processor.
func NewProcessor(funcs ...TokenFunc) *Processor {
	p := &Processor{}
	for _, fn := range funcs {
		p.filters = append(p.filters, fn)
	}
	return p
}

// Apply applies a list of TokenFunc to transform the input tokens
func (p *Processor) Apply(ts Tokens) Tokens {
	for _, fn := range p.filters {
		ts = fn(ts)
	}
	return ts
}

// UnigramProcessor is the processor applied to unigram token streams:
// cleaned, lower-cased tokens with stop words removed.
var UnigramProcessor = NewProcessor(Clean, RemoveStopWords)

// phraseBreak matches the boundaries at which a review is split into
// phrases: HTML line breaks, punctuation runs, and dash separators.
var phraseBreak = regexp.MustCompile(`<br \/>|\.+|,+|\?+|!+|\(+|\)+|;|--+| - `)

// nonWord matches every character that is not a word character.
var nonWord = regexp.MustCompile(`[^\w]`)

// CleanToken strips non-word characters from a token and lower-cases it.
// "Don't" -> "dont", "apples!" -> "apples".
func CleanToken(tok string) string {
	return strings.ToLower(nonWord.ReplaceAllString(tok, ""))
}

// SplitPhrases splits a raw review into whitespace-tokenized phrases.
// Empty phrases are dropped.
func SplitPhrases(review string) []Tokens {
	var phrases []Tokens
	for _, phrase := range phraseBreak.Split(review, -1) {
		if phrase == "" {
			continue
		}
		fields := strings.Fields(phrase)
		if len(fields) > 0 {
			phrases = append(phrases, Tokens(fields))
		}
	}
	return phrases
}

// Tokenize turns a raw review into a cleaned token stream. Tokens are
// cleaned with CleanToken. For unigrams (ngram == 1) empty tokens and stop
// words are removed; for higher orders every cleaned token is kept so that
// n-gram positions stay aligned with the source text. Phrases are separated
// with PhraseMark.
func Tokenize(review string, ngram int) Tokens {
	var tokens Tokens
	for i, phrase := range SplitPhrases(Normalize(review)) {
		cleaned := make(Tokens, 0, len(phrase))
		for _, tok := range phrase {
			cleaned = append(cleaned, CleanToken(tok))
		}
		if ngram == 1 {
			cleaned = UnigramProcessor.Apply(cleaned)
		}
		if len(cleaned) == 0 {
			continue
		}
		if i > 0 && len(tokens) > 0 {
			tokens = append(tokens, PhraseMark)
		}
		tokens = append(tokens, cleaned...)
	}
	return tokens
}

// Clean removes empty tokens from a token stream.
func Clean(ts Tokens) Tokens {
	var clean Tokens
	for _, t := range ts {
		if len(t) > 0 {
			clean = append(clean, t)
		}
	}
	return clean
}

// Lower converts all tokens to lower case
func Lower(ts Tokens) Tokens {
	for i, t := range ts {
		ts[i] = strings.ToLower(t)
	}
	return ts
}

// RemoveStopWords removes stop words from a token stream
func RemoveStopWords(ts Tokens) Tokens {
	var filtered Tokens
	for _, t := range ts {
		if _, skip := stopWords[t]; !skip {
			filtered = append(filtered, t)
		}
	}
	return filtered
}

// Stem extracts and returns the stems of each token in the input token stream
func Stem(ts Tokens) Tokens {
	for i, t := range ts {
		ts[i] = porterstemmer.StemString(t)
	}
	return ts
}

// Uniquify returns the set of unique tokens in a token stream
func Uniquify(ts Tokens) Tokens {
	var unique Tokens
	seen := make(map[string]struct{})
	for _, t := range ts {
		if _, exists := seen[t]; !exists {
			unique = append(unique, t)
			seen[t] = struct{}{}
		}
	}
	return unique
}
