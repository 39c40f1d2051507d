package fillmask

import (
	"strings"

	"github.com/colorsquare/ml-for-nlp/nlp-go/bert"
)

// irregularPlurals covers the attribute lexicon words that regular rules
// would get wrong.
var irregularPlurals = map[string]string{
	"man":       "men",
	"woman":     "women",
	"person":    "people",
	"child":     "children",
	"foot":      "feet",
	"tooth":     "teeth",
	"policeman": "policemen",
	"fireman":   "firemen",
	"[MASK]":    "[MASK]",
}

// Pluralize returns the English plural of a noun.
func Pluralize(noun string) string {
	if plural, irregular := irregularPlurals[noun]; irregular {
		return plural
	}
	switch {
	case len(noun) > 1 && strings.HasSuffix(noun, "y") && !isVowel(noun[len(noun)-2]):
		return noun[:len(noun)-1] + "ies"
	case strings.HasSuffix(noun, "s"), strings.HasSuffix(noun, "x"),
		strings.HasSuffix(noun, "z"), strings.HasSuffix(noun, "ch"),
		strings.HasSuffix(noun, "sh"):
		return noun + "es"
	case strings.HasSuffix(noun, "fe"):
		return noun[:len(noun)-2] + "ves"
	case strings.HasSuffix(noun, "f"):
		return noun[:len(noun)-1] + "ves"
	default:
		return noun + "s"
	}
}

func isVowel(c byte) bool {
	switch c {
	case 'a', 'e', 'i', 'o', 'u':
		return true
	}
	return false
}

// ReplaceTemplate fills a template's slots: [TTT] becomes the [MASK] the
// model predicts over, and the attribute slot takes token, pluralized when
// the template asks for [AAAs]. token may itself be [MASK] to build the
// prior sentence.
func ReplaceTemplate(template, token string) string {
	out := strings.ReplaceAll(template, "[TTT]", bert.MaskToken)
	if strings.Contains(out, "[AAA]") {
		return strings.ReplaceAll(out, "[AAA]", token)
	}
	return strings.ReplaceAll(out, "[AAAs]", Pluralize(token))
}
