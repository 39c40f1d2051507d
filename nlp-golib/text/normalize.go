package text

import (
	"strings"
	"unicode/utf8"

	"golang.org/x/text/unicode/norm"
)

// Normalize prepares a raw review string for tokenization: it drops invalid
// UTF-8 sequences, applies NFC normalization and trims surrounding space.
func Normalize(s string) string {
	if !utf8.ValidString(s) {
		s = removeInvalidUTF8(s)
	}
	return norm.NFC.String(strings.TrimSpace(s))
}

func removeInvalidUTF8(s string) string {
	valid := make([]rune, 0, len(s))
	for i, r := range s {
		if r == utf8.RuneError {
			_, size := utf8.DecodeRuneInString(s[i:])
			if size == 1 {
				continue
			}
		}
		valid = append(valid, r)
	}
	return string(valid)
}
