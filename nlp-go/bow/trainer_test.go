package bow

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
)

func TestClipShortStringUnchanged(t *testing.T) {
	assert.Equal(t, "short", clip("short", 10))
}

func TestClipKeepsRunesWhole(t *testing.T) {
	s := strings.Repeat("é", 5)
	got := clip(s, 3)
	assert.Equal(t, "ééé...", got)
	assert.True(t, utf8.ValidString(got))
}

func TestHead(t *testing.T) {
	lines := []string{"a", "b", "c"}
	assert.Equal(t, []string{"a", "b"}, head(lines, 2))
	assert.Equal(t, lines, head(lines, 5))
}
