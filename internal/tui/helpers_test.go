package tui

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/charmbracelet/x/ansi"
	"github.com/stretchr/testify/assert"
)

func TestTruncate(t *testing.T) {
	assert.Equal(t, "short", truncate("short", 10))
	assert.Equal(t, "abcdefg...", truncate("abcdefghijklmnop", 10))

	long := strings.Repeat("café ", 10)
	got := truncate(long, 12)
	assert.True(t, utf8.ValidString(got))
	assert.LessOrEqual(t, ansi.StringWidth(got), 12)
	assert.True(t, strings.HasSuffix(got, "..."))

	wide := truncate("日本語のタスクを買う", 9)
	assert.True(t, utf8.ValidString(wide))
	assert.LessOrEqual(t, ansi.StringWidth(wide), 9)
}

func TestRepeat(t *testing.T) {
	assert.Equal(t, "---", repeat("-", 3))
	assert.Empty(t, repeat("-", -2))
}
