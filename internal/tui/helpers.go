package tui

import (
	"strings"

	"github.com/charmbracelet/x/ansi"
)

// truncate shortens a string to max display cells with ellipsis
func truncate(s string, max int) string {
	if max < 4 {
		max = 4
	}
	return ansi.Truncate(s, max, "...")
}

// repeat creates a string by repeating s n times
func repeat(s string, n int) string {
	if n <= 0 {
		return ""
	}
	return strings.Repeat(s, n)
}
