package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/mithrel/mdnotes/internal/present/format"
)

// truncate cuts s to n display cells, ending with an ellipsis when cut.
// Control characters are dropped first.
func truncate(s string, n int) string {
	if n <= 0 {
		return ""
	}
	s = format.SafeText(s)
	if lipgloss.Width(s) <= n {
		return s
	}
	r := []rune(s)
	for len(r) > 0 && lipgloss.Width(string(r))+1 > n {
		r = r[:len(r)-1]
	}
	return string(r) + "…"
}

func pinMark(pinned bool) string {
	if pinned {
		return "★"
	}
	return ""
}
