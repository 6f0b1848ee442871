package tui

import (
	"github.com/charmbracelet/lipgloss"
)

// renderOverlay centers fg on a terminal-sized canvas. The base view is
// not drawn behind it.
func (m model) renderOverlay(fg string) string {
	termW, termH := m.width, m.height
	if termW <= 0 {
		termW = 80
	}
	if termH <= 0 {
		termH = 24
	}
	return lipgloss.Place(termW, termH, lipgloss.Center, lipgloss.Center, fg,
		lipgloss.WithWhitespaceChars(" "))
}
