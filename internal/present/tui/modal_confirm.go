package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/mithrel/mdnotes/pkg/api"
)

// confirmModal asks before a note is deleted.
type confirmModal struct {
	note api.Note
	box  lipgloss.Style
}

func newConfirmModal(n api.Note, termW int) *confirmModal {
	w := 50
	if termW > 0 && termW-4 < w {
		w = max(24, termW-4)
	}
	return &confirmModal{
		note: n,
		box: lipgloss.NewStyle().
			Width(w).
			Padding(1, 2).
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("196")),
	}
}

func (c *confirmModal) View() string {
	header := lipgloss.NewStyle().Bold(true).Render("Delete note?")
	title := fmt.Sprintf("%q", truncate(c.note.DisplayTitle(), 40))
	help := lipgloss.NewStyle().Faint(true).Render("y=delete • n/esc=cancel")
	return c.box.Render(strings.Join([]string{header, "", title, "", help}, "\n"))
}
