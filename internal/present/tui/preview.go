package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/mithrel/mdnotes/internal/markup"
	"github.com/mithrel/mdnotes/internal/present/format"
	"github.com/mithrel/mdnotes/pkg/api"
)

// preview shows the rendered note inside a scrollable viewport.
type preview struct {
	vp      viewport.Model
	width   int
	height  int
	focused bool
	content string
	noteID  string
}

func newPreview(w, h int) preview {
	p := preview{}
	p.resize(w, h)
	return p
}

func (p *preview) resize(w, h int) {
	p.width, p.height = max(w, 12), max(h, 5)
	innerW, innerH := p.width-4, p.height-2 // border + padding
	if p.vp.Width == 0 && p.vp.Height == 0 {
		p.vp = viewport.New(innerW, innerH)
	} else {
		p.vp.Width = innerW
		p.vp.Height = innerH
	}
	p.vp.SetContent(p.content)
}

// setNote renders n for the current width. A nil note clears the pane.
func (p *preview) setNote(n *api.Note, r markup.Renderer, dark bool) {
	if n == nil {
		p.noteID = ""
		p.setContent(lipgloss.NewStyle().Faint(true).Render("No note selected"))
		return
	}
	title := lipgloss.NewStyle().Bold(true).Render(n.DisplayTitle())
	meta := lipgloss.NewStyle().Faint(true).Render(strings.TrimSpace(n.Date() + " " + pinMark(n.Pinned)))
	body := format.RenderTerm(r.Parse(n.Content), p.vp.Width, dark)
	if n.ID != p.noteID {
		p.vp.GotoTop()
	}
	p.noteID = n.ID
	p.setContent(title + "\n" + meta + "\n\n" + body)
}

func (p *preview) setContent(s string) {
	p.content = s
	p.vp.SetContent(s)
}

func (p *preview) update(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	p.vp, cmd = p.vp.Update(msg)
	return cmd
}

func (p preview) View() string {
	border := lipgloss.Color("240")
	if p.focused {
		border = lipgloss.Color("63")
	}
	return lipgloss.NewStyle().
		Width(p.width-2).
		Height(p.height-2).
		Padding(0, 1).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(border).
		Render(p.vp.View())
}
