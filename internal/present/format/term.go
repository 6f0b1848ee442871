package format

import (
	"strings"
	"unicode"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/mithrel/mdnotes/internal/markup"
)

// TermStyles holds the lipgloss styles used to draw a markup tree in a terminal.
type TermStyles struct {
	Heading   lipgloss.Style
	Strong    lipgloss.Style
	Emphasis  lipgloss.Style
	Code      lipgloss.Style
	CodeBlock lipgloss.Style
	CodeLang  lipgloss.Style
	Link      lipgloss.Style
	LinkURL   lipgloss.Style
	Rule      lipgloss.Style
	Bullet    lipgloss.Style
}

// NewTermStyles returns the palette for the dark or light theme.
func NewTermStyles(dark bool) TermStyles {
	accent, muted, codeBg, codeFg := lipgloss.Color("25"), lipgloss.Color("245"), lipgloss.Color("254"), lipgloss.Color("235")
	if dark {
		accent, muted, codeBg, codeFg = lipgloss.Color("111"), lipgloss.Color("241"), lipgloss.Color("236"), lipgloss.Color("252")
	}
	return TermStyles{
		Heading:   lipgloss.NewStyle().Bold(true).Foreground(accent),
		Strong:    lipgloss.NewStyle().Bold(true),
		Emphasis:  lipgloss.NewStyle().Italic(true),
		Code:      lipgloss.NewStyle().Foreground(codeFg).Background(codeBg),
		CodeBlock: lipgloss.NewStyle().Foreground(codeFg).Background(codeBg).Padding(0, 1),
		CodeLang:  lipgloss.NewStyle().Foreground(muted).Italic(true),
		Link:      lipgloss.NewStyle().Underline(true).Foreground(accent),
		LinkURL:   lipgloss.NewStyle().Foreground(muted),
		Rule:      lipgloss.NewStyle().Foreground(muted),
		Bullet:    lipgloss.NewStyle().Foreground(accent),
	}
}

// RenderTerm draws doc for a terminal of the given width.
// Blocks are separated by a blank line. Width <= 0 disables wrapping.
func RenderTerm(doc *markup.Node, width int, dark bool) string {
	if doc == nil {
		return ""
	}
	st := NewTermStyles(dark)
	blocks := make([]string, 0, len(doc.Children))
	for _, b := range doc.Children {
		blocks = append(blocks, st.block(b, width))
	}
	return strings.Join(blocks, "\n\n")
}

func (st TermStyles) block(n *markup.Node, width int) string {
	switch n.Kind {
	case markup.KindHeading:
		text := strings.Repeat("#", n.Level) + " " + st.inline(n.Children, st.Heading)
		return wrap(text, width)
	case markup.KindThematicBreak:
		w := width
		if w <= 0 || w > 80 {
			w = 40
		}
		return st.Rule.Render(strings.Repeat("─", w))
	case markup.KindList:
		items := make([]string, 0, len(n.Children))
		inner := width - 2
		for _, item := range n.Children {
			body := wrap(st.inline(item.Children, lipgloss.NewStyle()), inner)
			body = strings.ReplaceAll(body, "\n", "\n  ")
			items = append(items, st.Bullet.Render("•")+" "+body)
		}
		return strings.Join(items, "\n")
	case markup.KindCodeBlock:
		code := st.CodeBlock.Render(SafeText(n.Text))
		if n.Lang != "" {
			return st.CodeLang.Render(SafeText(n.Lang)) + "\n" + code
		}
		return code
	case markup.KindParagraph:
		return wrap(st.inline(n.Children, lipgloss.NewStyle()), width)
	}
	return ""
}

func (st TermStyles) inline(nodes []*markup.Node, base lipgloss.Style) string {
	var b strings.Builder
	for _, n := range nodes {
		switch n.Kind {
		case markup.KindText:
			b.WriteString(base.Render(SafeText(n.Text)))
		case markup.KindStrong:
			b.WriteString(st.inline(n.Children, base.Bold(true)))
		case markup.KindEmphasis:
			b.WriteString(st.inline(n.Children, base.Italic(true)))
		case markup.KindCode:
			b.WriteString(st.Code.Render(SafeText(n.Text)))
		case markup.KindLink:
			b.WriteString(st.inline(n.Children, base.Inherit(st.Link)))
			b.WriteString(st.LinkURL.Render(" (" + SafeText(n.Target) + ")"))
		case markup.KindLineBreak:
			b.WriteString("\n")
		}
	}
	return b.String()
}

func wrap(s string, width int) string {
	if width <= 0 {
		return s
	}
	out := lipgloss.NewStyle().Width(width).Render(s)
	lines := strings.Split(out, "\n")
	for i, l := range lines {
		lines[i] = strings.TrimRight(l, " ")
	}
	return strings.Join(lines, "\n")
}

// SafeText removes escape sequences and control characters other than
// newline and tab, so note text cannot drive the terminal.
func SafeText(s string) string {
	if !hasControl(s) {
		return s
	}
	return strings.Map(func(r rune) rune {
		if r == '\n' || r == '\t' || !unicode.IsControl(r) {
			return r
		}
		return -1
	}, ansi.Strip(s))
}

func hasControl(s string) bool {
	for _, r := range s {
		if r != '\n' && r != '\t' && unicode.IsControl(r) {
			return true
		}
	}
	return false
}
