package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/mithrel/mdnotes/internal/editor"
	"github.com/mithrel/mdnotes/internal/logging"
	"github.com/mithrel/mdnotes/internal/prefs"
	"github.com/mithrel/mdnotes/pkg/api"
)

type focusArea int

const (
	focusList focusArea = iota
	focusSearch
	focusPreview
)

type model struct {
	ctx     context.Context
	opts    Options
	table   table.Model
	search  textinput.Model
	preview preview
	confirm *confirmModal

	visible []api.Note
	theme   prefs.Theme
	focus   focusArea
	width   int
	height  int

	// showPreview selects the pane shown in the narrow layout.
	showPreview bool
	previewSeq  int
	titleWidth  int
	status      string
}

func (m *model) initTable() {
	cols := columnsFor(40)
	m.titleWidth = cols[1].Width
	m.table = table.New(table.WithColumns(cols), table.WithFocused(true), table.WithHeight(20))
	m.applyStyles()
}

func (m *model) initSearch() {
	ti := textinput.New()
	ti.Prompt = "Search: "
	ti.Placeholder = "ctrl+k to search"
	ti.SetValue(m.opts.Search)
	m.search = ti
}

func columnsFor(listW int) []table.Column {
	dateW := 10
	pinW := 1
	titleW := max(8, listW-dateW-pinW-6) // cell padding
	return []table.Column{
		{Title: "", Width: pinW},
		{Title: "Title", Width: titleW},
		{Title: "Updated", Width: dateW},
	}
}

func (m *model) applyStyles() {
	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(true)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Bold(false)
	m.table.SetStyles(s)
}

// refresh re-runs the search and rebuilds the rows, keeping keepID
// selected when it is still visible.
func (m *model) refresh(keepID string) {
	if keepID == "" {
		if n, ok := m.selected(); ok {
			keepID = n.ID
		}
	}
	m.visible = m.opts.Store.List(api.ListQuery{Search: m.search.Value(), Fuzzy: m.opts.Fuzzy})
	titleW := m.titleWidth
	rows := make([]table.Row, 0, len(m.visible))
	for _, n := range m.visible {
		rows = append(rows, table.Row{pinMark(n.Pinned), truncate(n.DisplayTitle(), titleW), n.Date()})
	}
	m.table.SetRows(rows)
	m.selectID(keepID)
}

func (m *model) selectID(id string) {
	cur := 0
	for i, n := range m.visible {
		if n.ID == id {
			cur = i
			break
		}
	}
	m.table.SetCursor(cur)
}

func (m model) selected() (api.Note, bool) {
	i := m.table.Cursor()
	if i < 0 || i >= len(m.visible) {
		return api.Note{}, false
	}
	return m.visible[i], true
}

func (m *model) renderPreview() {
	n, ok := m.selected()
	if !ok {
		m.preview.setNote(nil, m.opts.Renderer, m.theme == prefs.Dark)
		return
	}
	_ = m.opts.Store.Select(n.ID)
	m.preview.setNote(&n, m.opts.Renderer, m.theme == prefs.Dark)
}

// schedulePreview starts a debounce window; only the last one renders.
func (m *model) schedulePreview() tea.Cmd {
	m.previewSeq++
	return previewTick(m.previewSeq, m.opts.Debounce)
}

func (m model) narrow() bool {
	return m.width > 0 && m.width < narrowWidth
}

func (m *model) applyLayout() {
	if m.width <= 0 || m.height <= 0 {
		return
	}
	bodyH := max(5, m.height-3) // search line, footer, spacing
	listW := m.width
	previewW := m.width
	if !m.narrow() {
		listW = max(30, m.width*2/5)
		previewW = m.width - listW - 1
	}
	cols := columnsFor(listW)
	m.titleWidth = cols[1].Width
	m.table.SetColumns(cols)
	m.table.SetWidth(listW)
	m.table.SetHeight(bodyH - 2) // header row and its border
	m.search.Width = max(10, m.width-lipgloss.Width(m.search.Prompt)-1)
	m.preview.resize(previewW, bodyH)
}

func (m model) Init() tea.Cmd {
	if m.focus == focusSearch {
		return textinput.Blink
	}
	return nil
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.applyLayout()
		m.refresh("")
		m.renderPreview()
		return m, nil
	case previewTickMsg:
		if msg.seq == m.previewSeq {
			m.renderPreview()
		}
		return m, nil
	case editDoneMsg:
		m.finishEdit(msg)
		return m, nil
	case tea.KeyMsg:
		if m.confirm != nil {
			return m.updateConfirm(msg)
		}
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
		switch m.focus {
		case focusSearch:
			return m.updateSearch(msg)
		case focusPreview:
			return m.updatePreview(msg)
		}
		return m.updateList(msg)
	}
	return m, nil
}

func (m model) updateList(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "esc", "ctrl+q":
		return m, tea.Quit
	case "ctrl+k", "/":
		m.focus = focusSearch
		m.table.Blur()
		return m, m.search.Focus()
	case "n", "ctrl+n":
		n := m.opts.Store.Create(m.ctx, "", "")
		m.refresh(n.ID)
		m.renderPreview()
		return m, editCmd(n)
	case "enter", "e":
		if n, ok := m.selected(); ok {
			return m, editCmd(n)
		}
		return m, nil
	case "p":
		if n, ok := m.selected(); ok {
			updated, err := m.opts.Store.TogglePin(m.ctx, n.ID)
			if err != nil {
				m.status = err.Error()
				return m, nil
			}
			m.status = "Unpinned"
			if updated.Pinned {
				m.status = "Pinned"
			}
			m.refresh(n.ID)
			m.renderPreview()
		}
		return m, nil
	case "d":
		if n, ok := m.selected(); ok {
			m.confirm = newConfirmModal(n, m.width)
		}
		return m, nil
	case "t":
		theme, err := m.opts.Themes.Toggle(m.ctx)
		m.theme = theme
		if err != nil {
			m.opts.Logger.Warn("theme not saved", logging.FieldTheme, theme, logging.FieldError, err)
		}
		m.status = fmt.Sprintf("Theme: %s", theme)
		m.renderPreview()
		return m, nil
	case "tab":
		// narrow terminals show one pane at a time
		m.showPreview = m.narrow()
		m.focus = focusPreview
		m.preview.focused = true
		m.table.Blur()
		return m, nil
	}

	before := m.table.Cursor()
	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	if m.table.Cursor() != before {
		return m, tea.Batch(cmd, m.schedulePreview())
	}
	return m, cmd
}

func (m model) updatePreview(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+q":
		return m, tea.Quit
	case "tab", "esc":
		m.focus = focusList
		m.preview.focused = false
		m.showPreview = false
		m.table.Focus()
		return m, nil
	}
	return m, m.preview.update(msg)
}

func (m model) updateSearch(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc", "enter", "ctrl+k", "tab":
		m.focus = focusList
		m.search.Blur()
		m.table.Focus()
		return m, nil
	}
	before := m.search.Value()
	var cmd tea.Cmd
	m.search, cmd = m.search.Update(msg)
	if m.search.Value() != before {
		m.refresh("")
		return m, tea.Batch(cmd, m.schedulePreview())
	}
	return m, cmd
}

func (m model) updateConfirm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "y", "Y":
		id := m.confirm.note.ID
		m.confirm = nil
		if err := m.opts.Store.Delete(m.ctx, id); err != nil {
			m.status = err.Error()
			return m, nil
		}
		m.status = "Deleted"
		next := ""
		if cur, ok := m.opts.Store.Current(); ok {
			next = cur.ID
		}
		m.refresh(next)
		m.renderPreview()
	case "n", "N", "esc", "q":
		m.confirm = nil
		m.status = "Kept"
	case "ctrl+c":
		return m, tea.Quit
	}
	return m, nil
}

func (m *model) finishEdit(msg editDoneMsg) {
	if msg.err != nil {
		m.opts.Logger.Warn("editor failed", logging.FieldNoteID, msg.id, logging.FieldError, msg.err)
		m.status = fmt.Sprintf("Editor failed: %v", msg.err)
		return
	}
	if !msg.changed {
		m.status = "No changes"
		return
	}
	title, body := editor.ParseEditedNote(string(msg.final))
	if m.opts.DeleteEmpty && title == "" && body == "" {
		if err := m.opts.Store.Delete(m.ctx, msg.id); err != nil {
			m.status = err.Error()
			return
		}
		m.status = "Empty note deleted"
		m.refresh("")
		m.renderPreview()
		return
	}
	if _, err := m.opts.Store.Update(m.ctx, msg.id, api.Patch{Title: &title, Content: &body}); err != nil {
		m.status = err.Error()
		return
	}
	m.status = "Saved"
	m.refresh(msg.id)
	m.renderPreview()
}

func (m model) renderFooter() string {
	left := "↑/↓ move • ctrl+k search • n new • e edit • p pin • d delete • t theme • tab pane • q quit"
	right := fmt.Sprintf("%d notes ", len(m.visible))
	if m.status != "" {
		right = m.status + " • " + right
	}
	width := m.width
	if width <= 0 {
		width = 80
	}
	left = truncate(left, max(0, width-lipgloss.Width(right)-1))
	space := max(1, width-lipgloss.Width(left)-lipgloss.Width(right))
	return lipgloss.NewStyle().Faint(true).Render(left) + strings.Repeat(" ", space) + right
}

func (m model) View() string {
	if m.confirm != nil {
		return m.renderOverlay(m.confirm.View())
	}
	var body string
	switch {
	case m.narrow() && m.showPreview:
		body = m.preview.View()
	case m.narrow():
		body = m.listView()
	default:
		body = lipgloss.JoinHorizontal(lipgloss.Top, m.listView(), " ", m.preview.View())
	}
	return m.search.View() + "\n" + body + "\n" + m.renderFooter()
}

func (m model) listView() string {
	if len(m.visible) == 0 {
		msg := "(no notes)"
		if strings.TrimSpace(m.search.Value()) != "" {
			msg = "(no matches)"
		}
		return lipgloss.NewStyle().Width(m.table.Width()).Faint(true).Render(msg)
	}
	return m.table.View()
}
