package tui

import (
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/mithrel/mdnotes/internal/editor"
	"github.com/mithrel/mdnotes/pkg/api"
)

// previewTickMsg fires once the debounce delay has passed. Only the tick
// matching the latest seq renders; earlier ones are stale.
type previewTickMsg struct {
	seq int
}

// editDoneMsg conveys the outcome of an editor session back to Update.
type editDoneMsg struct {
	id      string
	final   []byte
	changed bool
	err     error
}

func previewTick(seq int, d time.Duration) tea.Cmd {
	return tea.Tick(d, func(time.Time) tea.Msg { return previewTickMsg{seq: seq} })
}

// editCmd suspends the program, runs the editor on a scratch copy of n and
// reports the edited text.
func editCmd(n api.Note) tea.Cmd {
	fail := func(err error) tea.Cmd {
		return func() tea.Msg { return editDoneMsg{id: n.ID, err: err} }
	}
	path, err := editor.PathForID(n.ID)
	if err != nil {
		return fail(err)
	}
	initial := []byte(editor.ComposeContent(n.Title, n.Content))
	if err := editor.Prepare(path, initial); err != nil {
		return fail(err)
	}
	c, err := editor.Command(path)
	if err != nil {
		_ = os.Remove(path)
		return fail(err)
	}
	return tea.ExecProcess(c, func(runErr error) tea.Msg {
		defer os.Remove(path)
		if runErr != nil {
			return editDoneMsg{id: n.ID, err: runErr}
		}
		final, changed, err := editor.Result(path, initial)
		return editDoneMsg{id: n.ID, final: final, changed: changed, err: err}
	})
}
