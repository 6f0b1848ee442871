// Package tui is the interactive note browser: a note table with live
// search, a rendered preview and editing through $EDITOR.
package tui

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/mithrel/mdnotes/internal/logging"
	"github.com/mithrel/mdnotes/internal/markup"
	"github.com/mithrel/mdnotes/internal/notes"
	"github.com/mithrel/mdnotes/internal/prefs"
)

// DefaultDebounce delays preview rendering after the selection or search changes.
const DefaultDebounce = 150 * time.Millisecond

// narrowWidth is the terminal width under which list and preview share the screen.
const narrowWidth = 80

type Options struct {
	Store       *notes.Store
	Themes      prefs.Themes
	Renderer    markup.Renderer
	Debounce    time.Duration
	Fuzzy       bool
	DeleteEmpty bool
	Search      string
	Logger      *log.Logger
}

// Browse runs the browser until the user quits.
func Browse(ctx context.Context, opts Options) error {
	m := newModel(ctx, opts)
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx))
	_, err := p.Run()
	return err
}

func newModel(ctx context.Context, opts Options) model {
	if opts.Debounce <= 0 {
		opts.Debounce = DefaultDebounce
	}
	if opts.Logger == nil {
		opts.Logger = logging.FromContext(ctx)
	}
	theme, err := opts.Themes.Load(ctx)
	if err != nil {
		opts.Logger.Warn("theme unavailable", logging.FieldError, err)
	}
	m := model{
		ctx:   ctx,
		opts:  opts,
		theme: theme,
	}
	m.initTable()
	m.initSearch()
	m.preview = newPreview(80, 24)
	m.refresh("")
	if cur, ok := opts.Store.Current(); ok {
		m.selectID(cur.ID)
	}
	m.renderPreview()
	return m
}
