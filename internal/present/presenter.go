// Package present writes notes to a terminal or pipe in the requested mode.
package present

import (
	"errors"
	"fmt"
	"io"

	"github.com/mithrel/mdnotes/internal/markup"
	"github.com/mithrel/mdnotes/internal/present/format"
	"github.com/mithrel/mdnotes/internal/prefs"
	"github.com/mithrel/mdnotes/pkg/api"
)

type Mode int

const (
	ModePlain Mode = iota
	ModePretty
	ModeJSON
	ModeNDJSON
	ModeHTML
	ModeTUI
)

// ErrInteractive is returned for ModeTUI; the caller starts the browser instead.
var ErrInteractive = errors.New("tui output is interactive")

type Options struct {
	Mode       Mode
	JSONIndent bool
	Headers    bool
	Theme      prefs.Theme
	Width      int
	Renderer   markup.Renderer
}

var modeNames = map[string]Mode{
	"plain":  ModePlain,
	"pretty": ModePretty,
	"json":   ModeJSON,
	"ndjson": ModeNDJSON,
	"html":   ModeHTML,
	"tui":    ModeTUI,
}

// ParseMode parses a string like "plain", "pretty", "json", "ndjson", "html", "tui".
func ParseMode(s string) (Mode, bool) {
	m, ok := modeNames[s]
	if !ok {
		return ModePlain, false
	}
	return m, true
}

func (m Mode) String() string {
	for k, v := range modeNames {
		if v == m {
			return k
		}
	}
	return fmt.Sprintf("Mode(%d)", int(m))
}

// ModeNames lists the accepted mode strings, for flag help and completion.
func ModeNames() []string {
	return []string{"plain", "pretty", "json", "ndjson", "html", "tui"}
}

// RenderNotes renders a list of notes according to options.
func RenderNotes(w io.Writer, notes []api.Note, opts Options) error {
	switch opts.Mode {
	case ModeJSON:
		return format.WriteJSONNotes(w, notes, opts.JSONIndent)
	case ModeNDJSON:
		return format.WriteNDJSONNotes(w, notes)
	case ModeTUI:
		return ErrInteractive
	case ModeHTML:
		for _, n := range notes {
			if err := format.WriteHTMLNote(w, n, opts.Renderer); err != nil {
				return err
			}
		}
		return nil
	default:
		// pretty has no list layout of its own
		return format.WritePlainNotes(w, notes, opts.Headers)
	}
}

// RenderNote renders a single note according to options.
func RenderNote(w io.Writer, n api.Note, opts Options) error {
	switch opts.Mode {
	case ModeJSON:
		return format.WriteJSONNote(w, n, opts.JSONIndent)
	case ModeNDJSON:
		return format.WriteNDJSONNotes(w, []api.Note{n})
	case ModePretty:
		return format.WritePrettyNote(w, n, opts.Theme == prefs.Dark, opts.Width)
	case ModeHTML:
		return format.WriteHTMLNote(w, n, opts.Renderer)
	case ModeTUI:
		return ErrInteractive
	default:
		return format.WritePlainNote(w, n)
	}
}
