package format

import (
	"io"

	"github.com/mithrel/mdnotes/internal/markup"
	"github.com/mithrel/mdnotes/pkg/api"
)

// WriteHTMLNote writes the note content as a safe HTML fragment.
func WriteHTMLNote(w io.Writer, n api.Note, r markup.Renderer) error {
	if err := markup.WriteHTML(w, r.Parse(n.Content)); err != nil {
		return err
	}
	_, err := io.WriteString(w, "\n")
	return err
}
