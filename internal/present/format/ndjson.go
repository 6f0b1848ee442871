package format

import (
	"encoding/json"
	"io"

	"github.com/mithrel/mdnotes/pkg/api"
)

// WriteNDJSONNotes writes notes as newline-delimited JSON objects.
func WriteNDJSONNotes(w io.Writer, notes []api.Note) error {
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	for _, n := range notes {
		if err := enc.Encode(n); err != nil {
			return err
		}
	}
	return nil
}
