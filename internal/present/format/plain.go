package format

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/mithrel/mdnotes/pkg/api"
)

var headerLine = "ID\tTITLE\tDATE\tPINNED\n"

func esc(field string) string {
	field = strings.ReplaceAll(field, "\t", "\\t")
	field = strings.ReplaceAll(field, "\n", "\\n")
	return field
}

func pinMark(n api.Note) string {
	if n.Pinned {
		return "yes"
	}
	return ""
}

// WritePlainNotes writes one tab-aligned row per note.
func WritePlainNotes(w io.Writer, notes []api.Note, headers bool) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	if headers {
		_, _ = io.WriteString(tw, headerLine)
	}
	for _, n := range notes {
		_, _ = fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", esc(n.ID), esc(n.DisplayTitle()), n.Date(), pinMark(n))
	}
	return tw.Flush()
}

// WritePlainNote writes a short header followed by the raw content.
func WritePlainNote(w io.Writer, n api.Note) error {
	pinned := ""
	if n.Pinned {
		pinned = " (pinned)"
	}
	_, err := fmt.Fprintf(w, "%s%s\n%s  %s\n\n%s\n", n.DisplayTitle(), pinned, n.ID, n.Date(), strings.TrimRight(n.Content, "\n"))
	return err
}
