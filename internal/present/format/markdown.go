package format

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/glamour"

	"github.com/mithrel/mdnotes/pkg/api"
)

// WritePrettyNote renders a note as Markdown through glamour.
// dark selects the style matching the saved theme.
func WritePrettyNote(w io.Writer, n api.Note, dark bool, width int) error {
	pin := ""
	if n.Pinned {
		pin = " | **Pinned**"
	}
	md := fmt.Sprintf(`# %s

> **ID:** %s | **Updated:** %s%s

---

%s
`, n.DisplayTitle(), n.ID, n.Date(), pin, strings.TrimSpace(n.Content))

	style := "light"
	if dark {
		style = "dracula"
	}
	if width <= 0 {
		width = 80
	}
	r, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle(style),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return fmt.Errorf("failed to create renderer: %w", err)
	}

	out, err := r.Render(md)
	if err != nil {
		return fmt.Errorf("failed to render markdown: %w", err)
	}

	_, err = io.WriteString(w, out)
	return err
}
