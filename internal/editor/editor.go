// Package editor round-trips a note through the user's $VISUAL/$EDITOR.
package editor

import (
	"bytes"
	"errors"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
)

const (
	TitlePrefix = "Title: "
	Separator   = "---"
)

// ComposeContent creates the text presented to the editor.
func ComposeContent(title, body string) string {
	var b bytes.Buffer
	b.WriteString("# mdnotes note\n")
	b.WriteString("# Lines starting with '#' above the '---' line are ignored.\n")
	b.WriteString(TitlePrefix)
	b.WriteString(title)
	b.WriteString("\n" + Separator + "\n")
	if body != "" {
		if !strings.HasSuffix(body, "\n") {
			body += "\n"
		}
		b.WriteString(body)
	}
	return b.String()
}

// ParseEditedNote extracts title and body from the editor output.
// Without a '---' line the whole text after the header is the body.
func ParseEditedNote(s string) (title, body string) {
	s = strings.ReplaceAll(s, "\r\n", "\n")
	lines := strings.Split(s, "\n")
	prefix := strings.TrimSpace(TitlePrefix)

	start := len(lines)
	for i, line := range lines {
		trim := strings.TrimSpace(line)
		if trim == Separator {
			start = i + 1
			break
		}
		if strings.HasPrefix(trim, "#") {
			continue
		}
		if rest, ok := strings.CutPrefix(line, prefix); ok {
			title = strings.TrimSpace(rest)
			continue
		}
		if trim != "" {
			// no header at all; treat everything as body
			start = i
			break
		}
	}
	if start > len(lines) {
		start = len(lines)
	}
	bodyLines := lines[start:]
	for len(bodyLines) > 0 && strings.TrimSpace(bodyLines[0]) == "" {
		bodyLines = bodyLines[1:]
	}
	body = strings.TrimRight(strings.Join(bodyLines, "\n"), " \t\n")
	return title, body
}

// PreferredEditor finds a suitable editor from env or common defaults.
func PreferredEditor() (string, error) {
	if v := os.Getenv("VISUAL"); v != "" {
		return v, nil
	}
	if e := os.Getenv("EDITOR"); e != "" {
		return e, nil
	}
	for _, cand := range []string{"nvim", "vim", "vi", "nano"} {
		if p, err := exec.LookPath(cand); err == nil {
			return p, nil
		}
	}
	return "", errors.New("no editor found; set $EDITOR or $VISUAL")
}

// PathForID returns the scratch file path used to edit a note.
func PathForID(id string) (string, error) {
	name := sanitize(id) + ".mdnotes.md"
	if xdg := os.Getenv("XDG_RUNTIME_DIR"); xdg != "" {
		return filepath.Join(xdg, "mdnotes", name), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".cache", "mdnotes", "edit", name), nil
}

func sanitize(s string) string {
	return strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-':
			return r
		}
		return '_'
	}, strings.TrimSpace(s))
}

// Prepare writes the initial content to path with owner-only permissions.
func Prepare(path string, initial []byte) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return err
	}
	return os.WriteFile(path, initial, 0o600)
}

// Command builds the editor process for path without starting it.
// VISUAL/EDITOR may carry flags, so they run through sh.
func Command(path string) (*exec.Cmd, error) {
	ed := os.Getenv("VISUAL")
	if ed == "" {
		ed = os.Getenv("EDITOR")
	}
	if strings.TrimSpace(ed) != "" {
		cmd := exec.Command("sh", "-c", "$EDITORCMD \"$FILEPATH\"")
		cmd.Env = append(os.Environ(), "EDITORCMD="+ed, "FILEPATH="+path)
		return cmd, nil
	}
	prog, err := PreferredEditor()
	if err != nil {
		return nil, err
	}
	return exec.Command(prog, path), nil
}

// Result reads the edited file back and reports whether it changed.
func Result(path string, initial []byte) (final []byte, changed bool, err error) {
	out, err := os.ReadFile(path)
	if err != nil {
		return nil, false, err
	}
	return out, !bytes.Equal(out, initial), nil
}

// OpenAt runs the editor on path, attached to the terminal, and returns
// the final bytes and whether they changed.
func OpenAt(path string, initial []byte) (final []byte, changed bool, err error) {
	if err := Prepare(path, initial); err != nil {
		return nil, false, err
	}
	defer os.Remove(path)
	cmd, err := Command(path)
	if err != nil {
		return nil, false, err
	}
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		return nil, false, err
	}
	return Result(path, initial)
}

// FirstLine returns the first non-blank line, squashed and cut to 120 runes.
func FirstLine(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return ""
	}
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		s = s[:i]
	}
	s = strings.Join(strings.Fields(s), " ")
	if r := []rune(s); len(r) > 120 {
		s = string(r[:120])
	}
	return s
}
