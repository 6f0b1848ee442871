package cli

import (
	"bytes"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mithrel/mdnotes/internal/config"
	"github.com/mithrel/mdnotes/internal/exchange"
	"github.com/mithrel/mdnotes/internal/notes"
	"github.com/mithrel/mdnotes/pkg/api"
)

// isolate points config, data and scratch dirs at a temp dir and selects
// a fresh sqlite database.
func isolate(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Chdir(dir)
	t.Setenv("HOME", dir)
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(dir, "config"))
	t.Setenv("XDG_DATA_HOME", filepath.Join(dir, "data"))
	t.Setenv("XDG_RUNTIME_DIR", filepath.Join(dir, "run"))
	t.Setenv("MDNOTES_STORAGE_DSN", "sqlite://"+filepath.Join(dir, "notes.db"))
	t.Setenv("MDNOTES_SEED_WELCOME", "false")
	t.Setenv("PAGER", "cat")
	return dir
}

func run(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	root := NewRootCmd()
	var out, errOut bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&errOut)
	root.SetIn(strings.NewReader(stdin))
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

func mustRun(t *testing.T, args ...string) string {
	t.Helper()
	out, err := run(t, "", args...)
	if err != nil {
		t.Fatalf("%v: %v\n%s", args, err, out)
	}
	return out
}

// newNote creates a note and returns its id.
func newNote(t *testing.T, title, content string) string {
	t.Helper()
	out := mustRun(t, "note", "new", title, "--content", content)
	id, rest, ok := strings.Cut(strings.TrimSpace(out), "\t")
	if !ok || id == "" {
		t.Fatalf("unexpected new output: %q", out)
	}
	if rest != title {
		t.Fatalf("title = %q, want %q", rest, title)
	}
	return id
}

// fakeEditor installs a $VISUAL script that overwrites the edited file.
func fakeEditor(t *testing.T, dir, content string) {
	t.Helper()
	body := filepath.Join(dir, "edited.txt")
	require.NoError(t, os.WriteFile(body, []byte(content), 0o600))
	script := filepath.Join(dir, "fake-editor.sh")
	require.NoError(t, os.WriteFile(script, []byte("#!/bin/sh\ncat '"+body+"' > \"$1\"\n"), 0o700))
	t.Setenv("VISUAL", script)
}

func TestNoteLifecycle(t *testing.T) {
	isolate(t)
	id := newNote(t, "Groceries", "- milk\n- **eggs**")

	var listed []api.Note
	out := mustRun(t, "note", "list", "-o", "json")
	require.NoError(t, json.Unmarshal([]byte(out), &listed))
	require.Len(t, listed, 1)
	assert.Equal(t, id, listed[0].ID)

	out = mustRun(t, "note", "show", id[:8], "-o", "html")
	assert.Equal(t, "<ul><li>milk</li><li><strong>eggs</strong></li></ul>\n", out)

	out = mustRun(t, "note", "pin", id)
	assert.Equal(t, id+"\tpinned\n", out)

	out = mustRun(t, "note", "show", id)
	assert.True(t, strings.HasPrefix(out, "Groceries (pinned)\n"), out)

	out = mustRun(t, "note", "delete", id, "--yes")
	assert.Contains(t, out, "deleted successfully")

	_, err := run(t, "", "note", "show", id)
	assert.ErrorIs(t, err, notes.ErrNotFound)
}

func TestNoteListOrderingAndSearch(t *testing.T) {
	isolate(t)
	older := newNote(t, "Garden", "tomatoes")
	newNote(t, "Groceries list", "milk")
	mustRun(t, "note", "pin", older)

	out := mustRun(t, "note", "list", "--noheaders")
	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 2)
	assert.True(t, strings.HasPrefix(lines[0], older), "pinned note first")

	out = mustRun(t, "note", "list", "-s", "MILK", "-o", "ndjson")
	assert.Equal(t, 1, strings.Count(out, "\n"))
	assert.Contains(t, out, "Groceries list")

	out = mustRun(t, "note", "list", "-s", "grcr", "--fuzzy", "-o", "ndjson")
	assert.Equal(t, 1, strings.Count(out, "\n"))
	assert.Contains(t, out, "Groceries list")

	out = mustRun(t, "note", "list", "--limit", "1", "--noheaders")
	assert.Equal(t, 1, strings.Count(out, "\n"))

	_, err := run(t, "", "note", "list", "-o", "xml")
	assert.Error(t, err)
	_, err = run(t, "", "note", "list", "--since", "yesterday-ish")
	assert.Error(t, err)
}

func TestNoteNewAndEditThroughEditor(t *testing.T) {
	dir := isolate(t)

	fakeEditor(t, dir, "Title: From editor\n---\nbody text\n")
	out := mustRun(t, "note", "new")
	id, title, _ := strings.Cut(strings.TrimSpace(out), "\t")
	assert.Equal(t, "From editor", title)

	fakeEditor(t, dir, "Title: Edited\n---\n*new* body\n")
	mustRun(t, "note", "edit", id)

	var n api.Note
	require.NoError(t, json.Unmarshal([]byte(mustRun(t, "note", "show", id, "-o", "json")), &n))
	assert.Equal(t, "Edited", n.Title)
	assert.Equal(t, "*new* body", n.Content)
}

func TestNoteNewEmptyEditorDeletes(t *testing.T) {
	dir := isolate(t)
	fakeEditor(t, dir, "Title: \n---\n\n")
	out := mustRun(t, "note", "new")
	assert.Contains(t, out, "Note aborted")

	out = mustRun(t, "note", "list", "-o", "json")
	assert.Equal(t, "[]\n", out)
}

func TestRenderCommand(t *testing.T) {
	isolate(t)
	out, err := run(t, "# Hi\n\nsee [docs](https://example.com)", "render")
	require.NoError(t, err)
	assert.Equal(t, "<h1>Hi</h1>\n<p>see <a href=\"https://example.com\" target=\"_blank\" rel=\"noopener\">docs</a></p>\n", out)

	out, err = run(t, "# Hi", "render", "-", "--format", "tree")
	require.NoError(t, err)
	assert.Equal(t, "Document\n  Heading level=1\n    Text \"Hi\"\n", out)

	out, err = run(t, "- a", "render", "--format", "term")
	require.NoError(t, err)
	assert.Contains(t, out, "• a")

	_, err = run(t, "x", "render", "--format", "pdf")
	assert.Error(t, err)
}

func TestExportImportRoundTrip(t *testing.T) {
	dir := isolate(t)
	id := newNote(t, "Keep me", "body")
	path := filepath.Join(dir, "backup.yaml")

	out := mustRun(t, "export", "-o", path)
	assert.Contains(t, out, "Exported 1 notes")
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "title: Keep me")

	newNote(t, "Temporary", "")
	out = mustRun(t, "import", "-f", path)
	assert.Equal(t, "Imported: 1\nUnchanged: 1\n", out)

	var listed []api.Note
	require.NoError(t, json.Unmarshal([]byte(mustRun(t, "note", "list", "-o", "json")), &listed))
	require.Len(t, listed, 1)
	assert.Equal(t, id, listed[0].ID)
}

func TestImportRejectsBadFileWithoutChanges(t *testing.T) {
	dir := isolate(t)
	newNote(t, "Survivor", "")
	bad := filepath.Join(dir, "bad.json")
	require.NoError(t, os.WriteFile(bad, []byte(`{"id":"x"}`), 0o600))

	_, err := run(t, "", "import", "-f", bad)
	require.Error(t, err)
	assert.True(t, errors.Is(err, exchange.ErrInvalidFormat), err.Error())

	out := mustRun(t, "note", "list", "--noheaders")
	assert.Contains(t, out, "Survivor")
}

func TestThemeCommand(t *testing.T) {
	isolate(t)
	assert.Equal(t, "light\n", mustRun(t, "theme"))
	assert.Equal(t, "dark\n", mustRun(t, "theme", "toggle"))
	assert.Equal(t, "dark\n", mustRun(t, "theme"))
	assert.Equal(t, "light\n", mustRun(t, "theme", "light"))
	_, err := run(t, "", "theme", "blue")
	assert.Error(t, err)
}

func TestConfigGenerate(t *testing.T) {
	dir := isolate(t)
	path := filepath.Join(dir, "cfg", "config.toml")

	out := mustRun(t, "config", "generate", "-o", path)
	assert.Contains(t, out, "Wrote "+path)
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "[serve]")

	_, err = run(t, "", "config", "generate", "-o", path)
	assert.Error(t, err)

	out = mustRun(t, "config", "generate", "-o", path, "--update")
	assert.Contains(t, out, "already up to date")
}

func TestInvalidConfigIsReported(t *testing.T) {
	isolate(t)
	_, err := run(t, "", "--log-level", "loud", "note", "list")
	assert.ErrorIs(t, err, config.ErrInvalid)
}

func TestCompleteNoteIDs(t *testing.T) {
	isolate(t)
	id := newNote(t, "Groceries", "")
	newNote(t, "Garden", "")

	out := mustRun(t, "__complete", "note", "show", id)
	assert.Contains(t, out, id+"\tGroceries")
	assert.NotContains(t, out, "Garden")

	out = mustRun(t, "__complete", "note", "show", "grc")
	assert.Contains(t, out, id+"\tGroceries")
}
