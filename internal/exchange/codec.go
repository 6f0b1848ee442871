package exchange

import (
	"bufio"
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/mithrel/mdnotes/pkg/api"
)

// Encode writes notes in storage order. JSON is indented by two spaces.
func Encode(w io.Writer, notes []api.Note, f Format) error {
	if notes == nil {
		notes = []api.Note{}
	}
	switch f {
	case JSON, "":
		enc := json.NewEncoder(w)
		enc.SetEscapeHTML(false)
		enc.SetIndent("", "  ")
		return enc.Encode(notes)
	case NDJSON:
		enc := json.NewEncoder(w)
		enc.SetEscapeHTML(false)
		for _, n := range notes {
			if err := enc.Encode(n); err != nil {
				return err
			}
		}
		return nil
	case YAML:
		out := make([]yamlRecord, len(notes))
		for i, n := range notes {
			out[i] = yamlRecord{ID: n.ID, Title: n.Title, Content: n.Content, Pinned: n.Pinned}
			if !n.UpdatedAt.IsZero() {
				out[i].UpdatedAt = n.UpdatedAt.UnixMilli()
			}
		}
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(out); err != nil {
			return err
		}
		return enc.Close()
	}
	return fmt.Errorf("unknown format %q", f)
}

// Decode reads a whole collection. JSON input must be an array and YAML
// input a sequence; otherwise the error wraps ErrInvalidFormat. Input that
// is not well-formed wraps ErrParse. Every record needs a unique non-empty
// id. Records without updatedAt get now.
func Decode(r io.Reader, f Format, now time.Time) ([]api.Note, error) {
	var (
		notes []api.Note
		err   error
	)
	switch f {
	case JSON, "":
		notes, err = decodeJSON(r)
	case NDJSON:
		notes, err = decodeNDJSON(r)
	case YAML:
		notes, err = decodeYAML(r)
	default:
		return nil, fmt.Errorf("unknown format %q", f)
	}
	if err != nil {
		return nil, err
	}
	return normalize(notes, now)
}

func decodeJSON(r io.Reader) ([]api.Note, error) {
	br := bufio.NewReader(r)
	first, err := peekFirstNonSpace(br)
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("%w: empty input", ErrInvalidFormat)
		}
		return nil, err
	}
	if first != '[' {
		return nil, fmt.Errorf("%w: expected an array of notes", ErrInvalidFormat)
	}
	var notes []api.Note
	dec := json.NewDecoder(br)
	if err := dec.Decode(&notes); err != nil {
		return nil, classifyJSON(err)
	}
	// the array must be the whole document
	if err := dec.Decode(&struct{}{}); !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("%w: trailing data after the array", ErrParse)
	}
	return notes, nil
}

func decodeNDJSON(r io.Reader) ([]api.Note, error) {
	dec := json.NewDecoder(r)
	var notes []api.Note
	for {
		var n api.Note
		err := dec.Decode(&n)
		if errors.Is(err, io.EOF) {
			return notes, nil
		}
		if err != nil {
			return nil, classifyJSON(err)
		}
		notes = append(notes, n)
	}
}

func classifyJSON(err error) error {
	var syntax *json.SyntaxError
	if errors.As(err, &syntax) || errors.Is(err, io.ErrUnexpectedEOF) {
		return fmt.Errorf("%w: %v", ErrParse, err)
	}
	return fmt.Errorf("%w: %v", ErrInvalidFormat, err)
}

// peekFirstNonSpace returns the first non-whitespace byte without consuming it.
func peekFirstNonSpace(br *bufio.Reader) (byte, error) {
	for {
		b, err := br.Peek(1)
		if err != nil {
			return 0, err
		}
		switch b[0] {
		case ' ', '\t', '\r', '\n', 0xEF, 0xBB, 0xBF:
			_, _ = br.ReadByte()
			continue
		}
		return b[0], nil
	}
}

type yamlRecord struct {
	ID        string `yaml:"id"`
	Title     string `yaml:"title"`
	Content   string `yaml:"content"`
	Pinned    bool   `yaml:"pinned"`
	UpdatedAt int64  `yaml:"updatedAt"`
}

type yamlInput struct {
	ID        string    `yaml:"id"`
	Title     string    `yaml:"title"`
	Content   string    `yaml:"content"`
	Pinned    bool      `yaml:"pinned"`
	UpdatedAt yaml.Node `yaml:"updatedAt"`
}

func decodeYAML(r io.Reader) ([]api.Note, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, fmt.Errorf("%w: empty input", ErrInvalidFormat)
	}
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrParse, err)
	}
	if doc.Kind != yaml.DocumentNode || len(doc.Content) == 0 || doc.Content[0].Kind != yaml.SequenceNode {
		return nil, fmt.Errorf("%w: expected a list of notes", ErrInvalidFormat)
	}
	var in []yamlInput
	if err := doc.Content[0].Decode(&in); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidFormat, err)
	}
	notes := make([]api.Note, len(in))
	for i, rec := range in {
		ts, err := yamlTime(rec.UpdatedAt)
		if err != nil {
			return nil, fmt.Errorf("%w: note %q: %v", ErrInvalidFormat, rec.ID, err)
		}
		notes[i] = api.Note{ID: rec.ID, Title: rec.Title, Content: rec.Content, Pinned: rec.Pinned, UpdatedAt: ts}
	}
	return notes, nil
}

// yamlTime accepts Unix milliseconds or an RFC 3339 timestamp.
func yamlTime(n yaml.Node) (time.Time, error) {
	if n.Kind == 0 || n.ShortTag() == "!!null" {
		return time.Time{}, nil
	}
	if n.Kind != yaml.ScalarNode {
		return time.Time{}, fmt.Errorf("updatedAt must be a scalar")
	}
	v := strings.TrimSpace(n.Value)
	if ms, err := strconv.ParseInt(v, 10, 64); err == nil {
		if ms == 0 {
			return time.Time{}, nil
		}
		return time.UnixMilli(ms).UTC(), nil
	}
	t, err := time.Parse(time.RFC3339Nano, v)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid updatedAt %q", v)
	}
	return t.UTC(), nil
}

func normalize(notes []api.Note, now time.Time) ([]api.Note, error) {
	now = now.UTC().Truncate(time.Millisecond)
	seen := make(map[string]int, len(notes))
	for i := range notes {
		notes[i].ID = strings.TrimSpace(notes[i].ID)
		if notes[i].ID == "" {
			return nil, fmt.Errorf("%w: record %d has no id", ErrInvalidFormat, i+1)
		}
		if prev, ok := seen[notes[i].ID]; ok {
			return nil, fmt.Errorf("%w: %q (records %d and %d)", ErrDuplicateID, notes[i].ID, prev+1, i+1)
		}
		seen[notes[i].ID] = i
		if notes[i].UpdatedAt.IsZero() {
			notes[i].UpdatedAt = now
		}
	}
	if notes == nil {
		notes = []api.Note{}
	}
	return notes, nil
}
