package api

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// UntitledLabel is shown for notes with a blank title.
const UntitledLabel = "(Untitled)"

// Note is a single stored note.
type Note struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	Pinned    bool      `json:"pinned"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// DisplayTitle returns the title, or UntitledLabel when it is blank.
func (n Note) DisplayTitle() string {
	if t := strings.TrimSpace(n.Title); t != "" {
		return t
	}
	return UntitledLabel
}

// Date formats UpdatedAt as YYYY-MM-DD in UTC.
func (n Note) Date() string {
	if n.UpdatedAt.IsZero() {
		return ""
	}
	return n.UpdatedAt.UTC().Format(time.DateOnly)
}

type noteJSON struct {
	ID        string          `json:"id"`
	Title     string          `json:"title"`
	Content   string          `json:"content"`
	Pinned    bool            `json:"pinned"`
	UpdatedAt json.RawMessage `json:"updatedAt,omitempty"`
}

// MarshalJSON encodes UpdatedAt as Unix milliseconds.
func (n Note) MarshalJSON() ([]byte, error) {
	var ms int64
	if !n.UpdatedAt.IsZero() {
		ms = n.UpdatedAt.UnixMilli()
	}
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	// note text is not HTML; keep <, > and & readable in exports
	enc.SetEscapeHTML(false)
	err := enc.Encode(struct {
		ID        string `json:"id"`
		Title     string `json:"title"`
		Content   string `json:"content"`
		Pinned    bool   `json:"pinned"`
		UpdatedAt int64  `json:"updatedAt"`
	}{n.ID, n.Title, n.Content, n.Pinned, ms})
	return bytes.TrimSuffix(buf.Bytes(), []byte("\n")), err
}

// UnmarshalJSON accepts updatedAt as Unix milliseconds or an RFC 3339 string.
func (n *Note) UnmarshalJSON(data []byte) error {
	var raw noteJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	ts, err := ParseTimestamp(raw.UpdatedAt)
	if err != nil {
		return fmt.Errorf("note %q: %w", raw.ID, err)
	}
	*n = Note{ID: raw.ID, Title: raw.Title, Content: raw.Content, Pinned: raw.Pinned, UpdatedAt: ts}
	return nil
}

// ParseTimestamp decodes a JSON timestamp: a number of Unix milliseconds,
// an RFC 3339 string, or null/absent for the zero time.
func ParseTimestamp(raw json.RawMessage) (time.Time, error) {
	s := strings.TrimSpace(string(raw))
	if s == "" || s == "null" {
		return time.Time{}, nil
	}
	if s[0] == '"' {
		var str string
		if err := json.Unmarshal(raw, &str); err != nil {
			return time.Time{}, err
		}
		if str == "" {
			return time.Time{}, nil
		}
		t, err := time.Parse(time.RFC3339Nano, str)
		if err != nil {
			return time.Time{}, fmt.Errorf("invalid updatedAt %q", str)
		}
		return t.UTC(), nil
	}
	var ms json.Number
	if err := json.Unmarshal(raw, &ms); err != nil {
		return time.Time{}, err
	}
	v, err := ms.Int64()
	if err != nil {
		f, ferr := ms.Float64()
		if ferr != nil {
			return time.Time{}, fmt.Errorf("invalid updatedAt %s", s)
		}
		v = int64(f)
	}
	if v == 0 {
		return time.Time{}, nil
	}
	return time.UnixMilli(v).UTC(), nil
}

// ListQuery filters and limits a note listing.
// Zero Since/Until leave that side of the UpdatedAt range open.
type ListQuery struct {
	Search string
	Fuzzy  bool
	Since  time.Time
	Until  time.Time
	Limit  int
}

// Patch carries the fields of an update. Nil fields are left unchanged.
type Patch struct {
	Title   *string
	Content *string
}

// Empty reports whether the patch changes nothing.
func (p Patch) Empty() bool {
	return p.Title == nil && p.Content == nil
}
