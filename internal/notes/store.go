// Package notes holds the note collection, the current selection and the
// rules for listing and editing notes. State lives in a Store value; its
// persistence backend is injected.
package notes

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"slices"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/charmbracelet/log"

	"github.com/mithrel/mdnotes/internal/db"
	"github.com/mithrel/mdnotes/internal/logging"
	"github.com/mithrel/mdnotes/internal/util"
	"github.com/mithrel/mdnotes/pkg/api"
)

const (
	// DefaultKey is the storage key of the note collection.
	DefaultKey = "mdnotes.notes.v1"

	// DefaultTitle is given to notes created without a title.
	DefaultTitle = "New note"
)

var (
	ErrNotFound  = errors.New("note not found")
	ErrAmbiguous = errors.New("ambiguous note id")
)

// Store is the in-memory note collection, kept in storage order (newest
// creations first) and written through to a db.KV after every mutation.
// A failed write is logged and otherwise ignored: memory stays authoritative.
type Store struct {
	mu      sync.RWMutex
	kv      db.KV
	key     string
	now     func() time.Time
	log     *log.Logger
	notes   []api.Note
	current string
}

type Option func(*Store)

// WithKey overrides the storage key.
func WithKey(key string) Option {
	return func(s *Store) {
		if key != "" {
			s.key = key
		}
	}
}

// WithClock sets the time source used for UpdatedAt.
func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

func WithLogger(l *log.Logger) Option {
	return func(s *Store) { s.log = l }
}

// New returns an empty store backed by kv. Call Load to read saved notes.
func New(kv db.KV, opts ...Option) *Store {
	s := &Store{kv: kv, key: DefaultKey, now: time.Now}
	for _, opt := range opts {
		opt(s)
	}
	if s.log == nil {
		s.log = logging.Default()
	}
	return s
}

// Key returns the storage key in use.
func (s *Store) Key() string { return s.key }

func (s *Store) stamp() time.Time {
	return s.now().UTC().Truncate(time.Millisecond)
}

// Load replaces the in-memory collection with the stored one. Missing or
// unreadable stored data yields an empty collection; only a backend
// failure is returned as an error. The first note becomes current.
func (s *Store) Load(ctx context.Context) error {
	raw, err := s.kv.Get(ctx, s.key)
	var loaded []api.Note
	switch {
	case errors.Is(err, db.ErrNotFound):
	case err != nil:
		return fmt.Errorf("load notes: %w", err)
	default:
		if err := json.Unmarshal([]byte(raw), &loaded); err != nil {
			s.log.Warn("stored notes are unreadable; starting empty", logging.FieldKey, s.key, logging.FieldError, err)
			loaded = nil
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.notes = loaded
	s.current = firstID(s.notes)
	return nil
}

// Seed inserts the welcome note when the collection is empty and reports
// whether it did.
func (s *Store) Seed(ctx context.Context) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.notes) > 0 {
		return false
	}
	n := api.Note{
		ID:        api.NewID(),
		Title:     WelcomeTitle,
		Content:   WelcomeContent,
		Pinned:    true,
		UpdatedAt: s.stamp(),
	}
	s.notes = []api.Note{n}
	s.current = n.ID
	s.persistLocked(ctx)
	return true
}

// Create adds a note at the front of the collection and selects it.
func (s *Store) Create(ctx context.Context, title, content string) api.Note {
	title = strings.TrimSpace(title)
	if title == "" {
		title = DefaultTitle
	}
	n := api.Note{ID: api.NewID(), Title: title, Content: content, UpdatedAt: s.stamp()}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.notes = slices.Insert(s.notes, 0, n)
	s.current = n.ID
	s.persistLocked(ctx)
	return n
}

// Update applies p to the note with id and bumps its UpdatedAt.
// The title is trimmed.
func (s *Store) Update(ctx context.Context, id string, p api.Patch) (api.Note, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.indexLocked(id)
	if i < 0 {
		return api.Note{}, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	n := s.notes[i]
	if p.Title != nil {
		n.Title = strings.TrimSpace(*p.Title)
	}
	if p.Content != nil {
		n.Content = *p.Content
	}
	n.UpdatedAt = s.stamp()
	s.notes[i] = n
	s.persistLocked(ctx)
	return n, nil
}

// TogglePin flips the pinned flag of the note with id.
func (s *Store) TogglePin(ctx context.Context, id string) (api.Note, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.indexLocked(id)
	if i < 0 {
		return api.Note{}, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	s.notes[i].Pinned = !s.notes[i].Pinned
	s.notes[i].UpdatedAt = s.stamp()
	s.persistLocked(ctx)
	return s.notes[i], nil
}

// Delete removes the note with id. The selection moves to the first
// remaining note.
func (s *Store) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.indexLocked(id)
	if i < 0 {
		return fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	s.notes = slices.Delete(s.notes, i, i+1)
	s.current = firstID(s.notes)
	s.persistLocked(ctx)
	return nil
}

// Replace swaps in a whole new collection, selects its first note and persists.
func (s *Store) Replace(ctx context.Context, notes []api.Note) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.notes = slices.Clone(notes)
	s.current = firstID(s.notes)
	s.persistLocked(ctx)
}

// Get returns the note with exactly this id.
func (s *Store) Get(id string) (api.Note, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if i := s.indexLocked(id); i >= 0 {
		return s.notes[i], nil
	}
	return api.Note{}, fmt.Errorf("%w: %s", ErrNotFound, id)
}

// Resolve finds a note by full id or unique id prefix.
func (s *Store) Resolve(ref string) (api.Note, error) {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return api.Note{}, fmt.Errorf("%w: empty id", ErrNotFound)
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	if i := s.indexLocked(ref); i >= 0 {
		return s.notes[i], nil
	}
	var found []api.Note
	for _, n := range s.notes {
		if strings.HasPrefix(n.ID, ref) {
			found = append(found, n)
		}
	}
	switch len(found) {
	case 0:
		return api.Note{}, fmt.Errorf("%w: %s", ErrNotFound, ref)
	case 1:
		return found[0], nil
	default:
		return api.Note{}, fmt.Errorf("%w: %q matches %d notes", ErrAmbiguous, ref, len(found))
	}
}

// Select makes the note with id current.
func (s *Store) Select(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.indexLocked(id) < 0 {
		return fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	s.current = id
	return nil
}

// Current returns the selected note, if any.
func (s *Store) Current() (api.Note, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if i := s.indexLocked(s.current); i >= 0 {
		return s.notes[i], true
	}
	return api.Note{}, false
}

// All returns a copy of the collection in storage order.
func (s *Store) All() []api.Note {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.notes)
}

func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.notes)
}

// List returns the notes matching q. Plain searches are a case-insensitive
// substring test over title and content, ordered pinned first and then
// newest first. Fuzzy searches keep the match ranking instead of the date
// order, still pinned first.
func (s *Store) List(q api.ListQuery) []api.Note {
	s.mu.RLock()
	candidates := make([]api.Note, 0, len(s.notes))
	for _, n := range s.notes {
		if !q.Since.IsZero() && n.UpdatedAt.Before(q.Since) {
			continue
		}
		if !q.Until.IsZero() && n.UpdatedAt.After(q.Until) {
			continue
		}
		candidates = append(candidates, n)
	}
	s.mu.RUnlock()

	search := strings.TrimSpace(q.Search)
	var out []api.Note
	if search != "" && q.Fuzzy {
		haystack := make([]string, len(candidates))
		for i, n := range candidates {
			haystack[i] = searchText(n)
		}
		for _, i := range util.RankIndexes(search, haystack) {
			out = append(out, candidates[i])
		}
		sort.SliceStable(out, func(i, j int) bool { return out[i].Pinned && !out[j].Pinned })
	} else {
		needle := strings.ToLower(search)
		for _, n := range candidates {
			if needle == "" || strings.Contains(strings.ToLower(searchText(n)), needle) {
				out = append(out, n)
			}
		}
		sort.SliceStable(out, func(i, j int) bool {
			if out[i].Pinned != out[j].Pinned {
				return out[i].Pinned
			}
			return out[i].UpdatedAt.After(out[j].UpdatedAt)
		})
	}

	if q.Limit > 0 && len(out) > q.Limit {
		out = out[:q.Limit]
	}
	return out
}

func searchText(n api.Note) string {
	return n.Title + " " + n.Content
}

func (s *Store) indexLocked(id string) int {
	if id == "" {
		return -1
	}
	return slices.IndexFunc(s.notes, func(n api.Note) bool { return n.ID == id })
}

func (s *Store) persistLocked(ctx context.Context) {
	notes := s.notes
	if notes == nil {
		notes = []api.Note{}
	}
	raw, err := json.Marshal(notes)
	if err == nil {
		err = s.kv.Set(ctx, s.key, string(raw))
	}
	if err != nil {
		s.log.Warn("saving notes failed; changes are kept in memory only",
			logging.FieldKey, s.key, logging.FieldCount, len(notes), logging.FieldError, err)
	}
}

func firstID(notes []api.Note) string {
	if len(notes) == 0 {
		return ""
	}
	return notes[0].ID
}
