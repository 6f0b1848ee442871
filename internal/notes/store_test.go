package notes

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mithrel/mdnotes/internal/db"
	"github.com/mithrel/mdnotes/internal/logging"
	"github.com/mithrel/mdnotes/pkg/api"
)

type clock struct{ t time.Time }

func (c *clock) now() time.Time {
	c.t = c.t.Add(time.Second)
	return c.t
}

func newStore(t *testing.T, kv db.KV) (*Store, *clock) {
	t.Helper()
	c := &clock{t: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)}
	s := New(kv, WithClock(c.now), WithLogger(logging.Discard()))
	require.NoError(t, s.Load(context.Background()))
	return s, c
}

func stored(t *testing.T, kv db.KV, key string) []api.Note {
	t.Helper()
	raw, err := kv.Get(context.Background(), key)
	require.NoError(t, err)
	var out []api.Note
	require.NoError(t, json.Unmarshal([]byte(raw), &out))
	return out
}

func strp(s string) *string { return &s }

func TestLoadEmptyAndCorrupt(t *testing.T) {
	ctx := context.Background()
	kv := db.NewMem()
	s, _ := newStore(t, kv)
	assert.Zero(t, s.Len())
	_, ok := s.Current()
	assert.False(t, ok)

	require.NoError(t, kv.Set(ctx, DefaultKey, "{not json"))
	var buf bytes.Buffer
	s = New(kv, WithLogger(logging.NewWriter(&buf, "warn")))
	require.NoError(t, s.Load(ctx))
	assert.Zero(t, s.Len())
	assert.Contains(t, buf.String(), "unreadable")
}

type failingKV struct {
	db.KV
	getErr, setErr error
}

func (f failingKV) Get(ctx context.Context, key string) (string, error) {
	if f.getErr != nil {
		return "", f.getErr
	}
	return f.KV.Get(ctx, key)
}

func (f failingKV) Set(ctx context.Context, key, value string) error {
	if f.setErr != nil {
		return f.setErr
	}
	return f.KV.Set(ctx, key, value)
}

func TestLoadBackendFailure(t *testing.T) {
	boom := errors.New("disk gone")
	s := New(failingKV{KV: db.NewMem(), getErr: boom}, WithLogger(logging.Discard()))
	assert.ErrorIs(t, s.Load(context.Background()), boom)
}

func TestWriteFailureIsSwallowed(t *testing.T) {
	var buf bytes.Buffer
	s := New(failingKV{KV: db.NewMem(), setErr: errors.New("quota")}, WithLogger(logging.NewWriter(&buf, "warn")))
	require.NoError(t, s.Load(context.Background()))

	n := s.Create(context.Background(), "kept", "")
	got, err := s.Get(n.ID)
	require.NoError(t, err)
	assert.Equal(t, "kept", got.Title)
	assert.Contains(t, buf.String(), "saving notes failed")
}

func TestSeed(t *testing.T) {
	kv := db.NewMem()
	s, _ := newStore(t, kv)
	require.True(t, s.Seed(context.Background()))
	assert.False(t, s.Seed(context.Background()))

	cur, ok := s.Current()
	require.True(t, ok)
	assert.True(t, cur.Pinned)
	assert.Equal(t, WelcomeTitle, cur.Title)
	assert.Len(t, stored(t, kv, DefaultKey), 1)
}

func TestCreateUpdatePinDelete(t *testing.T) {
	ctx := context.Background()
	kv := db.NewMem()
	s, _ := newStore(t, kv)

	a := s.Create(ctx, "", "body a")
	assert.Equal(t, DefaultTitle, a.Title)
	b := s.Create(ctx, "  B  ", "body b")
	assert.Equal(t, "B", b.Title)

	all := s.All()
	require.Len(t, all, 2)
	assert.Equal(t, b.ID, all[0].ID, "new notes go first")
	cur, _ := s.Current()
	assert.Equal(t, b.ID, cur.ID)

	updated, err := s.Update(ctx, a.ID, api.Patch{Title: strp("  Renamed ")})
	require.NoError(t, err)
	assert.Equal(t, "Renamed", updated.Title)
	assert.Equal(t, "body a", updated.Content)
	assert.True(t, updated.UpdatedAt.After(a.UpdatedAt))

	pinned, err := s.TogglePin(ctx, a.ID)
	require.NoError(t, err)
	assert.True(t, pinned.Pinned)

	require.NoError(t, s.Select(a.ID))
	require.NoError(t, s.Delete(ctx, a.ID))
	cur, ok := s.Current()
	require.True(t, ok)
	assert.Equal(t, b.ID, cur.ID, "selection moves to the first remaining note")

	_, err = s.Update(ctx, a.ID, api.Patch{})
	assert.ErrorIs(t, err, ErrNotFound)
	assert.ErrorIs(t, s.Delete(ctx, a.ID), ErrNotFound)
	_, err = s.TogglePin(ctx, "nope")
	assert.ErrorIs(t, err, ErrNotFound)
	assert.ErrorIs(t, s.Select("nope"), ErrNotFound)

	persisted := stored(t, kv, DefaultKey)
	require.Len(t, persisted, 1)
	assert.Equal(t, b.ID, persisted[0].ID)

	require.NoError(t, s.Delete(ctx, b.ID))
	_, ok = s.Current()
	assert.False(t, ok)
	raw, err := kv.Get(ctx, DefaultKey)
	require.NoError(t, err)
	assert.Equal(t, "[]", raw)
}

func TestReloadRoundTrip(t *testing.T) {
	ctx := context.Background()
	kv := db.NewMem()
	s, _ := newStore(t, kv)
	s.Create(ctx, "one", "1")
	s.Create(ctx, "two", "2")

	again := New(kv, WithLogger(logging.Discard()))
	require.NoError(t, again.Load(ctx))
	assert.Equal(t, s.All(), again.All())
	cur, _ := again.Current()
	assert.Equal(t, "two", cur.Title)
}

func TestListOrderingAndSearch(t *testing.T) {
	ctx := context.Background()
	s, _ := newStore(t, db.NewMem())
	old := s.Create(ctx, "old grocery list", "milk")
	mid := s.Create(ctx, "meeting", "agenda: groceries")
	newest := s.Create(ctx, "ideas", "")
	_, err := s.TogglePin(ctx, old.ID)
	require.NoError(t, err)
	// touch mid so it is newer than newest
	_, err = s.Update(ctx, mid.ID, api.Patch{Content: strp("agenda: Groceries")})
	require.NoError(t, err)

	ids := func(ns []api.Note) []string {
		var out []string
		for _, n := range ns {
			out = append(out, n.ID)
		}
		return out
	}

	assert.Equal(t, []string{old.ID, mid.ID, newest.ID}, ids(s.List(api.ListQuery{})))
	assert.Equal(t, []string{old.ID, mid.ID}, ids(s.List(api.ListQuery{Search: "GROCER"})))
	assert.Equal(t, []string{old.ID}, ids(s.List(api.ListQuery{Search: "grocer", Limit: 1})))
	assert.Empty(t, s.List(api.ListQuery{Search: "nothing here"}))

	fuzzy := s.List(api.ListQuery{Search: "mtng", Fuzzy: true})
	assert.Equal(t, []string{mid.ID}, ids(fuzzy))

	m, _ := s.Get(mid.ID)
	since := s.List(api.ListQuery{Since: m.UpdatedAt})
	assert.Equal(t, []string{mid.ID}, ids(since))
	until := s.List(api.ListQuery{Until: newest.UpdatedAt})
	assert.Equal(t, []string{newest.ID}, ids(until))
}

func TestResolvePrefix(t *testing.T) {
	s, _ := newStore(t, db.NewMem())
	s.Replace(context.Background(), []api.Note{
		{ID: "abc123", Title: "a"},
		{ID: "abd456", Title: "b"},
	})

	n, err := s.Resolve("abc")
	require.NoError(t, err)
	assert.Equal(t, "a", n.Title)

	_, err = s.Resolve("ab")
	assert.ErrorIs(t, err, ErrAmbiguous)
	_, err = s.Resolve("zz")
	assert.ErrorIs(t, err, ErrNotFound)
	_, err = s.Resolve("")
	assert.ErrorIs(t, err, ErrNotFound)

	cur, _ := s.Current()
	assert.Equal(t, "abc123", cur.ID, "replace selects the first note")
}
