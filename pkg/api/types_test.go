package api

import (
	"encoding/json"
	"sort"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNoteJSON(t *testing.T) {
	n := Note{ID: "a", Title: "T", Content: "c", Pinned: true, UpdatedAt: time.UnixMilli(1700000000123).UTC()}
	b, err := json.Marshal(n)
	require.NoError(t, err)
	assert.JSONEq(t, `{"id":"a","title":"T","content":"c","pinned":true,"updatedAt":1700000000123}`, string(b))

	var got Note
	require.NoError(t, json.Unmarshal(b, &got))
	assert.Equal(t, n, got)
}

func TestNoteJSONAcceptsRFC3339(t *testing.T) {
	var n Note
	require.NoError(t, json.Unmarshal([]byte(`{"id":"a","updatedAt":"2024-03-01T10:00:00Z"}`), &n))
	assert.Equal(t, time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC), n.UpdatedAt)

	require.NoError(t, json.Unmarshal([]byte(`{"id":"b"}`), &n))
	assert.True(t, n.UpdatedAt.IsZero())

	assert.Error(t, json.Unmarshal([]byte(`{"id":"c","updatedAt":"yesterday"}`), &n))
	assert.Error(t, json.Unmarshal([]byte(`{"id":"c","updatedAt":true}`), &n))
}

func TestDisplayTitleAndDate(t *testing.T) {
	assert.Equal(t, "(Untitled)", Note{Title: "   "}.DisplayTitle())
	assert.Equal(t, "Hi", Note{Title: " Hi "}.DisplayTitle())

	n := Note{UpdatedAt: time.Date(2024, 12, 31, 23, 30, 0, 0, time.FixedZone("X", -3600))}
	assert.Equal(t, "2025-01-01", n.Date())
	assert.Equal(t, "", Note{}.Date())
}

func TestNewIDSortsByTime(t *testing.T) {
	ids := make([]string, 0, 50)
	for range 50 {
		ids = append(ids, NewID())
		time.Sleep(time.Millisecond)
	}
	assert.True(t, sort.StringsAreSorted(ids))
	assert.Len(t, ids[0], 36)
}
