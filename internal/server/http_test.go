package server

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mithrel/mdnotes/internal/db"
	"github.com/mithrel/mdnotes/internal/logging"
	"github.com/mithrel/mdnotes/internal/markup"
	"github.com/mithrel/mdnotes/internal/notes"
	"github.com/mithrel/mdnotes/internal/prefs"
	"github.com/mithrel/mdnotes/pkg/api"
)

type fixture struct {
	srv    *Server
	store  *notes.Store
	themes prefs.Themes
	h      http.Handler
}

func newFixture(t *testing.T) fixture {
	t.Helper()
	ctx := context.Background()
	kv := db.NewMem()
	store := notes.New(kv, notes.WithLogger(logging.Discard()))
	require.NoError(t, store.Load(ctx))
	themes := prefs.Themes{KV: kv}
	srv := New(store, themes, markup.Renderer{MaxInputBytes: 64}, logging.Discard())
	srv.now = func() time.Time { return time.UnixMilli(1_700_000_000_000) }
	return fixture{srv: srv, store: store, themes: themes, h: srv.Router()}
}

func (f fixture) do(t *testing.T, method, target, body string, hdr map[string]string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	for k, v := range hdr {
		req.Header.Set(k, v)
	}
	rec := httptest.NewRecorder()
	f.h.ServeHTTP(rec, req)
	return rec
}

func TestHealthz(t *testing.T) {
	f := newFixture(t)
	rec := f.do(t, http.MethodGet, "/healthz", "", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ok", rec.Body.String())
}

func TestListJSONSearch(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.store.Create(ctx, "Groceries", "milk")
	f.store.Create(ctx, "Meeting", "agenda")

	rec := f.do(t, http.MethodGet, "/notes?q=milk", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	var got []api.Note
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	require.Len(t, got, 1)
	assert.Equal(t, "Groceries", got[0].Title)

	rec = f.do(t, http.MethodGet, "/notes?q=nothing", "", nil)
	assert.Equal(t, "[]\n", rec.Body.String())

	rec = f.do(t, http.MethodGet, "/notes?limit=x", "", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestIndexPageCarriesTheme(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.store.Create(ctx, "<b>x</b>", "")
	require.NoError(t, f.themes.Save(ctx, prefs.Dark))

	rec := f.do(t, http.MethodGet, "/", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, `data-theme="dark"`)
	assert.Contains(t, body, "&lt;b&gt;x&lt;/b&gt;")
	assert.NotContains(t, body, "<b>x</b>")
}

func TestNotePageETag(t *testing.T) {
	f := newFixture(t)
	n := f.store.Create(context.Background(), "Title", "**bold** <script>")

	rec := f.do(t, http.MethodGet, "/notes/"+n.ID, "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	etag := rec.Header().Get("ETag")
	require.NotEmpty(t, etag)
	assert.Contains(t, etag, n.Hash())
	body := rec.Body.String()
	assert.Contains(t, body, "<p><strong>bold</strong> &lt;script&gt;</p>")
	assert.Contains(t, body, `data-theme="light"`)

	rec = f.do(t, http.MethodGet, "/notes/"+n.ID, "", map[string]string{"If-None-Match": etag})
	assert.Equal(t, http.StatusNotModified, rec.Code)
	assert.Empty(t, rec.Body.String())

	// a prefix of the id resolves too
	rec = f.do(t, http.MethodGet, "/notes/"+n.ID[:8], "", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestNoteFragment(t *testing.T) {
	f := newFixture(t)
	n := f.store.Create(context.Background(), "T", "# Hi\n\n[x](javascript:alert(1))")

	rec := f.do(t, http.MethodGet, "/notes/"+n.ID+"/html", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "text/html; charset=utf-8", rec.Header().Get("Content-Type"))
	assert.True(t, strings.HasPrefix(rec.Body.String(), "<h1>Hi</h1>"))
	assert.NotContains(t, rec.Body.String(), "href")
}

func TestNoteNotFound(t *testing.T) {
	f := newFixture(t)
	rec := f.do(t, http.MethodGet, "/notes/missing", "", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestRender(t *testing.T) {
	f := newFixture(t)
	rec := f.do(t, http.MethodPost, "/render", "*hi* & `x`", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "<p><em>hi</em> &amp; <code>x</code></p>", rec.Body.String())

	rec = f.do(t, http.MethodPost, "/render", strings.Repeat("a", 65), nil)
	assert.Equal(t, http.StatusRequestEntityTooLarge, rec.Code)

	rec = f.do(t, http.MethodGet, "/render", "", nil)
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}

func TestExport(t *testing.T) {
	f := newFixture(t)
	f.store.Create(context.Background(), "One", "body")

	rec := f.do(t, http.MethodGet, "/export", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, `attachment; filename="notes-1700000000000.json"`, rec.Header().Get("Content-Disposition"))
	var got []api.Note
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	require.Len(t, got, 1)

	rec = f.do(t, http.MethodGet, "/export?format=yaml", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/yaml", rec.Header().Get("Content-Type"))
	assert.Contains(t, rec.Body.String(), "title: One")

	rec = f.do(t, http.MethodGet, "/export?format=xml", "", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestServeStopsOnCancel(t *testing.T) {
	f := newFixture(t)
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- f.srv.ListenAndServe(ctx, "127.0.0.1:0") }()
	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not stop")
	}
}
