// Package server is the local HTTP preview of the note collection.
package server

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/mithrel/mdnotes/internal/exchange"
	"github.com/mithrel/mdnotes/internal/logging"
	"github.com/mithrel/mdnotes/internal/markup"
	"github.com/mithrel/mdnotes/internal/notes"
	"github.com/mithrel/mdnotes/internal/prefs"
	"github.com/mithrel/mdnotes/pkg/api"
)

// Server serves rendered notes from a Store.
type Server struct {
	store    *notes.Store
	themes   prefs.Themes
	renderer markup.Renderer
	log      *log.Logger
	now      func() time.Time
}

func New(store *notes.Store, themes prefs.Themes, renderer markup.Renderer, logger *log.Logger) *Server {
	if logger == nil {
		logger = logging.Default()
	}
	return &Server{store: store, themes: themes, renderer: renderer, log: logger, now: time.Now}
}

// Router returns an http.Handler with registered routes.
func (s *Server) Router() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("ok"))
	})
	mux.HandleFunc("GET /{$}", s.handleIndex)
	mux.HandleFunc("GET /notes", s.handleList)
	mux.HandleFunc("GET /notes/{id}", s.handleNote)
	mux.HandleFunc("GET /notes/{id}/html", s.handleFragment)
	mux.HandleFunc("POST /render", s.handleRender)
	mux.HandleFunc("GET /export", s.handleExport)
	return s.logRequests(mux)
}

// ListenAndServe serves on addr until ctx is cancelled.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("listen %s: %w", addr, err)
	}
	return s.Serve(ctx, ln)
}

// Serve accepts connections on ln until ctx is cancelled, then shuts down.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	srv := &http.Server{
		Handler:           s.Router(),
		ReadHeaderTimeout: 5 * time.Second,
		BaseContext:       func(net.Listener) context.Context { return ctx },
	}
	errc := make(chan error, 1)
	go func() { errc <- srv.Serve(ln) }()
	s.log.Info("serving notes", logging.FieldAddr, ln.Addr().String())

	select {
	case err := <-errc:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}

type statusWriter struct {
	http.ResponseWriter
	status int
}

func (w *statusWriter) WriteHeader(code int) {
	w.status = code
	w.ResponseWriter.WriteHeader(code)
}

func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		sw := &statusWriter{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(sw, r)
		s.log.Debug("request",
			logging.FieldMethod, r.Method,
			logging.FieldURL, r.URL.RequestURI(),
			logging.FieldStatus, sw.status,
			logging.FieldDuration, time.Since(start))
	})
}

func (s *Server) theme(ctx context.Context) prefs.Theme {
	t, err := s.themes.Load(ctx)
	if err != nil {
		s.log.Warn("theme unavailable", logging.FieldError, err)
	}
	return t
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query().Get("q")
	list := s.store.List(api.ListQuery{Search: q})
	var buf bytes.Buffer
	err := indexPage.Execute(&buf, indexData{Theme: s.theme(r.Context()), Query: q, Notes: list})
	if err != nil {
		s.fail(w, err)
		return
	}
	writeHTML(w, buf.Bytes())
}

func (s *Server) handleList(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	query := api.ListQuery{Search: q.Get("q"), Fuzzy: q.Get("fuzzy") == "1" || q.Get("fuzzy") == "true"}
	if ls := strings.TrimSpace(q.Get("limit")); ls != "" {
		n, err := strconv.Atoi(ls)
		if err != nil || n < 0 {
			http.Error(w, "bad limit", http.StatusBadRequest)
			return
		}
		query.Limit = n
	}
	list := s.store.List(query)
	if list == nil {
		list = []api.Note{}
	}
	w.Header().Set("Content-Type", "application/json")
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	_ = enc.Encode(list)
}

// lookup resolves the {id} path value and writes the error response itself.
func (s *Server) lookup(w http.ResponseWriter, r *http.Request) (api.Note, bool) {
	n, err := s.store.Resolve(r.PathValue("id"))
	switch {
	case errors.Is(err, notes.ErrNotFound):
		http.Error(w, "note not found", http.StatusNotFound)
		return n, false
	case errors.Is(err, notes.ErrAmbiguous):
		http.Error(w, err.Error(), http.StatusConflict)
		return n, false
	case err != nil:
		s.fail(w, err)
		return n, false
	}
	return n, true
}

func (s *Server) handleNote(w http.ResponseWriter, r *http.Request) {
	n, ok := s.lookup(w, r)
	if !ok {
		return
	}
	theme := s.theme(r.Context())
	// the page embeds the theme, so it is part of the validator
	etag := `"` + n.Hash() + "-" + string(theme) + `"`
	w.Header().Set("ETag", etag)
	if match := r.Header.Get("If-None-Match"); match != "" && etagMatches(match, etag) {
		w.WriteHeader(http.StatusNotModified)
		return
	}
	var frag bytes.Buffer
	if err := markup.WriteHTML(&frag, s.renderer.Parse(n.Content)); err != nil {
		s.fail(w, err)
		return
	}
	var buf bytes.Buffer
	err := notePage.Execute(&buf, noteData{Theme: theme, Note: n, Body: trustedFragment(frag.String())})
	if err != nil {
		s.fail(w, err)
		return
	}
	writeHTML(w, buf.Bytes())
}

func etagMatches(header, etag string) bool {
	for _, part := range strings.Split(header, ",") {
		part = strings.TrimSpace(part)
		if part == "*" || strings.TrimPrefix(part, "W/") == etag {
			return true
		}
	}
	return false
}

func (s *Server) handleFragment(w http.ResponseWriter, r *http.Request) {
	n, ok := s.lookup(w, r)
	if !ok {
		return
	}
	var buf bytes.Buffer
	if err := markup.WriteHTML(&buf, s.renderer.Parse(n.Content)); err != nil {
		s.fail(w, err)
		return
	}
	writeHTML(w, buf.Bytes())
}

func (s *Server) handleRender(w http.ResponseWriter, r *http.Request) {
	body := io.Reader(r.Body)
	if limit := s.renderer.MaxInputBytes; limit > 0 {
		body = http.MaxBytesReader(w, r.Body, int64(limit))
	}
	src, err := io.ReadAll(body)
	if err != nil {
		var tooBig *http.MaxBytesError
		if errors.As(err, &tooBig) {
			http.Error(w, fmt.Sprintf("body exceeds %d bytes", tooBig.Limit), http.StatusRequestEntityTooLarge)
			return
		}
		http.Error(w, "failed to read body", http.StatusBadRequest)
		return
	}
	var buf bytes.Buffer
	if err := markup.WriteHTML(&buf, s.renderer.Parse(string(src))); err != nil {
		s.fail(w, err)
		return
	}
	writeHTML(w, buf.Bytes())
}

func (s *Server) handleExport(w http.ResponseWriter, r *http.Request) {
	f := exchange.JSON
	if v := r.URL.Query().Get("format"); v != "" {
		parsed, err := exchange.ParseFormat(v)
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		f = parsed
	}
	all := s.store.All()
	var buf bytes.Buffer
	if err := exchange.Encode(&buf, all, f); err != nil {
		s.fail(w, err)
		return
	}
	s.log.Debug("export", logging.FieldFormat, f, logging.FieldCount, len(all))
	w.Header().Set("Content-Type", f.ContentType())
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", exchange.DefaultFileName(s.now(), f)))
	_, _ = w.Write(buf.Bytes())
}

func (s *Server) fail(w http.ResponseWriter, err error) {
	s.log.Error("request failed", logging.FieldError, err)
	http.Error(w, "internal error", http.StatusInternalServerError)
}

func writeHTML(w http.ResponseWriter, b []byte) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = w.Write(b)
}
