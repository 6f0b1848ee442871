// Package db provides the key-value persistence backends behind the note
// store: an in-memory map and a SQLite file.
package db

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

// KV is the persistence contract: whole text values under string keys.
type KV interface {
	// Get returns ErrNotFound when key has never been set.
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string) error
	Close() error
}

var (
	ErrNotFound = errors.New("not found")
	ErrClosed   = errors.New("store closed")
)

// Open returns a KV for dsn: "mem://" for an in-memory store,
// "sqlite://path" or a bare path for a SQLite file.
func Open(ctx context.Context, dsn string) (KV, error) {
	dsn = strings.TrimSpace(dsn)
	switch {
	case dsn == "":
		return nil, errors.New("empty storage dsn")
	case strings.HasPrefix(dsn, "mem://"):
		return NewMem(), nil
	case strings.HasPrefix(dsn, "sqlite://"):
		return OpenSQLite(ctx, strings.TrimPrefix(dsn, "sqlite://"))
	case strings.Contains(dsn, "://"):
		scheme, _, _ := strings.Cut(dsn, "://")
		return nil, fmt.Errorf("unsupported storage scheme %q", scheme)
	default:
		return OpenSQLite(ctx, dsn)
	}
}
