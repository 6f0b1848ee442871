package fsutil

import (
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteAtomic(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sub", "out.json")
	require.NoError(t, WriteAtomic(context.Background(), path, []byte("one"), 0))

	got, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "one", string(got))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, DefaultFileMode, info.Mode().Perm())
}

func TestWriteAtomicFuncFailureKeepsOriginal(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "out.json")
	require.NoError(t, os.WriteFile(path, []byte("original"), 0o600))

	boom := errors.New("boom")
	err := WriteAtomicFunc(context.Background(), path, 0o600, func(w io.Writer) error {
		_, _ = io.WriteString(w, "partial")
		return boom
	})
	require.ErrorIs(t, err, boom)

	got, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "original", string(got))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 1, "temp file is cleaned up")
}

func TestWriteAtomicCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	err := WriteAtomic(ctx, filepath.Join(t.TempDir(), "x"), nil, 0)
	assert.ErrorIs(t, err, context.Canceled)
}
