package db

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testKV(t *testing.T, kv KV) {
	t.Helper()
	ctx := context.Background()

	_, err := kv.Get(ctx, "missing")
	require.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, kv.Set(ctx, "k", "v1"))
	got, err := kv.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, "v1", got)

	require.NoError(t, kv.Set(ctx, "k", "v2"))
	got, err = kv.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, "v2", got)

	require.NoError(t, kv.Set(ctx, "empty", ""))
	got, err = kv.Get(ctx, "empty")
	require.NoError(t, err)
	assert.Equal(t, "", got)
}

func TestMem(t *testing.T) {
	kv, err := Open(context.Background(), "mem://")
	require.NoError(t, err)
	testKV(t, kv)

	require.NoError(t, kv.Close())
	_, err = kv.Get(context.Background(), "k")
	assert.ErrorIs(t, err, ErrClosed)
}

func TestSQLite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "notes.db")
	kv, err := Open(context.Background(), "sqlite://"+path)
	require.NoError(t, err)
	testKV(t, kv)
	require.NoError(t, kv.Close())

	info, err := os.Stat(filepath.Dir(path))
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o700), info.Mode().Perm())

	// values survive a reopen
	kv, err = Open(context.Background(), path)
	require.NoError(t, err)
	defer kv.Close()
	got, err := kv.Get(context.Background(), "k")
	require.NoError(t, err)
	assert.Equal(t, "v2", got)
}

func TestOpenRejectsUnknownScheme(t *testing.T) {
	_, err := Open(context.Background(), "postgres://localhost/db")
	assert.ErrorContains(t, err, `unsupported storage scheme "postgres"`)

	_, err = Open(context.Background(), " ")
	assert.Error(t, err)
}
