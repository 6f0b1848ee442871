package prefs

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mithrel/mdnotes/internal/db"
)

func TestThemes(t *testing.T) {
	ctx := context.Background()
	kv := db.NewMem()
	themes := Themes{KV: kv, Fallback: Dark}

	got, err := themes.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, Dark, got)

	next, err := themes.Toggle(ctx)
	require.NoError(t, err)
	assert.Equal(t, Light, next)

	raw, err := kv.Get(ctx, DefaultThemeKey)
	require.NoError(t, err)
	assert.Equal(t, "light", raw)

	require.NoError(t, kv.Set(ctx, DefaultThemeKey, "purple"))
	got, err = themes.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, Dark, got, "unknown values fall back")
}

func TestParseTheme(t *testing.T) {
	th, err := ParseTheme(" DARK ")
	require.NoError(t, err)
	assert.Equal(t, Dark, th)
	assert.Equal(t, Light, th.Toggle())

	_, err = ParseTheme("sepia")
	assert.Error(t, err)
}
