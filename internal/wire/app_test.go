package wire

import (
	"context"
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mithrel/mdnotes/internal/notes"
	"github.com/mithrel/mdnotes/internal/prefs"
)

func TestBuildAppSeedsAndPersists(t *testing.T) {
	ctx := context.Background()
	v := viper.New()
	v.Set("storage.dsn", "sqlite://"+t.TempDir()+"/notes.db")
	v.Set("seed.welcome", true)
	v.Set("theme.default", "dark")
	v.Set("render.max_input_bytes", 128)
	v.Set("tui.preview_debounce", "40ms")

	app, err := BuildApp(ctx, v)
	require.NoError(t, err)
	require.Equal(t, 1, app.Notes.Len())
	assert.Equal(t, notes.WelcomeTitle, app.Notes.All()[0].Title)
	assert.Equal(t, 128, app.Renderer.MaxInputBytes)
	assert.Equal(t, 40*time.Millisecond, app.PreviewDebounce())

	theme, err := app.Themes.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, prefs.Dark, theme)

	app.Notes.Create(ctx, "second", "")
	require.NoError(t, app.Close())

	again, err := BuildApp(ctx, v)
	require.NoError(t, err)
	defer again.Close()
	assert.Equal(t, 2, again.Notes.Len())
}

func TestBuildAppWithoutSeed(t *testing.T) {
	v := viper.New()
	v.Set("storage.dsn", "mem://")
	app, err := BuildApp(context.Background(), v)
	require.NoError(t, err)
	defer app.Close()
	assert.Equal(t, 0, app.Notes.Len())
	assert.Equal(t, time.Duration(0), app.PreviewDebounce())
}

func TestBuildAppBadDSN(t *testing.T) {
	v := viper.New()
	v.Set("storage.dsn", "redis://localhost")
	_, err := BuildApp(context.Background(), v)
	assert.Error(t, err)
}
