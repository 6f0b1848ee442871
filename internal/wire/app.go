package wire

import (
	"context"
	"errors"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/viper"

	"github.com/mithrel/mdnotes/internal/config"
	"github.com/mithrel/mdnotes/internal/db"
	"github.com/mithrel/mdnotes/internal/logging"
	"github.com/mithrel/mdnotes/internal/markup"
	"github.com/mithrel/mdnotes/internal/notes"
	"github.com/mithrel/mdnotes/internal/prefs"
)

// App aggregates the major services for easy injection.
type App struct {
	Cfg      *viper.Viper
	Log      *log.Logger
	KV       db.KV
	Notes    *notes.Store
	Themes   prefs.Themes
	Renderer markup.Renderer
}

// BuildApp wires dependencies with the provided config. The logger comes
// from ctx. The note collection is loaded, and seeded when seed.welcome is set.
func BuildApp(ctx context.Context, v *viper.Viper) (*App, error) {
	logger := logging.FromContext(ctx)
	dsn := config.ResolveDSN(v)
	kv, err := db.Open(ctx, dsn)
	if err != nil {
		return nil, err
	}
	logger.Debug("storage opened", logging.FieldDSN, dsn)

	store := notes.New(kv,
		notes.WithKey(v.GetString("storage.notes_key")),
		notes.WithLogger(logger),
	)
	if err := store.Load(ctx); err != nil {
		return nil, errors.Join(err, kv.Close())
	}
	if v.GetBool("seed.welcome") && store.Seed(ctx) {
		logger.Debug("seeded welcome note")
	}

	fallback, err := prefs.ParseTheme(v.GetString("theme.default"))
	if err != nil {
		fallback = prefs.Light
	}
	return &App{
		Cfg:    v,
		Log:    logger,
		KV:     kv,
		Notes:  store,
		Themes: prefs.Themes{KV: kv, Key: v.GetString("storage.theme_key"), Fallback: fallback},
		Renderer: markup.Renderer{
			MaxInputBytes:  v.GetInt("render.max_input_bytes"),
			DetectLanguage: v.GetBool("render.detect_language"),
		},
	}, nil
}

// PreviewDebounce is tui.preview_debounce, or zero when unset or invalid.
func (a *App) PreviewDebounce() time.Duration {
	d, err := time.ParseDuration(a.Cfg.GetString("tui.preview_debounce"))
	if err != nil {
		return 0
	}
	return d
}

// Close releases the storage backend.
func (a *App) Close() error {
	if a == nil || a.KV == nil {
		return nil
	}
	return a.KV.Close()
}
