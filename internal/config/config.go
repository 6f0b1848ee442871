package config

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

const appName = "mdnotes"

// applyDefaults seeds Viper with defaults defined in GetConfigOptions.
func applyDefaults(v *viper.Viper) {
	for _, o := range GetConfigOptions() {
		v.SetDefault(o.Key, o.Default)
	}
}

// Load resolves configuration with precedence: defaults < file < env.
// The provided Viper instance is mutated with defaults, file contents, and env.
func Load(ctx context.Context, v *viper.Viper) error {
	if v.ConfigFileUsed() == "" {
		v.SetConfigName("config")
		v.SetConfigType("toml")
		if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
			v.AddConfigPath(filepath.Join(xdg, appName))
		}
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(filepath.Join(home, ".config", appName))
		}
		v.AddConfigPath(".")
	}

	applyDefaults(v)

	// A missing file is fine; a broken one is not.
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("read config: %w", err)
		}
	}

	// MDNOTES_* (highest among these sources)
	v.SetEnvPrefix(appName)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if strings.TrimSpace(v.GetString("data_dir")) == "" {
		v.Set("data_dir", defaultDataDir())
	}
	return nil
}

// defaultDataDir resolves $XDG_DATA_HOME/mdnotes or ~/.local/share/mdnotes.
func defaultDataDir() string {
	if xdg := os.Getenv("XDG_DATA_HOME"); xdg != "" {
		return filepath.Join(xdg, appName)
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".local", "share", appName)
}

// DefaultConfigPath resolves the standard config.toml location.
func DefaultConfigPath() string {
	xdg := os.Getenv("XDG_CONFIG_HOME")
	if xdg == "" {
		home, _ := os.UserHomeDir()
		xdg = filepath.Join(home, ".config")
	}
	return filepath.Join(xdg, appName, "config.toml")
}

// ConfigOption is one documented configuration key.
type ConfigOption struct {
	Key     string
	Default any
	Comment string
}

// GetConfigOptions returns the default configuration options and their meanings.
// It is the single source of truth for defaults and for `config generate`.
func GetConfigOptions() []ConfigOption {
	return []ConfigOption{
		{Key: "data_dir", Default: defaultDataDir(), Comment: "Directory for local state; the default database is data_dir/mdnotes.db"},

		{Key: "storage.dsn", Default: "", Comment: "Storage backend: mem://, sqlite://path or a plain file path (empty uses data_dir)"},
		{Key: "storage.notes_key", Default: "mdnotes.notes.v1", Comment: "Key the note collection is stored under"},
		{Key: "storage.theme_key", Default: "mdnotes.theme", Comment: "Key the theme preference is stored under"},

		{Key: "theme.default", Default: "light", Comment: "Theme used until one is saved: light or dark"},

		{Key: "render.max_input_bytes", Default: 1 << 20, Comment: "Larger notes are shown as plain escaped text"},
		{Key: "render.detect_language", Default: false, Comment: "Guess the language of code blocks without a hint"},

		{Key: "log.level", Default: "info", Comment: "Log level: debug, info, warn or error"},

		{Key: "serve.addr", Default: "127.0.0.1:8080", Comment: "Listen address for the local preview server"},

		{Key: "editor.delete_empty", Default: true, Comment: "Delete a new note if the editor exits with no content"},

		{Key: "search.fuzzy", Default: false, Comment: "Rank searches by fuzzy match instead of substring filtering"},

		{Key: "export.format", Default: "json", Comment: "Default export format: json or yaml"},

		{Key: "tui.preview_debounce", Default: "150ms", Comment: "Delay before the browser preview re-renders after a change"},

		{Key: "seed.welcome", Default: true, Comment: "Create the welcome note when the collection is empty"},
	}
}

// ResolveDSN returns storage.dsn, or the sqlite file under data_dir.
func ResolveDSN(v *viper.Viper) string {
	if dsn := strings.TrimSpace(v.GetString("storage.dsn")); dsn != "" {
		return dsn
	}
	return "sqlite://" + filepath.Join(ExpandHome(v.GetString("data_dir")), appName+".db")
}

// ExpandHome expands a leading ~ to the user's home directory.
func ExpandHome(p string) string {
	if p == "~" || strings.HasPrefix(p, "~/") {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, p[1:])
		}
	}
	return p
}
