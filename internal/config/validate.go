package config

import (
	"errors"
	"fmt"
	"net"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/mithrel/mdnotes/internal/logging"
)

type validationErrors []string

func (v validationErrors) Error() string {
	return "invalid config:\n  - " + strings.Join(v, "\n  - ")
}

// ErrInvalid is matched by errors.Is for any validation failure.
var ErrInvalid = errors.New("invalid config")

func (v validationErrors) Is(target error) bool { return target == ErrInvalid }

// CheckConfigValidity reports every problem in v at once.
func CheckConfigValidity(v *viper.Viper) error {
	var errs validationErrors
	add := func(format string, args ...any) {
		errs = append(errs, fmt.Sprintf(format, args...))
	}

	dsn := strings.TrimSpace(v.GetString("storage.dsn"))
	if dsn == "" && strings.TrimSpace(v.GetString("data_dir")) == "" {
		add("data_dir is required when storage.dsn is empty")
	}
	if dsn != "" {
		if scheme, _, ok := strings.Cut(dsn, "://"); ok && scheme != "mem" && scheme != "sqlite" {
			add("storage.dsn has unsupported scheme %q", scheme)
		}
	}
	if strings.TrimSpace(v.GetString("storage.notes_key")) == "" {
		add("storage.notes_key is required")
	}
	if strings.TrimSpace(v.GetString("storage.theme_key")) == "" {
		add("storage.theme_key is required")
	}
	if v.GetString("storage.notes_key") != "" && v.GetString("storage.notes_key") == v.GetString("storage.theme_key") {
		add("storage.notes_key and storage.theme_key must differ")
	}

	switch v.GetString("theme.default") {
	case "light", "dark":
	default:
		add("theme.default must be light or dark")
	}

	if v.GetInt("render.max_input_bytes") <= 0 {
		add("render.max_input_bytes must be greater than 0")
	}

	if !logging.ValidLevel(v.GetString("log.level")) {
		add("log.level must be one of debug, info, warn, error")
	}

	if _, _, err := net.SplitHostPort(v.GetString("serve.addr")); err != nil {
		add("serve.addr must be host:port")
	}

	switch v.GetString("export.format") {
	case "json", "yaml":
	default:
		add("export.format must be json or yaml")
	}

	if d, err := time.ParseDuration(v.GetString("tui.preview_debounce")); err != nil || d < 0 {
		add("tui.preview_debounce must be a non-negative duration")
	}

	if len(errs) == 0 {
		return nil
	}
	return errs
}
