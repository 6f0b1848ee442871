// Package prefs stores user preferences next to the notes.
package prefs

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/mithrel/mdnotes/internal/db"
)

// DefaultThemeKey is the storage key of the theme preference.
const DefaultThemeKey = "mdnotes.theme"

type Theme string

const (
	Light Theme = "light"
	Dark  Theme = "dark"
)

// ParseTheme accepts "light" or "dark", case-insensitively.
func ParseTheme(s string) (Theme, error) {
	switch Theme(strings.ToLower(strings.TrimSpace(s))) {
	case Light:
		return Light, nil
	case Dark:
		return Dark, nil
	}
	return "", fmt.Errorf("unknown theme %q (want light or dark)", s)
}

// Toggle returns the other theme.
func (t Theme) Toggle() Theme {
	if t == Dark {
		return Light
	}
	return Dark
}

// Themes stores the theme preference under one key.
type Themes struct {
	KV       db.KV
	Key      string
	Fallback Theme
}

func (t Themes) key() string {
	if t.Key == "" {
		return DefaultThemeKey
	}
	return t.Key
}

func (t Themes) fallback() Theme {
	if t.Fallback == Dark {
		return Dark
	}
	return Light
}

// Load returns the saved theme. Nothing saved, or an unknown value, gives
// the fallback.
func (t Themes) Load(ctx context.Context) (Theme, error) {
	raw, err := t.KV.Get(ctx, t.key())
	if errors.Is(err, db.ErrNotFound) {
		return t.fallback(), nil
	}
	if err != nil {
		return t.fallback(), fmt.Errorf("load theme: %w", err)
	}
	theme, err := ParseTheme(raw)
	if err != nil {
		return t.fallback(), nil
	}
	return theme, nil
}

func (t Themes) Save(ctx context.Context, theme Theme) error {
	if err := t.KV.Set(ctx, t.key(), string(theme)); err != nil {
		return fmt.Errorf("save theme: %w", err)
	}
	return nil
}

// Toggle flips the saved theme and returns the new one.
func (t Themes) Toggle(ctx context.Context) (Theme, error) {
	cur, err := t.Load(ctx)
	if err != nil {
		return cur, err
	}
	next := cur.Toggle()
	return next, t.Save(ctx, next)
}
