// Package exchange moves note collections in and out of files.
package exchange

import (
	"errors"
	"fmt"
	"path/filepath"
	"strconv"
	"strings"
	"time"
)

type Format string

const (
	JSON   Format = "json"
	NDJSON Format = "ndjson"
	YAML   Format = "yaml"
)

var (
	ErrInvalidFormat = errors.New("invalid file format")
	ErrParse         = errors.New("cannot parse file")
	ErrDuplicateID   = errors.New("duplicate note id")
)

// ParseFormat accepts json, ndjson, yaml or yml.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "json":
		return JSON, nil
	case "ndjson", "jsonl":
		return NDJSON, nil
	case "yaml", "yml":
		return YAML, nil
	}
	return "", fmt.Errorf("unknown format %q (want json, ndjson or yaml)", s)
}

// FormatForPath picks the format from the file extension, or fallback.
func FormatForPath(path string, fallback Format) Format {
	if f, err := ParseFormat(strings.TrimPrefix(filepath.Ext(path), ".")); err == nil {
		return f
	}
	return fallback
}

// Ext is the file extension for f, without the dot.
func (f Format) Ext() string {
	if f == "" {
		return string(JSON)
	}
	return string(f)
}

// DefaultFileName is notes-<unix ms>.<ext>.
func DefaultFileName(now time.Time, f Format) string {
	return "notes-" + strconv.FormatInt(now.UnixMilli(), 10) + "." + f.Ext()
}

// ContentType is the media type used when serving f.
func (f Format) ContentType() string {
	switch f {
	case NDJSON:
		return "application/x-ndjson"
	case YAML:
		return "application/yaml"
	}
	return "application/json"
}
