package logging_test

import (
	"bytes"
	"context"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mithrel/mdnotes/internal/logging"
)

func TestParseLevel(t *testing.T) {
	t.Parallel()

	tests := []struct {
		level    string
		expected log.Level
	}{
		{"debug", log.DebugLevel},
		{"info", log.InfoLevel},
		{"warn", log.WarnLevel},
		{"warning", log.WarnLevel},
		{"error", log.ErrorLevel},
		{"DEBUG", log.DebugLevel},
		{" Info ", log.InfoLevel},
		{"invalid", log.InfoLevel},
		{"", log.InfoLevel},
	}
	for _, tc := range tests {
		t.Run(tc.level, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tc.expected, logging.ParseLevel(tc.level))
			assert.Equal(t, tc.expected, logging.New(tc.level).GetLevel())
		})
	}
}

func TestValidLevel(t *testing.T) {
	assert.True(t, logging.ValidLevel("Warn"))
	assert.False(t, logging.ValidLevel("verbose"))
}

func TestNewWriterFiltersByLevel(t *testing.T) {
	var buf bytes.Buffer
	logger := logging.NewWriter(&buf, "warn")
	logger.Info("hidden")
	logger.Warn("shown", logging.FieldKey, "k")
	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), "shown")
	assert.Contains(t, buf.String(), "key=k")
}

func TestContext(t *testing.T) {
	logger := logging.Discard()
	ctx := logging.WithLogger(context.Background(), logger)
	assert.Same(t, logger, logging.FromContext(ctx))
	assert.Same(t, logging.Default(), logging.FromContext(context.Background()))
	//nolint:staticcheck // nil context is handled on purpose
	assert.NotNil(t, logging.FromContext(nil))
}

func TestSetDefault(t *testing.T) {
	original := logging.Default()
	defer logging.SetDefault(original)

	custom := logging.New("debug")
	logging.SetDefault(custom)
	require.Same(t, custom, logging.Default())
}
