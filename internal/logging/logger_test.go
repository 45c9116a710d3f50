package logging

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/redjax/kparams/internal/config"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input    string
		expected slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"info", slog.LevelInfo},
		{"warn", slog.LevelWarn},
		{"warning", slog.LevelWarn},
		{"error", slog.LevelError},
		{"DEBUG", slog.LevelDebug},
		{"", slog.LevelInfo},
		{"unknown", slog.LevelInfo},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.expected, parseLevel(tt.input))
		})
	}
}

func TestNewWithWriter_JSONIncludesDefaultFields(t *testing.T) {
	var buf bytes.Buffer
	logger := NewWithWriter(config.LoggingConfig{Level: "info", Format: "json"}, "test", &buf)

	logger.Info("using offsets", "device", "iPhone11,8")

	var entry map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "using offsets", entry["msg"])
	assert.Equal(t, "kparams", entry["service"])
	assert.Equal(t, "test", entry["version"])
	assert.Equal(t, "iPhone11,8", entry["device"])
}

func TestNewWithWriter_LevelFilters(t *testing.T) {
	var buf bytes.Buffer
	logger := NewWithWriter(config.LoggingConfig{Level: "error", Format: "text"}, "test", &buf)

	logger.Info("dropped")
	assert.Empty(t, buf.String())

	logger.Error("kept")
	assert.Contains(t, buf.String(), "kept")
}

func TestLogger_With(t *testing.T) {
	var buf bytes.Buffer
	logger := NewWithWriter(config.LoggingConfig{Format: "text"}, "test", &buf)

	child := logger.With("component", "resolver")
	require.NotSame(t, logger, child)

	child.Info("hello")
	assert.Contains(t, buf.String(), "component=resolver")
}

func TestDefaultAndDiscard(t *testing.T) {
	assert.NotNil(t, Default())
	assert.NotNil(t, Discard())
}
