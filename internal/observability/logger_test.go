package observability

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	sharedobs "github.com/couchcryptid/storm-data-shared/observability"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/couchcryptid/asteroid-impact-service/internal/config"
)

func TestHandlerLevel(t *testing.T) {
	tests := []struct {
		in   string
		want slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"INFO", slog.LevelInfo},
		{"warn", slog.LevelWarn},
		{"warning", slog.LevelWarn},
		{"error", slog.LevelError},
		{"", slog.LevelInfo},
		{"verbose", slog.LevelInfo},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, handlerLevel(sharedobs.NewLogger(tt.in, "json").Handler()))
		})
	}
}

func TestNewTextLogger(t *testing.T) {
	var buf bytes.Buffer
	logger := NewTextLogger(&buf, "warn")

	logger.Info("hidden")
	logger.Warn("catalog slow", "neo_id", "2000433")

	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), "catalog slow")
	assert.Contains(t, buf.String(), "neo_id=2000433")
	assert.Same(t, logger, slog.Default())
}

func TestNewLogger_WritesLogFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "impact.log")
	logger, cleanup, err := NewLogger(&config.Config{LogLevel: "warn", LogFormat: "json", LogFile: path})
	require.NoError(t, err)

	logger.Info("below level")
	logger.Warn("hello", "neo_id", "2000433")
	require.NoError(t, cleanup())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.NotContains(t, string(data), "below level")

	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	require.Len(t, lines, 1)
	var rec map[string]any
	require.NoError(t, json.Unmarshal([]byte(lines[0]), &rec))
	assert.Equal(t, "hello", rec["msg"])
	assert.Equal(t, "2000433", rec["neo_id"])
}

func TestNewLogger_WithoutLogFile(t *testing.T) {
	logger, cleanup, err := NewLogger(&config.Config{LogLevel: "debug", LogFormat: "text"})
	require.NoError(t, err)
	require.NoError(t, cleanup())
	assert.True(t, logger.Enabled(t.Context(), slog.LevelDebug))
	assert.Same(t, logger, slog.Default())
}

func TestNewLogger_BadLogFile(t *testing.T) {
	_, _, err := NewLogger(&config.Config{LogFile: filepath.Join(t.TempDir(), "missing", "dir", "x.log")})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "open log file")
}
