package logger_test

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"outreach_backend/internal/platform/logger"
)

func TestParseLevel(t *testing.T) {
	t.Parallel()

	tests := map[string]slog.Level{
		"debug":   slog.LevelDebug,
		"INFO":    slog.LevelInfo,
		"warning": slog.LevelWarn,
		"error":   slog.LevelError,
		"":        slog.LevelInfo,
		"verbose": slog.LevelInfo,
	}
	for in, want := range tests {
		assert.Equal(t, want, logger.ParseLevel(in), in)
	}
}

func TestNew_JSONToStdout(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	l, closer, err := logger.New(logger.Config{Level: "warn", Format: "json"}, &buf)
	require.NoError(t, err)
	defer closer.Close()

	l.Info("hidden")
	l.Warn("draft degraded", "company", "Acme")

	var rec map[string]any
	require.NoError(t, json.Unmarshal(bytes.TrimSpace(buf.Bytes()), &rec))
	assert.Equal(t, "draft degraded", rec["msg"])
	assert.Equal(t, "Acme", rec["company"])
}

func TestNew_Both(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "logs", "app.log")
	var buf bytes.Buffer
	l, closer, err := logger.New(logger.Config{Output: "both", FilePath: path}, &buf)
	require.NoError(t, err)

	l.Info("server started", "port", "8080")
	require.NoError(t, closer.Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "msg=\"server started\"")
	assert.Contains(t, buf.String(), "port=8080")
}

func TestNew_FileRequiresPath(t *testing.T) {
	t.Parallel()

	_, _, err := logger.New(logger.Config{Output: "file"}, &bytes.Buffer{})
	assert.Error(t, err)
}
