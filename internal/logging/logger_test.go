package logging_test

import (
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/aretw0/acceptor/internal/logging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewWithFile_WritesJSONLines(t *testing.T) {
	path := filepath.Join(t.TempDir(), "acceptor.log")

	logger, closer, err := logging.NewWithFile(slog.LevelDebug, path)
	require.NoError(t, err)
	logger.Debug("check finished", "machine", "anbn", "error", "boom")
	require.NoError(t, closer.Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	require.Len(t, lines, 1)

	var entry map[string]any
	require.NoError(t, json.Unmarshal([]byte(lines[0]), &entry))
	assert.Equal(t, "check finished", entry["msg"])
	assert.Equal(t, "anbn", entry["machine"])
	assert.Equal(t, "boom", entry["err"], "error key is renamed")
}

func TestNewWithFile_BadPath(t *testing.T) {
	_, _, err := logging.NewWithFile(slog.LevelInfo, filepath.Join(t.TempDir(), "missing", "x.log"))
	assert.Error(t, err)
}

func TestParseLevel(t *testing.T) {
	tests := map[string]slog.Level{
		"":      slog.LevelInfo,
		"debug": slog.LevelDebug,
		"WARN":  slog.LevelWarn,
		"error": slog.LevelError,
	}
	for in, want := range tests {
		got, err := logging.ParseLevel(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}

	_, err := logging.ParseLevel("loud")
	assert.Error(t, err)
}
