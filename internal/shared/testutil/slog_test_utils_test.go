package testutil

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLogCapture(t *testing.T) {
	logger, logs := NewTestLogger()
	derived := logger.With("component", "roster")

	logger.Info("first")
	derived.Warn("skipping row", slog.Int("row", 3))

	records := logs.Records()
	require.Len(t, records, 2)
	assert.Equal(t, 1, logs.Count(slog.LevelWarn))

	rec, ok := logs.Find(slog.LevelWarn, "skipping")
	require.True(t, ok)
	assert.Equal(t, "roster", rec.Attrs["component"])
	assert.Equal(t, int64(3), rec.Attrs["row"])

	_, ok = logs.Find(slog.LevelError, "skipping")
	assert.False(t, ok)
}

func TestFixtures(t *testing.T) {
	dir := t.TempDir()
	path := WriteFile(t, dir, filepath.Join("nested", "r.csv"), CSV([]string{"a", "b"}, []string{"c"}))

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "a,b\nc\n", string(content))
}
