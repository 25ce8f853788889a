package logging

import (
	"bytes"
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"regexp"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultLogDir(t *testing.T) {
	dir := DefaultLogDir()
	assert.Contains(t, dir, ".topo")
	assert.Contains(t, dir, "logs")
}

func TestDefaultLogPath(t *testing.T) {
	path := DefaultLogPath()
	assert.Contains(t, path, "topo.log")
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	assert.Equal(t, "info", cfg.Level)
	assert.True(t, cfg.WriteToStderr)
	assert.Equal(t, 10, cfg.MaxSizeMB)
	assert.Equal(t, 5, cfg.MaxFiles)
}

func TestDebugConfig(t *testing.T) {
	cfg := DebugConfig()
	assert.Equal(t, "debug", cfg.Level)
}

func TestSetup(t *testing.T) {
	dir := t.TempDir()
	cfg := Config{
		Level:         "info",
		FilePath:      filepath.Join(dir, "topo.log"),
		MaxSizeMB:     1,
		MaxFiles:      2,
		WriteToStderr: false,
	}

	logger, cleanup, err := Setup(cfg)
	require.NoError(t, err)
	require.NotNil(t, logger)
	defer cleanup()

	logger.Info("hello", slog.String("path", "a.go"))

	data, err := os.ReadFile(cfg.FilePath)
	require.NoError(t, err)
	assert.Contains(t, string(data), "hello")
	assert.Contains(t, string(data), "a.go")
}

func TestLevelFromString(t *testing.T) {
	assert.Equal(t, slog.LevelDebug, LevelFromString("debug"))
	assert.Equal(t, slog.LevelInfo, LevelFromString("info"))
	assert.Equal(t, slog.LevelWarn, LevelFromString("warn"))
	assert.Equal(t, slog.LevelWarn, LevelFromString("warning"))
	assert.Equal(t, slog.LevelError, LevelFromString("error"))
	assert.Equal(t, slog.LevelInfo, LevelFromString("nonsense"))
}

func TestFindLogFileNotFound(t *testing.T) {
	_, err := FindLogFile(filepath.Join(t.TempDir(), "missing.log"))
	assert.Error(t, err)
}

func TestFindLogFileExplicitPath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "topo.log")
	require.NoError(t, os.WriteFile(path, []byte("{}\n"), 0o644))

	found, err := FindLogFile(path)
	require.NoError(t, err)
	assert.Equal(t, path, found)
}

func TestEnsureLogDir(t *testing.T) {
	require.NoError(t, EnsureLogDir())
	info, err := os.Stat(DefaultLogDir())
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}

func TestRotatingWriterImmediateSync(t *testing.T) {
	path := filepath.Join(t.TempDir(), "topo.log")
	w, err := NewRotatingWriter(path, 10, 3)
	require.NoError(t, err)
	defer func() { _ = w.Close() }()

	_, err = w.Write([]byte("line one\n"))
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "line one")
}

func TestRotatingWriterRotation(t *testing.T) {
	path := filepath.Join(t.TempDir(), "topo.log")
	w, err := NewRotatingWriter(path, 0, 2)
	require.NoError(t, err)
	defer func() { _ = w.Close() }()
	w.maxSize = 10

	for i := 0; i < 5; i++ {
		_, err := w.Write([]byte("0123456789\n"))
		require.NoError(t, err)
	}

	matches, err := filepath.Glob(path + ".*")
	require.NoError(t, err)
	assert.NotEmpty(t, matches)
}

func TestRotatingWriterMaxFilesLimit(t *testing.T) {
	path := filepath.Join(t.TempDir(), "topo.log")
	w, err := NewRotatingWriter(path, 0, 1)
	require.NoError(t, err)
	defer func() { _ = w.Close() }()
	w.maxSize = 5

	for i := 0; i < 10; i++ {
		_, err := w.Write([]byte("abcdef\n"))
		require.NoError(t, err)
	}

	matches, err := filepath.Glob(path + ".*")
	require.NoError(t, err)
	assert.LessOrEqual(t, len(matches), 1)
}

func TestViewerParseLineValidJSON(t *testing.T) {
	v := NewViewer(ViewerConfig{}, &bytes.Buffer{})
	entry := v.parseLine(`{"time":"2024-01-01T00:00:00Z","level":"INFO","msg":"hello","path":"a.go"}`)

	assert.True(t, entry.IsValid)
	assert.Equal(t, "INFO", entry.Level)
	assert.Equal(t, "hello", entry.Msg)
	assert.Equal(t, "a.go", entry.Attrs["path"])
}

func TestViewerParseLineInvalidJSON(t *testing.T) {
	v := NewViewer(ViewerConfig{}, &bytes.Buffer{})
	entry := v.parseLine("not json")
	assert.False(t, entry.IsValid)
	assert.Equal(t, "not json", entry.Raw)
}

func TestViewerMatchesFilterLevel(t *testing.T) {
	v := NewViewer(ViewerConfig{Level: "warn"}, &bytes.Buffer{})
	assert.False(t, v.matchesFilter(LogEntry{Level: "info", IsValid: true}))
	assert.True(t, v.matchesFilter(LogEntry{Level: "error", IsValid: true}))
}

func TestViewerMatchesFilterPattern(t *testing.T) {
	v := NewViewer(ViewerConfig{Pattern: regexp.MustCompile("boom")}, &bytes.Buffer{})
	assert.True(t, v.matchesFilter(LogEntry{Raw: "something boom happened", IsValid: true}))
	assert.False(t, v.matchesFilter(LogEntry{Raw: "all fine", IsValid: true}))
}

func TestViewerFormatEntryInvalidReturnsRaw(t *testing.T) {
	v := NewViewer(ViewerConfig{NoColor: true}, &bytes.Buffer{})
	out := v.FormatEntry(LogEntry{Raw: "raw line", IsValid: false})
	assert.Equal(t, "raw line", out)
}

func TestViewerFormatEntryValid(t *testing.T) {
	v := NewViewer(ViewerConfig{NoColor: true}, &bytes.Buffer{})
	out := v.FormatEntry(LogEntry{
		Time:    time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC),
		Level:   "info",
		Msg:     "indexed repo",
		IsValid: true,
	})
	assert.Contains(t, out, "indexed repo")
	assert.Contains(t, out, "INFO")
}

func TestViewerTail(t *testing.T) {
	path := filepath.Join(t.TempDir(), "topo.log")
	content := `{"time":"2024-01-01T00:00:00Z","level":"INFO","msg":"one"}
{"time":"2024-01-01T00:00:01Z","level":"INFO","msg":"two"}
{"time":"2024-01-01T00:00:02Z","level":"INFO","msg":"three"}
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	v := NewViewer(ViewerConfig{}, &bytes.Buffer{})
	entries, err := v.Tail(path, 2)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, "two", entries[0].Msg)
	assert.Equal(t, "three", entries[1].Msg)
}

func TestViewerTailNonexistentFile(t *testing.T) {
	v := NewViewer(ViewerConfig{}, &bytes.Buffer{})
	_, err := v.Tail(filepath.Join(t.TempDir(), "missing.log"), 10)
	assert.Error(t, err)
}

func TestViewerPrint(t *testing.T) {
	var buf bytes.Buffer
	v := NewViewer(ViewerConfig{NoColor: true}, &buf)
	v.Print([]LogEntry{{Raw: "line", IsValid: false}})
	assert.Contains(t, buf.String(), "line")
}

func TestViewerFollowRespectsCancellation(t *testing.T) {
	path := filepath.Join(t.TempDir(), "topo.log")
	require.NoError(t, os.WriteFile(path, []byte(""), 0o644))

	v := NewViewer(ViewerConfig{}, &bytes.Buffer{})
	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	entries := make(chan LogEntry, 1)
	err := v.Follow(ctx, path, entries)
	assert.NoError(t, err)
}
