package logger

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func TestRingBuffer_EvictsOldestPastCapacity(t *testing.T) {
	buf := NewRingBuffer(3)

	buf.append(Entry{Message: "one"})
	buf.append(Entry{Message: "two"})
	buf.append(Entry{Message: "three"})
	buf.append(Entry{Message: "four"})

	entries := buf.Entries("")
	require.Len(t, entries, 3)
	assert.Equal(t, "two", entries[0].Message)
	assert.Equal(t, "four", entries[2].Message)
}

func TestRingBuffer_LevelFilter(t *testing.T) {
	buf := NewRingBuffer(10)

	buf.append(Entry{Level: "info", Message: "a"})
	buf.append(Entry{Level: "error", Message: "b"})
	buf.append(Entry{Level: "info", Message: "c"})

	infos := buf.Entries("info")
	require.Len(t, infos, 2)
	assert.Equal(t, "a", infos[0].Message)

	assert.Len(t, buf.Entries("error"), 1)
	assert.Len(t, buf.Entries(""), 3)
}

func TestRingBuffer_Clear(t *testing.T) {
	buf := NewRingBuffer(10)
	buf.append(Entry{Message: "a"})
	require.Equal(t, 1, buf.Len())

	buf.Clear()
	assert.Zero(t, buf.Len())
	assert.Empty(t, buf.Entries(""))
}

func TestRingBuffer_CapturesZapEntries(t *testing.T) {
	buf := NewRingBuffer(10)
	log := zap.New(buf.Core(zapcore.DebugLevel))

	log.Info("created shortened URL", zap.String("short_code", "abc123"))
	log.With(zap.String("component", "storage")).Warn("write skipped")

	entries := buf.Entries("")
	require.Len(t, entries, 2)

	assert.Equal(t, "info", entries[0].Level)
	assert.Equal(t, "created shortened URL", entries[0].Message)
	assert.Equal(t, "abc123", entries[0].Fields["short_code"])

	// Fields attached via With propagate into retained entries
	assert.Equal(t, "warn", entries[1].Level)
	assert.Equal(t, "storage", entries[1].Fields["component"])
}

func TestNew_TeesIntoBuffer(t *testing.T) {
	logFile := filepath.Join(t.TempDir(), "app.log")
	log, buf := New(logFile, 5)

	log.Info("hello")
	_ = log.Sync() // stdout sync can fail in CI, buffer capture is what matters

	entries := buf.Entries("info")
	require.Len(t, entries, 1)
	assert.Equal(t, "hello", entries[0].Message)
}
