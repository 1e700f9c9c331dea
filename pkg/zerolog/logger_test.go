package zerolog

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decodeLines(t *testing.T, buf *bytes.Buffer) []map[string]interface{} {
	t.Helper()
	var entries []map[string]interface{}
	for _, line := range strings.Split(strings.TrimSpace(buf.String()), "\n") {
		if line == "" {
			continue
		}
		entry := map[string]interface{}{}
		require.NoError(t, json.Unmarshal([]byte(line), &entry))
		entries = append(entries, entry)
	}
	return entries
}

func TestLogger_KeyValues(t *testing.T) {
	zerolog.SetGlobalLevel(zerolog.DebugLevel)
	t.Cleanup(func() { zerolog.SetGlobalLevel(zerolog.InfoLevel) })

	buf := &bytes.Buffer{}
	logger := NewWithWriter("shashin", buf)

	logger.Info("photo uploaded", "uploader", "alice", "size", 42)
	logger.Error("store failed", "error", errors.New("connection refused"), 7, "ignored")

	entries := decodeLines(t, buf)
	require.Len(t, entries, 2)

	assert.Equal(t, "info", entries[0]["level"])
	assert.Equal(t, "shashin", entries[0]["service"])
	assert.Equal(t, "alice", entries[0]["uploader"])
	assert.Equal(t, float64(42), entries[0]["size"])

	assert.Equal(t, "error", entries[1]["level"])
	assert.Equal(t, "connection refused", entries[1]["error"])
	assert.NotContains(t, entries[1], "7")
}

func TestLogger_SetLevel(t *testing.T) {
	t.Cleanup(func() { zerolog.SetGlobalLevel(zerolog.InfoLevel) })

	buf := &bytes.Buffer{}
	logger := NewWithWriter("shashin", buf)

	logger.SetLevel("WARN")
	logger.Info("hidden")
	logger.Debug("hidden")
	logger.Warn("shown")

	entries := decodeLines(t, buf)
	require.Len(t, entries, 1)
	assert.Equal(t, "shown", entries[0]["message"])
}

func TestLogger_WithContext(t *testing.T) {
	zerolog.SetGlobalLevel(zerolog.InfoLevel)

	buf := &bytes.Buffer{}
	logger := NewWithWriter("shashin", buf).WithContext(map[string]interface{}{"request_id": "abc"})

	logger.Info("handled")

	entries := decodeLines(t, buf)
	require.Len(t, entries, 1)
	assert.Equal(t, "abc", entries[0]["request_id"])
}

func TestNewNopLogger(t *testing.T) {
	logger := NewNopLogger()
	assert.NotPanics(t, func() {
		logger.Info("nothing", "k", "v")
		logger.WithContext(map[string]interface{}{"a": 1}).Error("nothing")
	})
}
