package logger

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestNewLevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	log, err := New(WithLevel("warn"), WithEncoding("json"), WithWriter(&buf))
	require.NoError(t, err)

	log.Info("hidden")
	log.Warn("shown", zap.String("path", "a.xml"))
	require.NoError(t, log.Sync())

	lines := bytes.Split(bytes.TrimSpace(buf.Bytes()), []byte("\n"))
	require.Len(t, lines, 1)

	var entry map[string]any
	require.NoError(t, json.Unmarshal(lines[0], &entry))
	assert.Equal(t, "warn", entry["level"])
	assert.Equal(t, "shown", entry["message"])
	assert.Equal(t, "a.xml", entry["path"])
}

func TestNewWritesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "twbstruct.log")
	log, err := New(WithFile(path), WithWriter(&bytes.Buffer{}))
	require.NoError(t, err)

	log.Info("to file")
	require.NoError(t, log.Sync())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"message":"to file"`)
}

func TestNewRejectsBadConfig(t *testing.T) {
	_, err := New(WithLevel("loud"))
	assert.Error(t, err)

	_, err = New(WithEncoding("xml"))
	assert.Error(t, err)
}
