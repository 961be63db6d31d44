package logger

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	assert.Equal(t, DEBUG, ParseLevel("debug"))
	assert.Equal(t, WARN, ParseLevel("WARNING"))
	assert.Equal(t, ERROR, ParseLevel(" ERROR "))
	assert.Equal(t, INFO, ParseLevel("nonsense"))
	assert.Equal(t, "WARN", WARN.String())
}

func TestLoggerWritesFieldsAndFiltersLevel(t *testing.T) {
	var buf bytes.Buffer
	l, err := New(Config{Level: INFO, Output: &buf})
	require.NoError(t, err)

	l.Debug("hidden")
	l.WithFields(F("component", "api")).Info("request", F("status", 200))

	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, "msg=request")
	assert.Contains(t, out, "component=api")
	assert.Contains(t, out, "status=200")
}

func TestLoggerCreatesLogFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "tidytask.log")
	l, err := New(Config{Level: DEBUG, FilePath: path, MaxSize: 1, MaxAge: 1, MaxBackups: 1})
	require.NoError(t, err)

	l.Error("boom", F("id", "42"))
	require.NoError(t, l.Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "msg=boom")
	assert.Contains(t, string(data), "id=42")
}
