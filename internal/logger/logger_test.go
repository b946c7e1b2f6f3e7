package logger

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	assert.Equal(t, DEBUG, ParseLevel("debug"))
	assert.Equal(t, WARN, ParseLevel("Warning"))
	assert.Equal(t, CRITICAL, ParseLevel("crit"))
	assert.Equal(t, FATAL, ParseLevel(" fatal "))
	assert.Equal(t, INFO, ParseLevel("nonsense"))
}

func TestLevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	l := NewWriterLogger("warn", &buf)

	l.Info("hidden")
	l.Warnf("shown %d", 1)
	l.Criticalf("backend %s missing", "vulkan")

	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, "[WARN ]")
	assert.Contains(t, out, "shown 1")
	assert.Contains(t, out, "[CRIT ] logger_test.go:")
	assert.Contains(t, out, "backend vulkan missing")
}

func TestFatalUsesExitFunc(t *testing.T) {
	var buf bytes.Buffer
	l := NewWriterLogger("info", &buf)

	code := -1
	l.SetExitFunc(func(c int) { code = c })
	l.Fatal("no backend")

	assert.Equal(t, 1, code)
	assert.Contains(t, buf.String(), "[FATAL]")
}

func TestSetLevel(t *testing.T) {
	var buf bytes.Buffer
	l := NewWriterLogger("error", &buf)
	l.Debug("before")
	l.SetLevel("debug")
	l.Debug("after")

	assert.Equal(t, DEBUG, l.Level())
	assert.Equal(t, 1, strings.Count(buf.String(), "\n"))
	assert.Contains(t, buf.String(), "after")
}

func TestFileLogger(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "geogl.log")
	l, err := NewFileLogger("info", path)
	require.NoError(t, err)

	l.Info("written to file")
	l.Close()

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "written to file")
	assert.NotContains(t, string(data), "\033[")
}

func TestOrDiscard(t *testing.T) {
	assert.NotNil(t, OrDiscard(nil))
	l := Discard()
	assert.Same(t, l, OrDiscard(l))
}
