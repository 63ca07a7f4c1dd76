package logging

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decodeEntry(t *testing.T, line []byte) map[string]interface{} {
	t.Helper()
	entry := map[string]interface{}{}
	require.NoError(t, json.Unmarshal(line, &entry))
	return entry
}

func TestLoggerWritesJSON(t *testing.T) {
	var buf bytes.Buffer
	l := New(InfoLevel, &buf)

	l.Info("run finished", map[string]interface{}{
		"method":     "DFP",
		"iterations": 12,
	})

	entry := decodeEntry(t, buf.Bytes())
	assert.Equal(t, "INFO", entry["level"])
	assert.Equal(t, "run finished", entry["message"])
	assert.Equal(t, "DFP", entry["method"])
	assert.Equal(t, float64(12), entry["iterations"])
	assert.NotEmpty(t, entry["timestamp"])
}

func TestLoggerLevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	l := New(WarnLevel, &buf)

	l.Debug("dropped")
	l.Info("dropped")
	assert.Zero(t, buf.Len())

	l.Warn("kept")
	l.Error("kept")
	lines := bytes.Split(bytes.TrimSpace(buf.Bytes()), []byte{'\n'})
	assert.Len(t, lines, 2)
}

func TestLoggerWithFields(t *testing.T) {
	var buf bytes.Buffer
	base := New(InfoLevel, &buf)
	child := base.WithFields(map[string]interface{}{"component": "engine"})

	child.Info("started")
	entry := decodeEntry(t, buf.Bytes())
	assert.Equal(t, "engine", entry["component"])

	// The parent is not mutated.
	buf.Reset()
	base.Info("bare")
	entry = decodeEntry(t, buf.Bytes())
	_, ok := entry["component"]
	assert.False(t, ok)
}

func TestLoggerFieldOverride(t *testing.T) {
	var buf bytes.Buffer
	l := New(InfoLevel, &buf).WithField("method", "SD")

	l.Info("msg", map[string]interface{}{"method": "Newton"})
	entry := decodeEntry(t, buf.Bytes())
	assert.Equal(t, "Newton", entry["method"])
}

func TestLoggerWithError(t *testing.T) {
	var buf bytes.Buffer
	l := New(ErrorLevel, &buf).WithError(assert.AnError)

	l.Error("run failed")
	entry := decodeEntry(t, buf.Bytes())
	assert.Equal(t, assert.AnError.Error(), entry["error"])
}

func TestLoggerTextFormat(t *testing.T) {
	var buf bytes.Buffer
	l := New(InfoLevel, &buf)
	l.format = "text"

	l.Info("grid built", map[string]interface{}{"rows": 50, "cols": 50})

	line := buf.String()
	assert.Contains(t, line, "[INFO] grid built")
	// Fields are emitted in sorted key order.
	assert.Less(t, strings.Index(line, "cols=50"), strings.Index(line, "rows=50"))
}

func TestDiscard(t *testing.T) {
	l := Discard()
	l.Error("nobody hears this")
	// Only the absence of a panic is observable.
	assert.NotNil(t, l)
}
