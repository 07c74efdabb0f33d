package logging

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"primesieve/internal/config"
)

func TestNewRespectsLevel(t *testing.T) {
	var buf bytes.Buffer
	log, err := New(config.LoggingConfig{Level: "warn", Encoding: "console"}, false, &buf)
	require.NoError(t, err)

	log.Info("hidden")
	log.Warn("shown")
	require.NoError(t, log.Sync())

	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, "shown")
	assert.Contains(t, out, "WARN")
}

func TestNewVerboseEnablesDebug(t *testing.T) {
	var buf bytes.Buffer
	log, err := New(config.LoggingConfig{Level: "error", Encoding: "console"}, true, &buf)
	require.NoError(t, err)

	log.Debug("details")
	assert.Contains(t, buf.String(), "details")
}

func TestNewJSONEncoding(t *testing.T) {
	var buf bytes.Buffer
	log, err := New(config.LoggingConfig{Level: "info", Encoding: "json"}, false, &buf)
	require.NoError(t, err)

	tagged, id := WithRun(log)
	tagged.Info("compute finished")

	var entry map[string]any
	require.NoError(t, json.Unmarshal([]byte(strings.TrimSpace(buf.String())), &entry))
	assert.Equal(t, "compute finished", entry["msg"])
	assert.Equal(t, "info", entry["level"])
	assert.Equal(t, id, entry["run_id"])
	_, err = uuid.Parse(id)
	assert.NoError(t, err)
}

func TestNewRejectsBadSettings(t *testing.T) {
	_, err := New(config.LoggingConfig{Level: "chatty", Encoding: "console"}, false, &bytes.Buffer{})
	assert.Error(t, err)
	_, err = New(config.LoggingConfig{Level: "info", Encoding: "xml"}, false, &bytes.Buffer{})
	assert.Error(t, err)
}
