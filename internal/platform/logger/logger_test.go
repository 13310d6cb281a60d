package logger

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	assert.Equal(t, Debug, ParseLevel("DEBUG"))
	assert.Equal(t, Warn, ParseLevel(" warning "))
	assert.Equal(t, Info, ParseLevel(""))
	assert.Equal(t, Info, ParseLevel("nope"))
}

func TestJSONOutput_IncludesBaseAndFields(t *testing.T) {
	var buf bytes.Buffer
	l := New(Options{Level: Info, Format: FormatJSON, App: "guiapet", Writer: &buf})

	l.With(map[string]any{"user_id": "u-1"}).Error("load pets failed", map[string]any{
		"error": errors.New("boom"),
		"":      "ignored",
	})

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "guiapet", entry["app"])
	assert.Equal(t, "u-1", entry["user_id"])
	assert.Equal(t, "boom", entry["error"])
	assert.Equal(t, "load pets failed", entry["msg"])
	assert.NotContains(t, entry, "")
}

func TestLevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	l := New(Options{Level: Warn, Writer: &buf})

	l.Info("hidden", nil)
	l.Warn("shown", nil)

	out := buf.String()
	assert.False(t, strings.Contains(out, "hidden"))
	assert.True(t, strings.Contains(out, "shown"))
}
