package logging

import (
	"bytes"
	"errors"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewWriter_RenamesErrorKey(t *testing.T) {
	buf := &bytes.Buffer{}
	NewWriter(buf, slog.LevelInfo).Info("call failed", "error", errors.New("boom"))

	assert.Contains(t, buf.String(), "err=boom")
	assert.NotContains(t, buf.String(), "error=")
}

func TestNewWriter_RedactsCredentials(t *testing.T) {
	buf := &bytes.Buffer{}
	NewWriter(buf, slog.LevelInfo).Info("config", "api_key", "sk-live-123", "model", "gpt-4o", "token", "")

	out := buf.String()
	assert.NotContains(t, out, "sk-live-123")
	assert.Contains(t, out, "api_key=[REDACTED]")
	assert.Contains(t, out, "model=gpt-4o")
	assert.Contains(t, out, "token=\"\"")
}

func TestNewWriter_Level(t *testing.T) {
	buf := &bytes.Buffer{}
	NewWriter(buf, slog.LevelInfo).Debug("hidden")
	assert.Empty(t, buf.String())
}
