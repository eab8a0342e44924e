package logging

import (
	"io"
	"log/slog"
	"os"
	"strings"
)

// New creates a configured application logger.
// It writes to Stderr to keep the planning dialogue on Stdout readable.
func New(level slog.Level) *slog.Logger {
	return NewWriter(os.Stderr, level)
}

// NewWriter creates the application logger on w.
// It standardizes common keys ("error" -> "err") and masks credentials:
// any attribute whose key mentions "key", "token" or "secret" is redacted.
func NewWriter(w io.Writer, level slog.Level) *slog.Logger {
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{
		Level:       level,
		ReplaceAttr: replaceAttr,
	}))
}

// NewNop returns a no-op logger.
func NewNop() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// ForDebug returns a debug logger when enabled and a no-op logger otherwise.
func ForDebug(enabled bool) *slog.Logger {
	if enabled {
		return New(slog.LevelDebug)
	}
	return NewNop()
}

func replaceAttr(groups []string, a slog.Attr) slog.Attr {
	if a.Key == "error" {
		a.Key = "err"
	}
	if sensitive(a.Key) && a.Value.Kind() == slog.KindString && a.Value.String() != "" {
		a.Value = slog.StringValue("[REDACTED]")
	}
	return a
}

func sensitive(key string) bool {
	k := strings.ToLower(key)
	return strings.Contains(k, "key") || strings.Contains(k, "token") || strings.Contains(k, "secret")
}
