package runner

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"
)

var (
	// DefaultMaxInputSize is 4KB (conservative default)
	DefaultMaxInputSize = 4096
	// EnvMaxInputSize is the environment variable to override the default
	EnvMaxInputSize = "PLANNER_MAX_INPUT_SIZE"
)

var (
	ErrInputTooLarge = errors.New("input exceeds maximum allowed size")
	ErrInvalidUTF8   = errors.New("input contains invalid UTF-8 sequences")
	ErrUnsafeInput   = errors.New("input contains control or bidirectional characters")
)

// SanitizeInput applies Sanitize with the limit from MaxInputSize.
func SanitizeInput(input string) (string, error) {
	return Sanitize(input, 0)
}

// Sanitize checks a user line before it reaches the session.
// Lines longer than limit bytes are rejected, not truncated, so the transcript never
// holds a partial answer. A limit <= 0 means MaxInputSize().
// Lines holding control characters other than newline, tab and carriage return, or
// bidirectional overrides, are rejected whole: the line is never rewritten, so what the
// session sees is exactly what was typed.
func Sanitize(input string, limit int) (string, error) {
	if limit <= 0 {
		limit = MaxInputSize()
	}
	if len(input) > limit {
		return "", fmt.Errorf("%w: size=%d limit=%d", ErrInputTooLarge, len(input), limit)
	}
	if !utf8.ValidString(input) {
		return "", ErrInvalidUTF8
	}

	if i := strings.IndexFunc(input, unsafeRune); i >= 0 {
		r, _ := utf8.DecodeRuneInString(input[i:])
		return "", fmt.Errorf("%w: %U at byte %d", ErrUnsafeInput, r, i)
	}
	return input, nil
}

func unsafeRune(r rune) bool {
	switch r {
	case '\n', '\t', '\r':
		return false
	case '\u202a', '\u202b', '\u202c', '\u202d', '\u202e', '\u2066', '\u2067', '\u2068', '\u2069':
		return true
	}
	return unicode.IsControl(r)
}

// MaxInputSize returns the line limit, honouring EnvMaxInputSize when it holds a positive integer.
func MaxInputSize() int {
	if val := os.Getenv(EnvMaxInputSize); val != "" {
		if size, err := strconv.Atoi(val); err == nil && size > 0 {
			return size
		}
	}
	return DefaultMaxInputSize
}
