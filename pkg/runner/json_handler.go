package runner

import (
	"context"
	"encoding/json"
	"io"
	"os"
	"strings"

	"github.com/aretw0/planner/pkg/domain"
)

// Event is one JSON line written by JSONHandler.
type Event struct {
	Type    string      `json:"type"` // "turn", "system" or "signal"
	Role    domain.Role `json:"role,omitempty"`
	Content string      `json:"content,omitempty"`
	Name    string      `json:"name,omitempty"`
}

// jsonInput is the object form accepted on input lines.
type jsonInput struct {
	Input string `json:"input"`
}

// JSONHandler implements the IOHandler interface for structured JSON-Lines communication.
type JSONHandler struct {
	Writer  io.Writer
	Encoder *json.Encoder
	// MaxInputSize caps a decoded line in bytes. Zero means MaxInputSize().
	MaxInputSize int

	pump *linePump
}

// NewJSONHandler creates a handler for JSON IO.
func NewJSONHandler(r io.Reader, w io.Writer) *JSONHandler {
	if r == nil {
		r = os.Stdin
	}
	if w == nil {
		w = os.Stdout
	}
	return &JSONHandler{
		Writer:  w,
		Encoder: json.NewEncoder(w),
		pump:    newLinePump(r),
	}
}

func (h *JSONHandler) Output(ctx context.Context, turn domain.Turn) error {
	return h.Encoder.Encode(Event{Type: "turn", Role: turn.Role, Content: turn.Content})
}

// Input accepts a JSON string ("done"), an object ({"input": "done"}) or raw text.
func (h *JSONHandler) Input(ctx context.Context) (string, error) {
	for {
		line, err := h.pump.next(ctx)
		if err != nil {
			return "", err
		}
		text := decodeInputLine(strings.TrimSpace(line))

		clean, err := Sanitize(text, h.MaxInputSize)
		if err != nil {
			if encErr := h.Encoder.Encode(Event{Type: "system", Content: "rejected input: " + err.Error()}); encErr != nil {
				return "", encErr
			}
			continue
		}
		return clean, nil
	}
}

// Close stops the input pump. Input returns io.EOF afterwards.
func (h *JSONHandler) Close() error {
	h.pump.close()
	return nil
}

func (h *JSONHandler) Signal(ctx context.Context, name string) error {
	return h.Encoder.Encode(Event{Type: "signal", Name: name})
}

func (h *JSONHandler) SystemOutput(ctx context.Context, msg string) error {
	return h.Encoder.Encode(Event{Type: "system", Content: msg})
}

func decodeInputLine(text string) string {
	var s string
	if err := json.Unmarshal([]byte(text), &s); err == nil {
		return s
	}
	var obj jsonInput
	if strings.HasPrefix(text, "{") {
		if err := json.Unmarshal([]byte(text), &obj); err == nil {
			return obj.Input
		}
	}
	// Fallback: raw text (e.g. if they just sent plain text)
	return text
}
