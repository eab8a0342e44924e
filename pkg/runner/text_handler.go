package runner

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/aretw0/planner/pkg/domain"
)

// DefaultPrompt is printed before every user line.
const DefaultPrompt = "You: "

// TextHandler implements the standard text-based interface.
type TextHandler struct {
	Writer   io.Writer
	Renderer ContentRenderer
	// Prompt is printed before reading a line. Defaults to DefaultPrompt.
	Prompt string
	// AgentLabel prefixes assistant turns.
	AgentLabel string
	// MaxInputSize caps a line in bytes. Zero means MaxInputSize().
	MaxInputSize int

	pump *linePump
}

// TextHandlerOption defines configuration for TextHandler.
type TextHandlerOption func(*TextHandler)

// WithTextHandlerRenderer configures the content renderer.
func WithTextHandlerRenderer(renderer ContentRenderer) TextHandlerOption {
	return func(h *TextHandler) {
		h.Renderer = renderer
	}
}

// WithTextHandlerPrompt overrides the input prompt.
func WithTextHandlerPrompt(prompt string) TextHandlerOption {
	return func(h *TextHandler) {
		h.Prompt = prompt
	}
}

// WithTextHandlerMaxInputSize caps the accepted line size.
func WithTextHandlerMaxInputSize(n int) TextHandlerOption {
	return func(h *TextHandler) {
		h.MaxInputSize = n
	}
}

// NewTextHandler creates a handler for standard text IO.
func NewTextHandler(r io.Reader, w io.Writer, opts ...TextHandlerOption) *TextHandler {
	if r == nil {
		r = os.Stdin
	}
	if w == nil {
		w = os.Stdout
	}
	h := &TextHandler{
		Writer:     w,
		Prompt:     DefaultPrompt,
		AgentLabel: "Agent:",
		pump:       newLinePump(r),
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

func (h *TextHandler) Output(ctx context.Context, turn domain.Turn) error {
	output := turn.Content
	if h.Renderer != nil {
		rendered, err := h.Renderer(h.AgentLabel + " " + turn.Content)
		if err == nil {
			_, err = fmt.Fprintln(h.Writer, strings.TrimSpace(rendered))
			return err
		}
	}
	_, err := fmt.Fprintf(h.Writer, "%s %s\n", h.AgentLabel, strings.TrimSpace(output))
	return err
}

func (h *TextHandler) Input(ctx context.Context) (string, error) {
	for {
		// Only show prompt if context is not yet done
		select {
		case <-ctx.Done():
			return "", ctx.Err()
		default:
			fmt.Fprint(h.Writer, h.Prompt)
		}

		text, err := h.pump.next(ctx)
		if err != nil {
			return "", err
		}

		// Sanitize Input (Limit + Control Chars)
		clean, err := Sanitize(strings.TrimSpace(text), h.MaxInputSize)
		if err != nil {
			fmt.Fprintf(h.Writer, "Error: %v. Please try again.\n", err)
			continue
		}
		return clean, nil
	}
}

// Close stops the input pump. Input returns io.EOF afterwards.
func (h *TextHandler) Close() error {
	h.pump.close()
	return nil
}

func (h *TextHandler) Signal(ctx context.Context, name string) error {
	if name == SignalThinking {
		_, err := fmt.Fprintln(h.Writer, "...")
		return err
	}
	return nil
}

func (h *TextHandler) SystemOutput(ctx context.Context, msg string) error {
	_, err := fmt.Fprintf(h.Writer, "\n%s\n", msg)
	return err
}
