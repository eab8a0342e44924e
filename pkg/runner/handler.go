package runner

import (
	"context"

	"github.com/aretw0/planner/pkg/domain"
)

// IOHandler defines the strategy for interacting with the user.
// This allows switching between Text (console) and JSON (structured) modes.
type IOHandler interface {
	// Output presents an assistant turn to the user.
	Output(ctx context.Context, turn domain.Turn) error

	// Input reads one line from the user. It returns io.EOF when the input is closed
	// and ctx.Err() when the context is cancelled while waiting.
	Input(ctx context.Context) (string, error)

	// Signal notifies the handler of an event (e.g. "thinking").
	// This is used for visual feedback without blocking input.
	Signal(ctx context.Context, name string) error

	// SystemOutput presents a meta-message to the user (status updates, file list).
	// This is distinct from conversation content.
	SystemOutput(ctx context.Context, msg string) error
}

// ContentRenderer is a function that transforms the content before outputting it.
// This allows for TUI rendering (markdown to ANSI) without coupling the core package.
type ContentRenderer func(string) (string, error)

// SignalThinking is emitted while the model is composing a reply.
const SignalThinking = "thinking"
