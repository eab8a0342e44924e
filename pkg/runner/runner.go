package runner

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/aretw0/planner/pkg/conversation"
	"github.com/aretw0/planner/pkg/domain"
)

// DefaultFarewell is printed when a termination token ends the dialogue.
const DefaultFarewell = "Great. I'll synthesize our conversation and generate the artifacts..."

// Runner handles the dialogue loop of a planning session using the provided IO.
// It uses an IOHandler strategy to abstract the interaction mode (Text vs JSON).
type Runner struct {
	// Handler is the strategy for IO. If nil, a TextHandler on Stdin/Stdout is used.
	Handler IOHandler

	// Logger is used for internal debug logging.
	// If nil, a no-op logger is used.
	Logger *slog.Logger

	Farewell string
}

// NewRunner creates a new Runner.
func NewRunner(opts ...Option) *Runner {
	r := &Runner{
		Logger:   slog.New(slog.NewTextHandler(io.Discard, nil)),
		Farewell: DefaultFarewell,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Run opens the session and relays turns until the user types a termination token.
// It returns nil only when the session is terminated. If the input ends or ctx is
// cancelled first, the session is abandoned and the error wraps domain.ErrSessionAbandoned.
func (r *Runner) Run(ctx context.Context, s *conversation.Session) error {
	handler := r.resolveHandler()

	reply, err := s.Open(ctx)
	if err != nil {
		return r.failed(ctx, s, err)
	}
	if err := handler.Output(ctx, reply); err != nil {
		return fmt.Errorf("output error: %w", err)
	}

	for {
		line, err := handler.Input(ctx)
		if err != nil {
			return r.abandon(ctx, s, err)
		}

		res, err := s.Submit(ctx, line)
		if err != nil {
			return r.failed(ctx, s, err)
		}
		if res.Replied {
			if err := handler.Output(ctx, res.Reply); err != nil {
				return fmt.Errorf("output error: %w", err)
			}
		}
		if res.State == domain.StateTerminated {
			r.Logger.Debug("session terminated")
			if r.Farewell != "" {
				if err := handler.SystemOutput(ctx, r.Farewell); err != nil {
					return fmt.Errorf("output error: %w", err)
				}
			}
			return nil
		}
	}
}

func (r *Runner) abandon(ctx context.Context, s *conversation.Session, cause error) error {
	s.Abandon()
	switch {
	case ctx.Err() != nil:
		r.Logger.Debug("runner input: context cancelled", "err", ctx.Err())
		return fmt.Errorf("%w: interrupted", domain.ErrSessionAbandoned)
	case errors.Is(cause, io.EOF):
		r.Logger.Debug("runner input: end of input")
		return fmt.Errorf("%w: input closed", domain.ErrSessionAbandoned)
	default:
		return fmt.Errorf("%w: input error: %v", domain.ErrSessionAbandoned, cause)
	}
}

// failed reports a session error. A failure caused by cancellation counts as an interruption.
func (r *Runner) failed(ctx context.Context, s *conversation.Session, err error) error {
	if ctx.Err() != nil {
		return r.abandon(ctx, s, err)
	}
	return err
}

// resolveHandler ensures a valid IOHandler is set.
func (r *Runner) resolveHandler() IOHandler {
	if r.Handler != nil {
		return r.Handler
	}
	th := NewTextHandler(os.Stdin, os.Stdout)
	// Memoize to prevent creating new pumps on subsequent Run() calls
	r.Handler = th
	return th
}
