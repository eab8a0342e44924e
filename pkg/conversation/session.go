package conversation

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/aretw0/planner/pkg/domain"
	"github.com/aretw0/planner/pkg/ports"
)

// Result describes the outcome of one Submit call.
type Result struct {
	State domain.SessionState
	// Reply is the assistant turn produced for the input. Only set when Replied is true.
	Reply   domain.Turn
	Replied bool
}

// Session owns the transcript and the state of one planning conversation.
// It is not safe for concurrent use: turns are strictly sequential.
type Session struct {
	gateway     ports.Gateway
	project     domain.ProjectContext
	instruction string
	transcript  *domain.Transcript
	state       domain.SessionState
	opened      bool
	abandoned   bool
	hooks       domain.LifecycleHooks
	logger      *slog.Logger
}

// Option defines a functional option for configuring the Session.
type Option func(*Session)

// WithProjectContext merges the project context into the system instruction.
func WithProjectContext(pc domain.ProjectContext) Option {
	return func(s *Session) {
		s.project = pc
	}
}

// WithLogger sets a structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Session) {
		s.logger = logger
	}
}

// WithLifecycleHooks registers observability hooks.
func WithLifecycleHooks(hooks domain.LifecycleHooks) Option {
	return func(s *Session) {
		s.hooks = hooks
	}
}

// New creates a session for a feature idea. Call Open before Submit.
func New(gw ports.Gateway, feature string, opts ...Option) *Session {
	s := &Session{
		gateway:    gw,
		project:    domain.EmptyContext(),
		transcript: domain.NewTranscript(feature),
		state:      domain.StateActive,
		logger:     slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.instruction = BuildInstruction(s.project)
	return s
}

// Instruction returns the system instruction sent with every call.
func (s *Session) Instruction() string {
	return s.instruction
}

// State returns the current state.
func (s *Session) State() domain.SessionState {
	return s.state
}

// Feature returns the idea the session was started with.
func (s *Session) Feature() string {
	return s.transcript.Feature
}

// Open sends the seed turn and records the model's first reply.
func (s *Session) Open(ctx context.Context) (domain.Turn, error) {
	if s.abandoned {
		return domain.Turn{}, domain.ErrSessionAbandoned
	}
	if s.opened {
		return domain.Turn{}, errors.New("session already opened")
	}
	s.opened = true

	s.append(ctx, domain.UserTurn(SeedMessage(s.transcript.Feature)))
	reply, err := s.call(ctx, "open")
	if err != nil {
		return domain.Turn{}, err
	}
	return reply, nil
}

// Submit processes one line of user input.
//
// A termination token ends the session without calling the gateway. Blank input is ignored.
// Anything else is appended as a user turn and answered by the model.
func (s *Session) Submit(ctx context.Context, input string) (Result, error) {
	switch {
	case s.abandoned:
		return Result{}, domain.ErrSessionAbandoned
	case s.state.IsTerminal():
		return Result{State: s.state}, domain.ErrSessionTerminated
	case !s.opened:
		return Result{}, errors.New("session not opened")
	}

	if IsTerminationToken(input) {
		s.transition(ctx, domain.StateTerminated)
		s.logger.Debug("session terminated by user", "turns", s.transcript.Len())
		return Result{State: s.state}, nil
	}

	text := strings.TrimSpace(input)
	if text == "" {
		return Result{State: s.state}, nil
	}

	s.append(ctx, domain.UserTurn(text))
	reply, err := s.call(ctx, "turn")
	if err != nil {
		return Result{}, err
	}
	return Result{State: s.state, Reply: reply, Replied: true}, nil
}

// Transcript returns a read-only copy of the history once the session is terminated.
func (s *Session) Transcript() (domain.Transcript, error) {
	if s.abandoned {
		return domain.Transcript{}, domain.ErrSessionAbandoned
	}
	if !s.state.IsTerminal() {
		return domain.Transcript{}, domain.ErrSessionNotTerminated
	}
	return s.transcript.Clone(), nil
}

// Abandon discards the transcript. Used on interruption; nothing is saved.
func (s *Session) Abandon() {
	if s.abandoned {
		return
	}
	s.abandoned = true
	s.logger.Debug("session abandoned", "turns", s.transcript.Len(), "state", s.state)
	s.transcript = domain.NewTranscript(s.transcript.Feature)
}

func (s *Session) call(ctx context.Context, op string) (domain.Turn, error) {
	start := time.Now()
	reply, err := s.gateway.Send(ctx, s.transcript.Clone(), s.instruction)
	if err != nil {
		n := s.transcript.Len()
		s.Abandon()
		var gwErr *domain.GatewayError
		if !errors.As(err, &gwErr) {
			err = &domain.GatewayError{Op: op, Err: err}
		}
		return domain.Turn{}, fmt.Errorf("%w (during %s, turn %d)", err, op, n)
	}
	reply.Role = domain.RoleAssistant
	s.logger.Debug("gateway reply", "op", op, "duration", time.Since(start), "chars", len(reply.Content))

	s.append(ctx, reply)
	if HasCompletionCue(reply.Content) {
		s.transition(ctx, domain.StateAwaitingTermination)
	} else {
		s.transition(ctx, domain.StateActive)
	}
	return reply, nil
}

func (s *Session) append(ctx context.Context, turn domain.Turn) {
	s.transcript.Append(turn)
	if s.hooks.OnTurn != nil {
		s.hooks.OnTurn(ctx, &domain.TurnEvent{
			EventBase: domain.EventBase{Timestamp: time.Now(), Type: domain.EventTurn},
			Index:     s.transcript.Len() - 1,
			Turn:      turn,
		})
	}
}

func (s *Session) transition(ctx context.Context, to domain.SessionState) {
	from := s.state
	if from == to {
		return
	}
	s.state = to
	if s.hooks.OnStateChange != nil {
		s.hooks.OnStateChange(ctx, &domain.StateEvent{
			EventBase: domain.EventBase{Timestamp: time.Now(), Type: domain.EventStateChange},
			From:      from,
			To:        to,
		})
	}
}
