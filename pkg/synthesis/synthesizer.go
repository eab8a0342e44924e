package synthesis

import (
	"context"
	"errors"
	"io"
	"log/slog"

	"github.com/aretw0/planner/pkg/domain"
	"github.com/aretw0/planner/pkg/ports"
)

// Synthesizer turns a terminated transcript into an ArtifactModel with a single gateway call.
type Synthesizer struct {
	gateway ports.Gateway
	project domain.ProjectContext
	logger  *slog.Logger
}

// Option defines a functional option for configuring the Synthesizer.
type Option func(*Synthesizer)

// WithProjectContext adds the project context to the extraction request.
func WithProjectContext(pc domain.ProjectContext) Option {
	return func(s *Synthesizer) {
		s.project = pc
	}
}

// WithLogger sets a structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Synthesizer) {
		s.logger = logger
	}
}

// New creates a Synthesizer backed by gw.
func New(gw ports.Gateway, opts ...Option) *Synthesizer {
	s := &Synthesizer{
		gateway: gw,
		project: domain.EmptyContext(),
		logger:  slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Synthesize extracts the artifact model from tr.
// Gateway failures are returned as *domain.GatewayError, unusable replies as *domain.SynthesisError.
func (s *Synthesizer) Synthesize(ctx context.Context, tr domain.Transcript) (domain.ArtifactModel, error) {
	request := domain.NewTranscript(tr.Feature)
	request.Append(domain.UserTurn(BuildRequest(s.project, tr)))

	s.logger.Debug("requesting extraction", "turns", len(tr.Turns))
	reply, err := s.gateway.Send(ctx, request.Clone(), Instruction)
	if err != nil {
		var gwErr *domain.GatewayError
		if errors.As(err, &gwErr) {
			gwErr.Op = "synthesize"
			return domain.ArtifactModel{}, gwErr
		}
		return domain.ArtifactModel{}, &domain.GatewayError{Op: "synthesize", Err: err}
	}

	model, err := Parse(reply.Content, tr.Feature)
	if err != nil {
		s.logger.Debug("extraction rejected", "err", err)
		return domain.ArtifactModel{}, err
	}
	s.logger.Debug("extraction parsed",
		"title", model.Title,
		"stories", len(model.Stories),
		"requirements", len(model.Requirements))
	return model, nil
}
