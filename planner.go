package planner

import (
	"context"
	"io"
	"log/slog"

	"github.com/aretw0/planner/pkg/adapters/file"
	"github.com/aretw0/planner/pkg/conversation"
	"github.com/aretw0/planner/pkg/domain"
	"github.com/aretw0/planner/pkg/ports"
	"github.com/aretw0/planner/pkg/render"
	"github.com/aretw0/planner/pkg/runner"
	"github.com/aretw0/planner/pkg/synthesis"
)

// Version is the release of the planner library and CLI. Overridden at link time.
var Version = "dev"

// Planner is the high-level entry point for the planner library.
// It binds a model gateway to a project context and exposes each step of a planning run.
type Planner struct {
	gateway     ports.Gateway
	project     domain.ProjectContext
	middlewares []ports.GatewayMiddleware
	hooks       domain.LifecycleHooks
	logger      *slog.Logger
}

// Option defines a functional option for configuring the Planner.
type Option func(*Planner)

// WithProjectContext sets the project context shared by the dialogue, the synthesis and the documents.
func WithProjectContext(pc domain.ProjectContext) Option {
	return func(p *Planner) {
		p.project = pc
	}
}

// WithMiddleware decorates every gateway call. The first middleware is the outermost.
func WithMiddleware(mws ...ports.GatewayMiddleware) Option {
	return func(p *Planner) {
		p.middlewares = append(p.middlewares, mws...)
	}
}

// WithLifecycleHooks registers observability hooks on every session.
func WithLifecycleHooks(hooks domain.LifecycleHooks) Option {
	return func(p *Planner) {
		p.hooks = hooks
	}
}

// WithLogger sets a custom structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(p *Planner) {
		p.logger = logger
	}
}

// New creates a Planner around gw.
func New(gw ports.Gateway, opts ...Option) *Planner {
	p := &Planner{
		project: domain.EmptyContext(),
		logger:  slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(p)
	}
	p.gateway = ports.Chain(gw, p.middlewares...)
	return p
}

// Project returns the bound project context.
func (p *Planner) Project() domain.ProjectContext {
	return p.project
}

// NewSession starts a dialogue about feature. Call Open on the result before submitting input.
func (p *Planner) NewSession(feature string) *conversation.Session {
	return conversation.New(p.gateway, feature,
		conversation.WithProjectContext(p.project),
		conversation.WithLogger(p.logger),
		conversation.WithLifecycleHooks(p.hooks),
	)
}

// Converse drives a session for feature over handler until the user terminates it,
// and returns the finished transcript.
func (p *Planner) Converse(ctx context.Context, feature string, handler runner.IOHandler, opts ...runner.Option) (domain.Transcript, error) {
	s := p.NewSession(feature)
	opts = append([]runner.Option{runner.WithInputHandler(handler), runner.WithLogger(p.logger)}, opts...)
	if err := runner.NewRunner(opts...).Run(ctx, s); err != nil {
		return domain.Transcript{}, err
	}
	return s.Transcript()
}

// Synthesize turns a terminated transcript into an ArtifactModel.
func (p *Planner) Synthesize(ctx context.Context, tr domain.Transcript) (domain.ArtifactModel, error) {
	return synthesis.New(p.gateway,
		synthesis.WithProjectContext(p.project),
		synthesis.WithLogger(p.logger),
	).Synthesize(ctx, tr)
}

// Render produces the three documents for a.
func (p *Planner) Render(a domain.ArtifactModel) (ports.Documents, error) {
	return render.Render(a, p.project)
}

// Emit writes the documents for a into dir.
// The plan and spec are replaced. The agent instructions are only created when absent.
func (p *Planner) Emit(ctx context.Context, dir string, a domain.ArtifactModel, docs ports.Documents) (ports.EmitResult, error) {
	var sink ports.ArtifactSink = file.NewWriter(dir, file.WithWriterLogger(p.logger))
	return sink.Emit(ctx, a.Slug, docs)
}
