package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/aretw0/planner"
	"github.com/aretw0/planner/internal/config"
	"github.com/aretw0/planner/internal/logging"
	"github.com/aretw0/planner/internal/metrics"
	"github.com/aretw0/planner/internal/presentation/tui"
	"github.com/aretw0/planner/pkg/adapters/file"
	"github.com/aretw0/planner/pkg/adapters/openai"
	"github.com/aretw0/planner/pkg/domain"
	"github.com/aretw0/planner/pkg/ports"
	"github.com/aretw0/planner/pkg/runner"
)

// PlanOptions contains all the configuration for the plan command.
type PlanOptions struct {
	// Feature is the initial idea typed on the command line.
	Feature string
	// Dir is where the context file is looked up and the artifacts are written.
	Dir    string
	Config config.Config

	// JSON switches the dialogue to JSON Lines on In/Out.
	JSON bool
	// Interactive enables the banner, Markdown rendering, colours and "thinking" feedback.
	Interactive bool

	In     io.Reader
	Out    io.Writer
	ErrOut io.Writer
	Logger *slog.Logger

	// Gateway replaces the OpenAI client (tests, alternative providers).
	Gateway ports.Gateway
	// Metrics collects run counters. A fresh set is used when nil.
	Metrics *metrics.Metrics
}

// RunPlan executes one planning run: dialogue, synthesis, rendering and emission.
// No file is written unless every step succeeds.
func RunPlan(ctx context.Context, opts PlanOptions) (ports.EmitResult, error) {
	opts = withDefaults(opts)
	logger := opts.Logger
	m := opts.Metrics

	defer func() {
		if opts.Config.MetricsFile == "" {
			return
		}
		if err := m.WriteFile(opts.Config.MetricsFile); err != nil {
			logger.Warn("failed to write metrics file", "path", opts.Config.MetricsFile, "err", err)
		}
	}()

	res, err := runPlan(ctx, opts, logger, m)
	switch {
	case err == nil:
		m.ObserveSession(metrics.OutcomeCompleted)
	case errors.Is(err, domain.ErrSessionAbandoned):
		m.ObserveSession(metrics.OutcomeAbandoned)
	default:
		m.ObserveSession(metrics.OutcomeFailed)
	}
	return res, err
}

func runPlan(ctx context.Context, opts PlanOptions, logger *slog.Logger, m *metrics.Metrics) (ports.EmitResult, error) {
	var none ports.EmitResult

	base, err := resolveGateway(opts)
	if err != nil {
		return none, err
	}

	handler := createHandler(opts)
	if c, ok := handler.(io.Closer); ok {
		defer c.Close()
	}
	status := newReporter(opts.Out, handler, opts.JSON, opts.Interactive)

	if opts.Interactive && !opts.JSON {
		tui.PrintBanner(opts.Out)
	}

	// 1. Project context (recoverable)
	pc, warn := file.LoadProjectContext(opts.Dir)
	if warn != nil {
		logger.Warn("ignoring project context", "err", warn)
		status.Warn("Warning: %v", warn)
	}
	status.Info("Planning feature: %s", opts.Feature)
	status.Info("%s", file.Acknowledgement(pc))

	// 2. Gateway stack
	mws := []ports.GatewayMiddleware{
		runner.LoggingMiddleware(logger),
		m.GatewayMiddleware(),
		runner.TimeoutMiddleware(opts.Config.Timeout),
	}
	if opts.Interactive || opts.JSON {
		mws = append(mws, runner.ThinkingMiddleware(handler))
	}
	pl := planner.New(base,
		planner.WithProjectContext(pc),
		planner.WithMiddleware(mws...),
		planner.WithLifecycleHooks(mergeHooks(createDebugHooks(logger), m.Hooks())),
		planner.WithLogger(logger),
	)

	// 3. Dialogue
	transcript, err := pl.Converse(ctx, opts.Feature, handler)
	if err != nil {
		return none, err
	}

	// 4. Synthesis
	status.Info("Generating artifacts...")
	model, err := pl.Synthesize(ctx, transcript)
	if err != nil {
		var synthErr *domain.SynthesisError
		if errors.As(err, &synthErr) {
			fmt.Fprintf(opts.ErrOut, "--- raw model output ---\n%s\n--- end of raw model output ---\n", synthErr.Raw)
		}
		if ctx.Err() != nil {
			return none, fmt.Errorf("%w: interrupted during synthesis: %v", domain.ErrSessionAbandoned, err)
		}
		return none, err
	}

	// 5. Rendering
	docs, err := pl.Render(model)
	if err != nil {
		return none, err
	}

	// 6. Emission
	res, err := pl.Emit(ctx, opts.Dir, model, docs)
	if err != nil {
		if ctx.Err() != nil {
			return res, fmt.Errorf("%w: interrupted before writing: %v", domain.ErrSessionAbandoned, err)
		}
		return res, err
	}
	m.ObserveEmit(res)

	for _, p := range res.Written {
		status.Success("Created: ./%s", relative(opts.Dir, p))
	}
	for _, p := range res.Skipped {
		status.Info("Found:   ./%s (already exists, skipping)", relative(opts.Dir, p))
	}
	status.Success("All files generated successfully! Your artifacts are ready for an execution agent.")
	return res, nil
}

func withDefaults(opts PlanOptions) PlanOptions {
	if opts.Dir == "" {
		opts.Dir = "."
	}
	if opts.In == nil {
		opts.In = os.Stdin
	}
	if opts.Out == nil {
		opts.Out = os.Stdout
	}
	if opts.ErrOut == nil {
		opts.ErrOut = os.Stderr
	}
	if opts.Logger == nil {
		opts.Logger = logging.NewNop()
	}
	if opts.Metrics == nil {
		opts.Metrics = metrics.New()
	}
	if opts.Config.Model == "" {
		opts.Config.Model = config.DefaultModel
	}
	return opts
}

// resolveGateway returns the injected gateway or builds the OpenAI client.
// A missing API key fails here, before any prompt is shown.
func resolveGateway(opts PlanOptions) (ports.Gateway, error) {
	if opts.Gateway != nil {
		return opts.Gateway, nil
	}
	if err := opts.Config.Validate(); err != nil {
		return nil, err
	}
	gw, err := openai.New(openai.Settings{
		APIKey:  opts.Config.APIKey,
		Model:   opts.Config.Model,
		BaseURL: opts.Config.BaseURL,
	})
	if err != nil {
		return nil, err
	}
	opts.Logger.Debug("model gateway ready", "model", gw.Model(), "base_url", opts.Config.BaseURL)
	return gw, nil
}

// createHandler prepares the IOHandler for the selected mode.
func createHandler(opts PlanOptions) runner.IOHandler {
	if opts.JSON {
		h := runner.NewJSONHandler(opts.In, opts.Out)
		h.MaxInputSize = opts.Config.MaxInputSize
		return h
	}
	textOpts := []runner.TextHandlerOption{
		runner.WithTextHandlerMaxInputSize(opts.Config.MaxInputSize),
	}
	if opts.Interactive {
		textOpts = append(textOpts, runner.WithTextHandlerRenderer(tui.NewRenderer(TerminalWidth(opts.Out))))
	}
	return runner.NewTextHandler(opts.In, opts.Out, textOpts...)
}

func relative(dir, path string) string {
	if rel, err := filepath.Rel(dir, path); err == nil {
		return rel
	}
	return path
}
