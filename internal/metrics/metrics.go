// Package metrics records planning-run counters in a private Prometheus registry.
// A CLI run is short-lived, so the registry is exported as a textfile snapshot
// (node_exporter textfile collector format) instead of being scraped.
package metrics

import (
	"context"
	"errors"
	"time"

	"github.com/aretw0/planner/pkg/domain"
	"github.com/aretw0/planner/pkg/ports"
	"github.com/prometheus/client_golang/prometheus"
)

// Session outcomes recorded by ObserveSession.
const (
	OutcomeCompleted = "completed"
	OutcomeAbandoned = "abandoned"
	OutcomeFailed    = "failed"
)

// Metrics groups the collectors of one run.
type Metrics struct {
	Registry *prometheus.Registry

	gatewayCalls    *prometheus.CounterVec
	gatewayDuration *prometheus.HistogramVec
	turns           *prometheus.CounterVec
	transitions     *prometheus.CounterVec
	sessions        *prometheus.CounterVec
	artifacts       *prometheus.CounterVec
}

// New creates the collectors and registers them on a fresh registry.
func New() *Metrics {
	m := &Metrics{
		Registry: prometheus.NewRegistry(),
		gatewayCalls: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "planner_gateway_calls_total",
				Help: "Total number of model gateway calls",
			},
			[]string{"result"},
		),
		gatewayDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "planner_gateway_duration_seconds",
				Help:    "Duration of model gateway calls",
				Buckets: []float64{0.5, 1, 2.5, 5, 10, 20, 40, 80},
			},
			[]string{"result"},
		),
		turns: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "planner_turns_total",
				Help: "Conversation turns appended to the transcript",
			},
			[]string{"role"},
		),
		transitions: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "planner_state_transitions_total",
				Help: "Session state transitions",
			},
			[]string{"to"},
		),
		sessions: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "planner_sessions_total",
				Help: "Planning sessions by outcome",
			},
			[]string{"outcome"},
		),
		artifacts: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "planner_artifacts_total",
				Help: "Artifact files by action",
			},
			[]string{"action"},
		),
	}
	m.Registry.MustRegister(m.gatewayCalls, m.gatewayDuration, m.turns, m.transitions, m.sessions, m.artifacts)
	return m
}

// GatewayMiddleware counts and times every gateway call.
func (m *Metrics) GatewayMiddleware() ports.GatewayMiddleware {
	return func(next ports.Gateway) ports.Gateway {
		return ports.GatewayFunc(func(ctx context.Context, tr domain.Transcript, instruction string) (domain.Turn, error) {
			start := time.Now()
			turn, err := next.Send(ctx, tr, instruction)
			result := gatewayResult(err)
			m.gatewayCalls.WithLabelValues(result).Inc()
			m.gatewayDuration.WithLabelValues(result).Observe(time.Since(start).Seconds())
			return turn, err
		})
	}
}

// Hooks returns lifecycle hooks that count turns and state transitions.
func (m *Metrics) Hooks() domain.LifecycleHooks {
	return domain.LifecycleHooks{
		OnTurn: func(ctx context.Context, e *domain.TurnEvent) {
			m.turns.WithLabelValues(string(e.Turn.Role)).Inc()
		},
		OnStateChange: func(ctx context.Context, e *domain.StateEvent) {
			m.transitions.WithLabelValues(string(e.To)).Inc()
		},
	}
}

// ObserveSession records how a run ended.
func (m *Metrics) ObserveSession(outcome string) {
	m.sessions.WithLabelValues(outcome).Inc()
}

// ObserveEmit records written and skipped artifact files.
func (m *Metrics) ObserveEmit(res ports.EmitResult) {
	m.artifacts.WithLabelValues("written").Add(float64(len(res.Written)))
	m.artifacts.WithLabelValues("skipped").Add(float64(len(res.Skipped)))
}

// WriteFile atomically writes the registry in text exposition format to path.
func (m *Metrics) WriteFile(path string) error {
	return prometheus.WriteToTextfile(path, m.Registry)
}

func gatewayResult(err error) string {
	var gwErr *domain.GatewayError
	switch {
	case err == nil:
		return "ok"
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return "timeout"
	case errors.As(err, &gwErr) && gwErr.RateLimited():
		return "rate_limited"
	default:
		return "error"
	}
}
