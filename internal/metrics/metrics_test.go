package metrics

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/aretw0/planner/pkg/adapters/memory"
	"github.com/aretw0/planner/pkg/conversation"
	"github.com/aretw0/planner/pkg/domain"
	"github.com/aretw0/planner/pkg/ports"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGatewayMiddleware(t *testing.T) {
	m := New()
	gw := ports.Chain(
		memory.NewScriptedGateway("one", "two").
			ThenFail(errors.New("boom")).
			ThenFail(context.DeadlineExceeded),
		m.GatewayMiddleware(),
	)

	for i := 0; i < 4; i++ {
		_, _ = gw.Send(context.Background(), domain.Transcript{}, "")
	}

	assert.Equal(t, 2.0, testutil.ToFloat64(m.gatewayCalls.WithLabelValues("ok")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.gatewayCalls.WithLabelValues("error")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.gatewayCalls.WithLabelValues("timeout")))
	assert.Equal(t, 3, testutil.CollectAndCount(m.gatewayDuration))
}

func TestHooks(t *testing.T) {
	m := New()
	s := conversation.New(memory.NewScriptedGateway("Hi, type 'done' when ready."), "idea",
		conversation.WithLifecycleHooks(m.Hooks()))

	_, err := s.Open(context.Background())
	require.NoError(t, err)
	_, err = s.Submit(context.Background(), "done")
	require.NoError(t, err)

	assert.Equal(t, 1.0, testutil.ToFloat64(m.turns.WithLabelValues("user")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.turns.WithLabelValues("assistant")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.transitions.WithLabelValues(string(domain.StateAwaitingTermination))))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.transitions.WithLabelValues(string(domain.StateTerminated))))
}

func TestWriteFile(t *testing.T) {
	m := New()
	m.ObserveSession(OutcomeCompleted)
	m.ObserveEmit(ports.EmitResult{Written: []string{"a.plan.md", "a.spec.md"}, Skipped: []string{"AGENT_INSTRUCTIONS.md"}})

	path := filepath.Join(t.TempDir(), "planner.prom")
	require.NoError(t, m.WriteFile(path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	expected := `
# HELP planner_sessions_total Planning sessions by outcome
# TYPE planner_sessions_total counter
planner_sessions_total{outcome="completed"} 1
`
	require.NoError(t, testutil.GatherAndCompare(m.Registry, strings.NewReader(expected), "planner_sessions_total"))
	assert.Contains(t, string(data), `planner_artifacts_total{action="written"} 2`)
	assert.Contains(t, string(data), `planner_artifacts_total{action="skipped"} 1`)
}
