package planner_test

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/aretw0/planner"
	"github.com/aretw0/planner/pkg/adapters/memory"
	"github.com/aretw0/planner/pkg/domain"
	"github.com/aretw0/planner/pkg/ports"
	"github.com/aretw0/planner/pkg/runner"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFacade_Integration(t *testing.T) {
	dir := t.TempDir()
	gw := memory.NewScriptedGateway("Who is affected?", "Thanks. Type 'done' when ready.", extraction)
	pc := domain.ProjectContext{Source: "project.context.json", Values: map[string]string{"tech_stack": "Go"}}

	var turns []domain.Role
	p := planner.New(gw,
		planner.WithProjectContext(pc),
		planner.WithLifecycleHooks(domain.LifecycleHooks{
			OnTurn: func(ctx context.Context, e *domain.TurnEvent) {
				turns = append(turns, e.Turn.Role)
			},
		}),
	)

	ctx := context.Background()
	var out bytes.Buffer
	tr, err := p.Converse(ctx, "Let users reset their password",
		runner.NewTextHandler(strings.NewReader("Everyone who forgets it\nquit\n"), &out))
	require.NoError(t, err)
	assert.Equal(t, 4, tr.Len())
	assert.Equal(t, []domain.Role{domain.RoleUser, domain.RoleAssistant, domain.RoleUser, domain.RoleAssistant}, turns)
	assert.Contains(t, out.String(), "Agent: Who is affected?")

	model, err := p.Synthesize(ctx, tr)
	require.NoError(t, err)
	assert.Equal(t, "Password Reset", model.Title)

	docs, err := p.Render(model)
	require.NoError(t, err)
	assert.Contains(t, docs.Spec, "- **tech_stack**: Go")

	res, err := p.Emit(ctx, dir, model, docs)
	require.NoError(t, err)
	assert.Len(t, res.Written, 3)

	plan, err := os.ReadFile(filepath.Join(dir, "password-reset.plan.md"))
	require.NoError(t, err)
	assert.Equal(t, docs.Plan, string(plan))
	assert.Equal(t, pc, p.Project())
}

func TestFacade_MiddlewareOrder(t *testing.T) {
	var order []string
	tag := func(name string) ports.GatewayMiddleware {
		return func(next ports.Gateway) ports.Gateway {
			return ports.GatewayFunc(func(ctx context.Context, tr domain.Transcript, instruction string) (domain.Turn, error) {
				order = append(order, name)
				return next.Send(ctx, tr, instruction)
			})
		}
	}

	p := planner.New(memory.NewScriptedGateway("Hello"), planner.WithMiddleware(tag("outer"), tag("inner")))
	_, err := p.NewSession("idea").Open(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"outer", "inner"}, order)
}

func TestFacade_AbandonedSessionHasNoTranscript(t *testing.T) {
	p := planner.New(memory.NewScriptedGateway("Who is affected?"))

	_, err := p.Converse(context.Background(), "idea",
		runner.NewTextHandler(strings.NewReader(""), &bytes.Buffer{}))
	assert.True(t, errors.Is(err, domain.ErrSessionAbandoned))
}
