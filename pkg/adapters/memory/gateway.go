package memory

import (
	"context"
	"fmt"
	"sync"

	"github.com/aretw0/planner/pkg/domain"
)

// Step is one scripted gateway outcome: either a reply or an error.
type Step struct {
	Reply string
	Err   error
}

// Call records what the gateway was asked.
type Call struct {
	Transcript  domain.Transcript
	Instruction string
}

// ScriptedGateway implements ports.Gateway by replaying a fixed script.
// It never calls the network, which makes session and synthesis tests deterministic.
// Safe for concurrent use.
type ScriptedGateway struct {
	mu       sync.Mutex
	steps    []Step
	fallback *Step
	calls    []Call
}

// NewScriptedGateway creates a gateway answering with the given replies in order.
func NewScriptedGateway(replies ...string) *ScriptedGateway {
	g := &ScriptedGateway{}
	for _, r := range replies {
		g.steps = append(g.steps, Step{Reply: r})
	}
	return g
}

// ThenFail appends a failing step to the script.
func (g *ScriptedGateway) ThenFail(err error) *ScriptedGateway {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.steps = append(g.steps, Step{Err: err})
	return g
}

// Always sets the reply returned once the script is exhausted.
func (g *ScriptedGateway) Always(reply string) *ScriptedGateway {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.fallback = &Step{Reply: reply}
	return g
}

// Send returns the next scripted reply.
func (g *ScriptedGateway) Send(ctx context.Context, transcript domain.Transcript, instruction string) (domain.Turn, error) {
	if err := ctx.Err(); err != nil {
		return domain.Turn{}, &domain.GatewayError{Op: "send", Err: err}
	}

	g.mu.Lock()
	defer g.mu.Unlock()

	g.calls = append(g.calls, Call{Transcript: transcript.Clone(), Instruction: instruction})

	var step Step
	switch {
	case len(g.steps) > 0:
		step = g.steps[0]
		g.steps = g.steps[1:]
	case g.fallback != nil:
		step = *g.fallback
	default:
		return domain.Turn{}, &domain.GatewayError{Op: "send", Err: fmt.Errorf("script exhausted after %d calls", len(g.calls)-1)}
	}

	if step.Err != nil {
		return domain.Turn{}, &domain.GatewayError{Op: "send", Err: step.Err}
	}
	if step.Reply == "" {
		return domain.Turn{}, &domain.GatewayError{Op: "send", Err: domain.ErrEmptyResponse}
	}
	return domain.AssistantTurn(step.Reply), nil
}

// Calls returns a copy of the recorded calls.
func (g *ScriptedGateway) Calls() []Call {
	g.mu.Lock()
	defer g.mu.Unlock()
	out := make([]Call, len(g.calls))
	copy(out, g.calls)
	return out
}

// CallCount returns the number of Send invocations so far.
func (g *ScriptedGateway) CallCount() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return len(g.calls)
}
