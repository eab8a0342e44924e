package synthesis_test

import (
	"context"
	"errors"
	"testing"

	"github.com/aretw0/planner/pkg/adapters/memory"
	"github.com/aretw0/planner/pkg/domain"
	"github.com/aretw0/planner/pkg/synthesis"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func terminatedTranscript() domain.Transcript {
	tr := domain.NewTranscript("Add 2-factor authentication")
	tr.Append(domain.UserTurn(`My initial idea is: "Add 2-factor authentication". Let's start from there.`))
	tr.Append(domain.AssistantTurn("Who is the primary user?"))
	tr.Append(domain.UserTurn("Registered users, TOTP apps only."))
	return tr.Clone()
}

func TestSynthesizer_SingleCall(t *testing.T) {
	gw := memory.NewScriptedGateway(twoFactorExtraction)
	pc := domain.ProjectContext{Source: "project.context.json", Values: map[string]string{"tech_stack": "React, FastAPI"}}
	s := synthesis.New(gw, synthesis.WithProjectContext(pc))

	model, err := s.Synthesize(context.Background(), terminatedTranscript())
	require.NoError(t, err)
	assert.Equal(t, "Two-Factor Authentication", model.Title)
	assert.Equal(t, "Add 2-factor authentication", model.Description)

	calls := gw.Calls()
	require.Len(t, calls, 1)
	assert.Equal(t, synthesis.Instruction, calls[0].Instruction)
	require.Len(t, calls[0].Transcript.Turns, 1)

	request := calls[0].Transcript.Turns[0]
	assert.Equal(t, domain.RoleUser, request.Role)
	assert.Contains(t, request.Content, "tech_stack: React, FastAPI")
	assert.Contains(t, request.Content, "[User]: Registered users, TOTP apps only.")
	assert.Contains(t, request.Content, "[Assistant]: Who is the primary user?")
}

func TestSynthesizer_GreenfieldRequestHasNoContextBlock(t *testing.T) {
	gw := memory.NewScriptedGateway(twoFactorExtraction)
	_, err := synthesis.New(gw).Synthesize(context.Background(), terminatedTranscript())
	require.NoError(t, err)
	assert.NotContains(t, gw.Calls()[0].Transcript.Turns[0].Content, "project context")
}

func TestSynthesizer_GatewayFailure(t *testing.T) {
	gw := memory.NewScriptedGateway().ThenFail(errors.New("connection reset"))
	_, err := synthesis.New(gw).Synthesize(context.Background(), terminatedTranscript())

	var gwErr *domain.GatewayError
	require.True(t, errors.As(err, &gwErr))
	assert.Equal(t, "synthesize", gwErr.Op)
	assert.Equal(t, 1, gw.CallCount())
}

func TestSynthesizer_UnparseableReply(t *testing.T) {
	gw := memory.NewScriptedGateway("I could not produce a plan.")
	_, err := synthesis.New(gw).Synthesize(context.Background(), terminatedTranscript())

	var synthErr *domain.SynthesisError
	require.True(t, errors.As(err, &synthErr))
	assert.Equal(t, "I could not produce a plan.", synthErr.Raw)
}
