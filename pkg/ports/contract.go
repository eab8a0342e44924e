package ports

import (
	"context"
	"errors"
	"testing"

	"github.com/aretw0/planner/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// RunGatewayContract runs a suite of tests to verify that a Gateway implementation
// adheres to the defined interface contract.
// The gateway under test must be able to answer at least two calls.
func RunGatewayContract(t *testing.T, gw Gateway) {
	ctx := context.Background()
	instruction := "You are a product architect."

	t.Run("Returns Assistant Turn", func(t *testing.T) {
		tr := domain.NewTranscript("contract feature")
		tr.Append(domain.UserTurn("My initial idea is: contract feature"))

		turn, err := gw.Send(ctx, *tr, instruction)
		require.NoError(t, err, "Send should not return error")
		assert.Equal(t, domain.RoleAssistant, turn.Role)
		assert.NotEmpty(t, turn.Content)
	})

	t.Run("Does Not Mutate Transcript", func(t *testing.T) {
		tr := domain.NewTranscript("contract feature")
		tr.Append(domain.UserTurn("first"))
		tr.Append(domain.AssistantTurn("second"))
		tr.Append(domain.UserTurn("third"))
		before := tr.Clone()

		_, err := gw.Send(ctx, *tr, instruction)
		require.NoError(t, err)
		assert.Equal(t, before, tr.Clone(), "transcript must be unchanged after Send")
	})

	t.Run("Cancelled Context", func(t *testing.T) {
		cctx, cancel := context.WithCancel(ctx)
		cancel()

		tr := domain.NewTranscript("contract feature")
		tr.Append(domain.UserTurn("hello"))

		_, err := gw.Send(cctx, *tr, instruction)
		require.Error(t, err)
		var gwErr *domain.GatewayError
		assert.True(t, errors.As(err, &gwErr), "failures must be reported as *domain.GatewayError, got %T", err)
	})
}
