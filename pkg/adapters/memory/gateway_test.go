package memory_test

import (
	"context"
	"errors"
	"testing"

	"github.com/aretw0/planner/pkg/adapters/memory"
	"github.com/aretw0/planner/pkg/domain"
	"github.com/aretw0/planner/pkg/ports"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScriptedGateway_Contract(t *testing.T) {
	gw := memory.NewScriptedGateway().Always("Tell me more about the user problem.")
	ports.RunGatewayContract(t, gw)
}

func TestScriptedGateway_ReplaysInOrder(t *testing.T) {
	boom := errors.New("rate limited")
	gw := memory.NewScriptedGateway("first", "second").ThenFail(boom)
	ctx := context.Background()
	tr := domain.NewTranscript("f")

	turn, err := gw.Send(ctx, *tr, "sys")
	require.NoError(t, err)
	assert.Equal(t, "first", turn.Content)

	turn, err = gw.Send(ctx, *tr, "sys")
	require.NoError(t, err)
	assert.Equal(t, "second", turn.Content)

	_, err = gw.Send(ctx, *tr, "sys")
	var gwErr *domain.GatewayError
	require.ErrorAs(t, err, &gwErr)
	assert.ErrorIs(t, err, boom)

	_, err = gw.Send(ctx, *tr, "sys")
	assert.Error(t, err, "exhausted script must fail")
	assert.Equal(t, 4, gw.CallCount())
	assert.Equal(t, "sys", gw.Calls()[0].Instruction)
}

func TestScriptedGateway_EmptyReply(t *testing.T) {
	gw := memory.NewScriptedGateway("")
	_, err := gw.Send(context.Background(), domain.Transcript{}, "")
	assert.ErrorIs(t, err, domain.ErrEmptyResponse)
}
