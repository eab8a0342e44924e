package runner

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"testing"
	"time"

	"github.com/aretw0/planner/pkg/adapters/memory"
	"github.com/aretw0/planner/pkg/domain"
	"github.com/aretw0/planner/pkg/ports"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoggingMiddleware(t *testing.T) {
	logs := &bytes.Buffer{}
	logger := slog.New(slog.NewTextHandler(logs, &slog.HandlerOptions{Level: slog.LevelDebug}))

	gw := ports.Chain(memory.NewScriptedGateway("hi").ThenFail(errors.New("boom")), LoggingMiddleware(logger))
	tr := domain.NewTranscript("idea")
	tr.Append(domain.UserTurn("hello"))

	_, err := gw.Send(context.Background(), tr.Clone(), "sys")
	require.NoError(t, err)
	_, err = gw.Send(context.Background(), tr.Clone(), "sys")
	require.Error(t, err)

	assert.Contains(t, logs.String(), "msg=\"gateway call\"")
	assert.Contains(t, logs.String(), "msg=\"gateway call failed\"")
	assert.Contains(t, logs.String(), "boom")
}

func TestTimeoutMiddleware(t *testing.T) {
	slow := ports.GatewayFunc(func(ctx context.Context, tr domain.Transcript, instruction string) (domain.Turn, error) {
		<-ctx.Done()
		return domain.Turn{}, ctx.Err()
	})
	gw := ports.Chain(slow, TimeoutMiddleware(10*time.Millisecond))

	_, err := gw.Send(context.Background(), domain.Transcript{}, "")

	var gwErr *domain.GatewayError
	require.True(t, errors.As(err, &gwErr))
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestTimeoutMiddleware_Disabled(t *testing.T) {
	inner := memory.NewScriptedGateway("hi")
	gw := TimeoutMiddleware(0)(inner)
	assert.Same(t, inner, gw)
}

func TestThinkingMiddleware(t *testing.T) {
	h := &fakeHandler{}
	gw := ports.Chain(memory.NewScriptedGateway("hi"), ThinkingMiddleware(h))

	_, err := gw.Send(context.Background(), domain.Transcript{}, "")
	require.NoError(t, err)
	assert.Equal(t, []string{SignalThinking}, h.signals)
}
