package ports

import (
	"context"

	"github.com/aretw0/planner/pkg/domain"
)

// Gateway is the single boundary to the external model.
// Implementations must not mutate the transcript and must wrap failures in *domain.GatewayError.
type Gateway interface {
	Send(ctx context.Context, transcript domain.Transcript, instruction string) (domain.Turn, error)
}

// GatewayFunc adapts a function to the Gateway interface.
type GatewayFunc func(ctx context.Context, transcript domain.Transcript, instruction string) (domain.Turn, error)

// Send calls f.
func (f GatewayFunc) Send(ctx context.Context, transcript domain.Transcript, instruction string) (domain.Turn, error) {
	return f(ctx, transcript, instruction)
}

// GatewayMiddleware decorates a Gateway (logging, metrics, timeouts).
type GatewayMiddleware func(next Gateway) Gateway

// Chain applies middlewares so that the first one is the outermost.
func Chain(gw Gateway, mws ...GatewayMiddleware) Gateway {
	for i := len(mws) - 1; i >= 0; i-- {
		gw = mws[i](gw)
	}
	return gw
}
