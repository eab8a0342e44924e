package runner

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/aretw0/planner/pkg/domain"
	"github.com/aretw0/planner/pkg/ports"
)

// LoggingMiddleware logs every gateway call with its duration and outcome.
func LoggingMiddleware(logger *slog.Logger) ports.GatewayMiddleware {
	return func(next ports.Gateway) ports.Gateway {
		return ports.GatewayFunc(func(ctx context.Context, tr domain.Transcript, instruction string) (domain.Turn, error) {
			start := time.Now()
			turn, err := next.Send(ctx, tr, instruction)
			attrs := []any{"turns", len(tr.Turns), "duration", time.Since(start)}
			if err != nil {
				logger.Warn("gateway call failed", append(attrs, "err", err)...)
				return turn, err
			}
			logger.Debug("gateway call", append(attrs, "reply_bytes", len(turn.Content))...)
			return turn, nil
		})
	}
}

// TimeoutMiddleware bounds every gateway call by d. A non-positive d disables it.
func TimeoutMiddleware(d time.Duration) ports.GatewayMiddleware {
	return func(next ports.Gateway) ports.Gateway {
		if d <= 0 {
			return next
		}
		return ports.GatewayFunc(func(ctx context.Context, tr domain.Transcript, instruction string) (domain.Turn, error) {
			callCtx, cancel := context.WithTimeout(ctx, d)
			defer cancel()

			turn, err := next.Send(callCtx, tr, instruction)
			if err != nil && errors.Is(callCtx.Err(), context.DeadlineExceeded) && ctx.Err() == nil {
				var gwErr *domain.GatewayError
				if !errors.As(err, &gwErr) {
					return turn, &domain.GatewayError{Op: "send", Err: err}
				}
			}
			return turn, err
		})
	}
}

// ThinkingMiddleware signals SignalThinking on the handler before each gateway call.
func ThinkingMiddleware(handler IOHandler) ports.GatewayMiddleware {
	return func(next ports.Gateway) ports.Gateway {
		return ports.GatewayFunc(func(ctx context.Context, tr domain.Transcript, instruction string) (domain.Turn, error) {
			// Feedback is best effort.
			_ = handler.Signal(ctx, SignalThinking)
			return next.Send(ctx, tr, instruction)
		})
	}
}
