package cli

import (
	"errors"
	"fmt"
	"testing"

	"github.com/aretw0/planner/pkg/domain"
	"github.com/stretchr/testify/assert"
)

func TestExitCode(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"nil", nil, ExitOK},
		{"config", &domain.ConfigError{Key: "OPENAI_API_KEY", Reason: "not set"}, ExitConfig},
		{"gateway", fmt.Errorf("wrapped: %w", &domain.GatewayError{Op: "turn", Err: errors.New("503")}), ExitGateway},
		{"synthesis", &domain.SynthesisError{Reason: "missing section"}, ExitSynthesis},
		{"render", &domain.RenderError{Field: "slug", Reason: "empty"}, ExitRender},
		{"abandoned", fmt.Errorf("%w: input closed", domain.ErrSessionAbandoned), ExitAbandoned},
		{"other", errors.New("disk full"), ExitFailure},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ExitCode(tt.err))
		})
	}
}

func TestDescribe(t *testing.T) {
	gw := fmt.Errorf("%w (during turn, turn 3)", &domain.GatewayError{Op: "send", Err: errors.New("503")})
	assert.Equal(t, "gateway error: send: 503 (during turn, turn 3)", Describe(gw))
	assert.Equal(t, "error: disk full", Describe(errors.New("disk full")))
	assert.Equal(t, "session abandoned before termination: input closed",
		Describe(fmt.Errorf("%w: input closed", domain.ErrSessionAbandoned)))
	assert.Equal(t, "render error: field \"slug\": empty", Describe(&domain.RenderError{Field: "slug", Reason: "empty"}))
}
