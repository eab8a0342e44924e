package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/aretw0/planner/pkg/domain"
)

// Process exit codes, one per error class.
const (
	ExitOK        = 0
	ExitFailure   = 1
	ExitConfig    = 2
	ExitGateway   = 3
	ExitSynthesis = 4
	ExitRender    = 5
	ExitAbandoned = 6
)

// ExitCode maps an error returned by RunPlan to the process exit code.
func ExitCode(err error) int {
	var (
		cfgErr    *domain.ConfigError
		gwErr     *domain.GatewayError
		synthErr  *domain.SynthesisError
		renderErr *domain.RenderError
	)
	switch {
	case err == nil:
		return ExitOK
	case errors.As(err, &cfgErr):
		return ExitConfig
	case errors.Is(err, domain.ErrSessionAbandoned):
		return ExitAbandoned
	case errors.As(err, &gwErr):
		return ExitGateway
	case errors.As(err, &synthErr):
		return ExitSynthesis
	case errors.As(err, &renderErr):
		return ExitRender
	default:
		return ExitFailure
	}
}

// Describe renders err for the terminal, prefixed with its error class.
func Describe(err error) string {
	msg := err.Error()
	class := "error"
	switch ExitCode(err) {
	case ExitConfig:
		class = "config error"
	case ExitAbandoned:
		class = "session abandoned"
	case ExitGateway:
		class = "gateway error"
	case ExitSynthesis:
		class = "synthesis error"
	case ExitRender:
		class = "render error"
	}
	if strings.HasPrefix(msg, class) {
		return msg
	}
	return fmt.Sprintf("%s: %s", class, msg)
}
