package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/aretw0/planner/internal/presentation/tui"
	"github.com/aretw0/planner/pkg/runner"
	"github.com/muesli/termenv"
)

// reporter prints progress lines that are not part of the conversation.
type reporter interface {
	Info(format string, args ...any)
	Success(format string, args ...any)
	Warn(format string, args ...any)
}

// newReporter styles lines for a terminal, or forwards them as system events in JSON mode.
func newReporter(w io.Writer, handler runner.IOHandler, jsonMode, color bool) reporter {
	if jsonMode {
		return &systemReporter{handler: handler}
	}
	profile := termenv.Ascii
	if color {
		profile = termenv.EnvColorProfile()
	}
	return tui.NewPrinter(w, profile)
}

type systemReporter struct {
	handler runner.IOHandler
}

func (r *systemReporter) emit(format string, args ...any) {
	_ = r.handler.SystemOutput(context.Background(), fmt.Sprintf(format, args...))
}

func (r *systemReporter) Info(format string, args ...any)    { r.emit(format, args...) }
func (r *systemReporter) Success(format string, args ...any) { r.emit(format, args...) }
func (r *systemReporter) Warn(format string, args ...any)    { r.emit(format, args...) }
