package main

import (
	"context"
	"os"

	"github.com/aretw0/planner"
	"github.com/aretw0/planner/internal/cli"
	"github.com/aretw0/planner/internal/presentation/tui"
	"github.com/muesli/termenv"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "planner",
	Short: "Planner turns a feature idea into a plan and an execution spec",
	Long: `Planner interviews you about a feature idea, then writes a human-readable Feature Plan,
an EARS-style Execution Spec and a generic AGENT_INSTRUCTIONS.md for a coding agent
into the current directory.

Settings come from the environment (or a .env file): OPENAI_API_KEY is required;
OPENAI_BASE_URL, PLANNER_MODEL, PLANNER_TIMEOUT, PLANNER_DEBUG, PLANNER_JSON,
PLANNER_METRICS_FILE and PLANNER_MAX_INPUT_SIZE are optional.`,
	Version:       planner.Version,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute runs the root command and returns the process exit code.
func Execute(ctx context.Context) int {
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		profile := termenv.Ascii
		if cli.IsTerminal(os.Stdin, os.Stderr) {
			profile = termenv.EnvColorProfile()
		}
		tui.NewPrinter(rootCmd.ErrOrStderr(), profile).Error("%s", cli.Describe(err))
		return cli.ExitCode(err)
	}
	return cli.ExitOK
}
