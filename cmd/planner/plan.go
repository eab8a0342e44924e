package main

import (
	"os"
	"strings"

	"github.com/aretw0/planner/internal/cli"
	"github.com/aretw0/planner/internal/config"
	"github.com/aretw0/planner/internal/logging"
	"github.com/spf13/cobra"
)

// planCmd represents the plan command
var planCmd = &cobra.Command{
	Use:   `plan "<feature idea>"`,
	Short: "Plan a feature through a guided conversation",
	Long: `Starts a conversation about the feature idea. Answer the questions, then type
'done' (or exit, save, finish, quit, q) to generate the artifacts in the current directory.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(".")
		if err != nil {
			return err
		}
		logger := logging.ForDebug(cfg.Debug)

		feature := strings.TrimSpace(strings.Join(args, " "))
		if feature == "" {
			return cmd.Usage()
		}

		_, err = cli.RunPlan(cmd.Context(), cli.PlanOptions{
			Feature:     feature,
			Dir:         ".",
			Config:      cfg,
			JSON:        cfg.JSON,
			Interactive: !cfg.JSON && cli.IsTerminal(os.Stdin, os.Stdout),
			In:          os.Stdin,
			Out:         os.Stdout,
			ErrOut:      os.Stderr,
			Logger:      logger,
		})
		return err
	},
}

func init() {
	rootCmd.AddCommand(planCmd)
}
