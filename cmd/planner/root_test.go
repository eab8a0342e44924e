package main

import (
	"bytes"
	"context"
	"os"
	"testing"

	"github.com/aretw0/planner/internal/cli"
	"github.com/aretw0/planner/internal/config"
	"github.com/stretchr/testify/assert"
)

func execute(t *testing.T, args ...string) (int, string, string) {
	t.Helper()
	var out, errOut bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&errOut)
	rootCmd.SetArgs(args)
	t.Cleanup(func() {
		rootCmd.SetOut(nil)
		rootCmd.SetErr(nil)
		rootCmd.SetArgs(nil)
	})
	code := Execute(context.Background())
	return code, out.String(), errOut.String()
}

func TestVersionCommand(t *testing.T) {
	code, out, _ := execute(t, "version")
	assert.Equal(t, cli.ExitOK, code)
	assert.Equal(t, "planner version dev\n", out)
}

func TestPlanRequiresFeature(t *testing.T) {
	code, _, _ := execute(t, "plan")
	assert.Equal(t, cli.ExitFailure, code)
}

func TestPlanMissingAPIKey(t *testing.T) {
	wd, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	if err := os.Chdir(t.TempDir()); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { _ = os.Chdir(wd) })
	t.Setenv(config.EnvAPIKey, "")

	code, _, errOut := execute(t, "plan", "Add", "2FA")
	assert.Equal(t, cli.ExitConfig, code)
	assert.Contains(t, errOut, "config error: OPENAI_API_KEY")
}

func TestOnlyStandardFlags(t *testing.T) {
	for _, name := range []string{"dir", "debug", "json"} {
		assert.Nil(t, rootCmd.PersistentFlags().Lookup(name), name)
		assert.Nil(t, planCmd.Flags().Lookup(name), name)
	}

	code, _, _ := execute(t, "plan", "--dir", ".", "idea")
	assert.Equal(t, cli.ExitFailure, code)
}
