package file_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/aretw0/planner/pkg/adapters/file"
	"github.com/aretw0/planner/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, dir, name, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0644))
}

func TestLoadProjectContext_Missing(t *testing.T) {
	ctx, err := file.LoadProjectContext(t.TempDir())
	require.NoError(t, err)
	assert.True(t, ctx.IsEmpty())
	assert.Empty(t, ctx.Source)
	assert.Equal(t, "Starting a new greenfield plan.", file.Acknowledgement(ctx))
}

func TestLoadProjectContext_JSON(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "project.context.json", `{
		"tech_stack": "React, FastAPI, PostgreSQL",
		"product": {"name": "Acme"},
		"engineering": {"stack": "Go", "services": 3},
		"testing_framework": ["pytest", "vitest"]
	}`)

	ctx, err := file.LoadProjectContext(dir)
	require.NoError(t, err)
	assert.Equal(t, "project.context.json", ctx.Source)
	assert.Equal(t, map[string]string{
		"tech_stack":           "React, FastAPI, PostgreSQL",
		"product.name":         "Acme",
		"engineering.stack":    "Go",
		"engineering.services": "3",
		"testing_framework":    "pytest, vitest",
	}, ctx.Values)

	s := file.Summarize(ctx)
	assert.Equal(t, "Acme", s.ProductName)
	assert.Equal(t, "Go", s.Stack)
	assert.Equal(t, "Context loaded from ./project.context.json. I see we're working on 'Acme' with a Go stack.", file.Acknowledgement(ctx))
}

func TestLoadProjectContext_YAML(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "project.context.yaml", "tech_stack: React, FastAPI\ndesign_system:\n  name: Material\n  dark_mode: true\n")

	ctx, err := file.LoadProjectContext(dir)
	require.NoError(t, err)
	assert.Equal(t, "React, FastAPI", ctx.Values["tech_stack"])
	assert.Equal(t, "Material", ctx.Values["design_system.name"])
	assert.Equal(t, "true", ctx.Values["design_system.dark_mode"])
	assert.Equal(t, "Context loaded from ./project.context.yaml. I see we're working on 'this project' with a React, FastAPI stack.", file.Acknowledgement(ctx))
}

func TestLoadProjectContext_JSONWinsOverYAML(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "project.context.json", `{"tech_stack": "json"}`)
	writeFile(t, dir, "project.context.yml", "tech_stack: yaml\n")

	ctx, err := file.LoadProjectContext(dir)
	require.NoError(t, err)
	assert.Equal(t, "json", ctx.Values["tech_stack"])
}

func TestLoadProjectContext_Malformed(t *testing.T) {
	tests := []struct {
		name    string
		file    string
		content string
	}{
		{"Broken JSON", "project.context.json", `{"tech_stack": `},
		{"Top Level List", "project.context.json", `["a", "b"]`},
		{"Broken YAML", "project.context.yaml", "tech_stack: [unterminated\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			writeFile(t, dir, tt.file, tt.content)

			ctx, err := file.LoadProjectContext(dir)
			var cfgErr *domain.ConfigError
			require.ErrorAs(t, err, &cfgErr, "malformed context must be reported")
			assert.Equal(t, tt.file, cfgErr.Key)
			assert.True(t, ctx.IsEmpty(), "malformed context degrades to empty")
		})
	}
}

func TestLoadProjectContext_EmptyYAML(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "project.context.yaml", "")

	ctx, err := file.LoadProjectContext(dir)
	require.NoError(t, err)
	assert.True(t, ctx.IsEmpty())
}
