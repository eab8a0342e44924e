package render

import (
	"bytes"
	_ "embed"
	"fmt"
	"strings"
	"text/template"

	"github.com/aretw0/planner/pkg/domain"
	"github.com/aretw0/planner/pkg/ports"
)

//go:embed templates/plan.md.tmpl
var planTemplate string

//go:embed templates/spec.md.tmpl
var specTemplate string

// AgentInstructions is the executor guide. It does not depend on any artifact.
//
//go:embed templates/agent_instructions.md
var AgentInstructions string

var funcs = template.FuncMap{
	"article": article,
}

var (
	planTmpl = template.Must(template.New("plan").Funcs(funcs).Parse(planTemplate))
	specTmpl = template.Must(template.New("spec").Funcs(funcs).Parse(specTemplate))
)

type contextView struct {
	Source  string
	Entries []domain.Entry
}

type view struct {
	domain.ArtifactModel
	// Context is nil when no project context was loaded, which drops the context sections.
	Context *contextView
}

// Render formats the artifact into the plan, spec and agent instruction documents.
// It is pure: equal inputs give byte-identical documents.
func Render(a domain.ArtifactModel, pc domain.ProjectContext) (ports.Documents, error) {
	if strings.TrimSpace(a.Title) == "" {
		return ports.Documents{}, &domain.RenderError{Field: "title", Reason: "must not be empty"}
	}
	if !domain.ValidSlug(a.Slug) {
		return ports.Documents{}, &domain.RenderError{Field: "slug", Reason: fmt.Sprintf("must be non-empty lowercase [a-z0-9-], got %q", a.Slug)}
	}

	v := view{ArtifactModel: a}
	if !pc.IsEmpty() {
		v.Context = &contextView{Source: pc.Source, Entries: pc.Entries()}
	}

	plan, err := execute(planTmpl, v)
	if err != nil {
		return ports.Documents{}, &domain.RenderError{Field: "plan", Reason: err.Error()}
	}
	spec, err := execute(specTmpl, v)
	if err != nil {
		return ports.Documents{}, &domain.RenderError{Field: "spec", Reason: err.Error()}
	}

	return ports.Documents{
		Plan:              plan,
		Spec:              spec,
		AgentInstructions: AgentInstructions,
	}, nil
}

func execute(t *template.Template, v view) (string, error) {
	var buf bytes.Buffer
	if err := t.Execute(&buf, v); err != nil {
		return "", err
	}
	return strings.TrimRight(buf.String(), "\n") + "\n", nil
}

func article(noun string) string {
	noun = strings.TrimSpace(noun)
	if noun == "" {
		return "a"
	}
	switch noun[0] {
	case 'a', 'e', 'i', 'o', 'u', 'A', 'E', 'I', 'O', 'U':
		return "an"
	}
	return "a"
}
