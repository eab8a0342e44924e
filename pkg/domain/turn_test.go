package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTranscript_Format(t *testing.T) {
	tr := NewTranscript("dark mode")
	tr.Append(UserTurn("My initial idea is: dark mode"))
	tr.Append(AssistantTurn("Why does it matter?"))

	assert.Equal(t, "[User]: My initial idea is: dark mode\n[Assistant]: Why does it matter?", tr.Format())
}

func TestTranscript_CloneIsolation(t *testing.T) {
	tr := NewTranscript("x")
	tr.Append(UserTurn("a"))

	c := tr.Clone()
	c.Turns[0].Content = "changed"
	c.Turns = append(c.Turns, AssistantTurn("b"))

	require.Equal(t, 1, tr.Len())
	assert.Equal(t, "a", tr.Turns[0].Content)

	last, ok := tr.Last()
	require.True(t, ok)
	assert.Equal(t, RoleUser, last.Role)
}

func TestRequirement_EARS(t *testing.T) {
	r := Requirement{Trigger: "a user submits the form", Response: "validate every field"}
	assert.Equal(t, "WHEN a user submits the form, THE SYSTEM SHALL validate every field", r.EARS())

	r.Trigger = ""
	assert.Equal(t, "THE SYSTEM SHALL validate every field", r.EARS())
	assert.Equal(t, "REQ-007", RequirementID(7))
}

func TestParseRequirementKind(t *testing.T) {
	assert.Equal(t, KindSecurity, ParseRequirementKind("security"))
	assert.Equal(t, KindUserStory, ParseRequirementKind("User Story"))
	assert.Equal(t, KindAccessibility, ParseRequirementKind("ACCESSIBILITY"))
	assert.Equal(t, KindSystem, ParseRequirementKind("performance"))
}

func TestProjectContext_Format(t *testing.T) {
	ctx := ProjectContext{Values: map[string]string{
		"tech_stack":        "React, FastAPI",
		"design_system":     "Material",
		"engineering.stack": "Go",
	}}
	assert.Equal(t, "design_system: Material\nengineering.stack: Go\ntech_stack: React, FastAPI", ctx.Format())
	assert.True(t, EmptyContext().IsEmpty())
	assert.Equal(t, "", EmptyContext().Format())
}
