package domain

import (
	"fmt"
	"strings"
)

// RequirementKind classifies a requirement for the executor.
type RequirementKind string

const (
	KindUserStory     RequirementKind = "USER_STORY"
	KindSystem        RequirementKind = "SYSTEM"
	KindSecurity      RequirementKind = "SECURITY"
	KindAccessibility RequirementKind = "ACCESSIBILITY"
)

// ParseRequirementKind maps a free-form tag to a known kind. Unknown tags fall back to SYSTEM.
func ParseRequirementKind(tag string) RequirementKind {
	switch RequirementKind(strings.ToUpper(strings.ReplaceAll(strings.TrimSpace(tag), " ", "_"))) {
	case KindUserStory:
		return KindUserStory
	case KindSecurity:
		return KindSecurity
	case KindAccessibility:
		return KindAccessibility
	default:
		return KindSystem
	}
}

// UserStory is an "As a <actor>, I want <goal>, so that <benefit>" record.
type UserStory struct {
	Actor   string `json:"actor"`
	Goal    string `json:"goal"`
	Benefit string `json:"benefit"`
}

// Requirement is an EARS-style trigger/response pair.
// An empty Trigger denotes an ubiquitous requirement ("THE SYSTEM SHALL ...").
type Requirement struct {
	ID       string          `json:"id"`
	Kind     RequirementKind `json:"kind"`
	Trigger  string          `json:"trigger,omitempty"`
	Response string          `json:"response"`
}

// EARS renders the requirement in its canonical sentence form.
func (r Requirement) EARS() string {
	if r.Trigger == "" {
		return fmt.Sprintf("THE SYSTEM SHALL %s", r.Response)
	}
	return fmt.Sprintf("WHEN %s, THE SYSTEM SHALL %s", r.Trigger, r.Response)
}

// RequirementID formats the sequential identifier for the n-th requirement (1-based).
func RequirementID(n int) string {
	return fmt.Sprintf("REQ-%03d", n)
}

// ArtifactModel is the structured result of synthesis.
type ArtifactModel struct {
	Title string `json:"title"`
	Slug  string `json:"slug"`
	// Description is the feature idea the session started from.
	Description string `json:"description"`

	Stories      []UserStory   `json:"stories"`
	Requirements []Requirement `json:"requirements"`
	FileHints    []string      `json:"file_hints"`

	Problem   string   `json:"problem,omitempty"`
	Metrics   []string `json:"metrics,omitempty"`
	Notes     []string `json:"notes,omitempty"`
	EdgeCases []string `json:"edge_cases,omitempty"`
}
