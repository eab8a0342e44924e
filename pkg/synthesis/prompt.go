package synthesis

import (
	"strings"

	"github.com/aretw0/planner/pkg/domain"
)

// Instruction is the system instruction of the extraction call.
const Instruction = `You turn a product-planning conversation into a structured extraction.
Output ONLY Markdown, with no preamble, using exactly these sections in this order:

# Feature: <short feature name, 2 to 5 words>

## Problem
<one paragraph: the user problem and why it matters>

## Success Metrics
- <how we know it works>

## User Stories
- As a <actor>, I want <goal>, so that <benefit>.

## Requirements
- [USER_STORY | SYSTEM | SECURITY | ACCESSIBILITY] WHEN <trigger>, THE SYSTEM SHALL <response>.

## Affected Files
- <path of a file likely to be created or changed>

## Implementation Notes
- <UI components, API endpoints, integrations>

## Edge Cases
- <error handling, empty states, security concerns>

Rules:
- Create a requirement for EVERY actionable item, user story and system behaviour discussed.
- A requirement without a trigger is written "THE SYSTEM SHALL <response>".
- Keep every section heading even when it has no bullets.
- Follow the project context when one is given.`

// BuildRequest renders the single user turn of the extraction call.
func BuildRequest(pc domain.ProjectContext, tr domain.Transcript) string {
	var b strings.Builder
	if !pc.IsEmpty() {
		b.WriteString("Adhere to this project context:\n---\n")
		b.WriteString(pc.Format())
		b.WriteString("\n---\n\n")
	}
	b.WriteString("Here is our conversation history:\n")
	b.WriteString(tr.Format())
	b.WriteString("\n\nGenerate the extraction now.")
	return b.String()
}
