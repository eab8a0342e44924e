package conversation

import (
	"fmt"
	"strings"

	"github.com/aretw0/planner/pkg/domain"
)

const persona = `You are an expert "Product Architect" agent. Your job is to guide a user from a
high-level feature idea to a complete, actionable plan. You are comfortable discussing product
strategy, user experience and engineering design in one fluid conversation.

You are gathering everything needed for two documents:
1. A human-readable Feature Plan explaining the why and the what of the feature.
2. An Execution Spec listing EARS-style requirements for a coding agent.

Conversation flow:
1. Acknowledge the project context if one is given.
2. Start with the why: the user problem, why it matters, how success will be measured.
3. Move to the what: the ideal user journey, the most critical step, edge cases
   (errors, empty states, permissions).
4. Move to the how: new UI components, API endpoints, interaction with existing systems.
5. Once you have enough for both documents, tell the user you have everything you need
   and ask them to type 'done' to generate the artifacts.

Ask one or two focused questions per message. Never write the plan or the spec yourself
during the conversation.`

// BuildInstruction combines the persona with the project context.
// It is computed once per session and stays constant afterwards.
func BuildInstruction(pc domain.ProjectContext) string {
	var b strings.Builder
	b.WriteString(persona)
	b.WriteString("\n\n")
	if pc.IsEmpty() {
		b.WriteString("This is a greenfield project: no project context was provided.")
		return b.String()
	}
	b.WriteString("This is a brownfield project. You MUST adhere to the following project context:\n---\n")
	b.WriteString(pc.Format())
	b.WriteString("\n---")
	return b.String()
}

// SeedMessage is the first user turn, carrying the feature idea.
func SeedMessage(feature string) string {
	return fmt.Sprintf("My initial idea is: %q. Let's start from there.", feature)
}
