package domain

import (
	"fmt"
	"strings"
)

// Role identifies the speaker of a Turn.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Turn is one exchange unit of the conversation.
type Turn struct {
	Role    Role   `json:"role"`
	Content string `json:"content"`
}

// UserTurn builds a Turn spoken by the user.
func UserTurn(content string) Turn {
	return Turn{Role: RoleUser, Content: content}
}

// AssistantTurn builds a Turn spoken by the model.
func AssistantTurn(content string) Turn {
	return Turn{Role: RoleAssistant, Content: content}
}

// Transcript is the ordered record of a single planning conversation.
type Transcript struct {
	// Feature is the free-text idea the session was started with.
	Feature string `json:"feature"`
	Turns   []Turn `json:"turns"`
}

// NewTranscript creates an empty transcript for the given feature idea.
func NewTranscript(feature string) *Transcript {
	return &Transcript{Feature: feature}
}

// Append adds a turn at the end of the transcript.
func (t *Transcript) Append(turn Turn) {
	t.Turns = append(t.Turns, turn)
}

// Len returns the number of turns recorded so far.
func (t *Transcript) Len() int {
	return len(t.Turns)
}

// Last returns the most recent turn, if any.
func (t *Transcript) Last() (Turn, bool) {
	if len(t.Turns) == 0 {
		return Turn{}, false
	}
	return t.Turns[len(t.Turns)-1], true
}

// Clone returns a deep copy so callers cannot mutate the owner's history.
func (t *Transcript) Clone() Transcript {
	turns := make([]Turn, len(t.Turns))
	copy(turns, t.Turns)
	return Transcript{Feature: t.Feature, Turns: turns}
}

// Format renders the history as a plain text block, one "[Role]: content" entry per turn.
func (t Transcript) Format() string {
	var b strings.Builder
	for i, turn := range t.Turns {
		if i > 0 {
			b.WriteString("\n")
		}
		role := string(turn.Role)
		if role != "" {
			role = strings.ToUpper(role[:1]) + role[1:]
		}
		fmt.Fprintf(&b, "[%s]: %s", role, turn.Content)
	}
	return b.String()
}
