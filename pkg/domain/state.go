package domain

// SessionState is the position of a planning conversation in its state machine.
type SessionState string

const (
	StateActive              SessionState = "active"               // Normal turn-taking
	StateAwaitingTermination SessionState = "awaiting_termination" // Assistant suggested finishing
	StateTerminated          SessionState = "terminated"           // User issued a termination token
)

// IsTerminal reports whether no further turns are accepted.
func (s SessionState) IsTerminal() bool {
	return s == StateTerminated
}
