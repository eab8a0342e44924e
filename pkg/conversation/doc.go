/*
Package conversation implements the planning dialogue as an explicit state machine.

A Session owns the transcript of one run. It seeds the model with the architect persona,
the project context and the feature idea, then alternates user input and model replies
until the user types a termination token.

	Active ──ordinary input──▶ Active
	Active ──reply with completion cue──▶ AwaitingTermination ──ordinary input──▶ Active
	Active | AwaitingTermination ──done/exit/save/finish/quit/q──▶ Terminated

The assistant may suggest finishing; only the user can end the session.
*/
package conversation
