package domain

import (
	"context"
	"time"
)

// EventType defines the category of the event.
type EventType string

const (
	EventTurn        EventType = "turn"
	EventStateChange EventType = "state_change"
)

// EventBase contains common fields for all events.
type EventBase struct {
	Timestamp time.Time `json:"timestamp"`
	Type      EventType `json:"type"`
}

// TurnEvent is emitted when a turn is appended to the transcript.
type TurnEvent struct {
	EventBase
	Index int  `json:"index"`
	Turn  Turn `json:"turn"`
}

// StateEvent is emitted when the session changes state.
type StateEvent struct {
	EventBase
	From SessionState `json:"from"`
	To   SessionState `json:"to"`
}

// LifecycleHooks defines callbacks for session observability.
type LifecycleHooks struct {
	OnTurn        func(context.Context, *TurnEvent)
	OnStateChange func(context.Context, *StateEvent)
}
