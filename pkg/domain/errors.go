package domain

import (
	"errors"
	"fmt"
)

// ErrSessionAbandoned is returned when input ends or is interrupted before a termination token.
var ErrSessionAbandoned = errors.New("session abandoned before termination")

// ErrSessionNotTerminated is returned when a transcript is requested from a live session.
var ErrSessionNotTerminated = errors.New("session not terminated")

// ErrSessionTerminated is returned when input is submitted after termination.
var ErrSessionTerminated = errors.New("session already terminated")

// ErrEmptyResponse is returned by gateways when the model replies with no content.
var ErrEmptyResponse = errors.New("model returned empty content")

// ConfigError reports a missing or invalid configuration value.
type ConfigError struct {
	Key    string // Setting name (env var, file)
	Reason string
	Err    error
}

func (e *ConfigError) Error() string {
	msg := fmt.Sprintf("config error: %s: %s", e.Key, e.Reason)
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *ConfigError) Unwrap() error { return e.Err }

// GatewayError reports a failed call to the external model.
type GatewayError struct {
	Op         string // "open", "turn", "synthesize"
	StatusCode int    // HTTP status when known, 0 otherwise
	Err        error
}

func (e *GatewayError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("gateway error: %s: status %d: %v", e.Op, e.StatusCode, e.Err)
	}
	return fmt.Sprintf("gateway error: %s: %v", e.Op, e.Err)
}

func (e *GatewayError) Unwrap() error { return e.Err }

// RateLimited reports whether the provider rejected the call for quota reasons.
func (e *GatewayError) RateLimited() bool {
	return e.StatusCode == 429
}

// SynthesisError reports a model reply that cannot be decomposed into an ArtifactModel.
// Raw keeps the unparsed reply for manual recovery.
type SynthesisError struct {
	Reason string
	Raw    string
}

func (e *SynthesisError) Error() string {
	return "synthesis error: " + e.Reason
}

// RenderError reports an artifact that violates a structural invariant.
type RenderError struct {
	Field  string
	Reason string
}

func (e *RenderError) Error() string {
	return fmt.Sprintf("render error: field %q: %s", e.Field, e.Reason)
}
