/*
Package ports defines the driven ports (interfaces) of the planning pipeline.

These interfaces decouple the conversation and synthesis logic from concrete providers,
so the state machine can be driven in tests by deterministic stand-ins.

# Key Interfaces

  - Gateway: Sends the transcript and a system instruction to a model, returns the next assistant Turn.
  - ArtifactSink: Receives the rendered documents once the whole pipeline succeeded.
*/
package ports
