package ports

import "context"

// Documents are the three rendered artifacts of one planning run.
type Documents struct {
	Plan              string
	Spec              string
	AgentInstructions string
}

// EmitResult describes what an ArtifactSink actually wrote.
type EmitResult struct {
	Written []string // Paths created or replaced
	Skipped []string // Paths left untouched because they already existed
}

// ArtifactSink persists rendered documents for a feature slug.
// Implementations must be all-or-nothing for the slug-specific documents.
type ArtifactSink interface {
	Emit(ctx context.Context, slug string, docs Documents) (EmitResult, error)
}
