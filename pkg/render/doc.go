// Package render turns an ArtifactModel into the Markdown documents handed to an executor agent.
//
// Rendering has no side effects; writing the documents is the job of a ports.ArtifactSink.
package render
