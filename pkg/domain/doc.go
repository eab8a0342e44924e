/*
Package domain contains the core models of the planning pipeline.

It defines the conversation record (Turn, Transcript), the optional ProjectContext,
the structured ArtifactModel produced by synthesis, the session state enum and the
error taxonomy shared by every other package. The package is kept free of I/O.

# Key Entities

  - Turn: One utterance of the user or the assistant.
  - Transcript: The ordered turns of one planning conversation plus the feature idea.
  - ProjectContext: Flattened key/value facts about the project (tech stack, design system).
  - ArtifactModel: Title, slug, user stories, EARS requirements and file hints.
*/
package domain
