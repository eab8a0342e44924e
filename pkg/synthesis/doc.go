// Package synthesis extracts a structured ArtifactModel from a terminated planning transcript.
//
// The model is asked once for a Markdown extraction with fixed section headings.
// The reply is parsed with goldmark; a reply missing a required section, or holding
// a story or requirement that cannot be decomposed, yields a *domain.SynthesisError
// carrying the raw text so nothing is silently dropped.
package synthesis
