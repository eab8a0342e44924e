/*
Package planner turns a raw feature idea into a specification package through a guided conversation with a language model.

A planning run has four steps. A Session interviews the user until a termination word ("done", "exit", "save", "finish", "quit" or "q") is typed. A single synthesis call then extracts an ArtifactModel from the transcript. The model is rendered into three Markdown documents, and the documents are written to disk.

# Artifacts

  - <slug>.plan.md: the human-readable Feature Plan (the why and the what).
  - <slug>.spec.md: the Execution Spec, one EARS requirement per line, for a coding agent.
  - AGENT_INSTRUCTIONS.md: a generic executor guide. It is created once and never modified.

An optional project.context.json (or .yaml) in the working directory is merged into every model call and into both documents.

# Usage

The model is reached through a ports.Gateway. The OpenAI adapter is the default; tests and embedders can inject any implementation.

	gw, err := openai.New(openai.Settings{APIKey: os.Getenv("OPENAI_API_KEY")})
	if err != nil {
		log.Fatal(err)
	}

	pc, _ := file.LoadProjectContext(".")
	p := planner.New(gw, planner.WithProjectContext(pc))

	ctx := context.Background()
	tr, err := p.Converse(ctx, "Add 2-factor authentication", runner.NewTextHandler(os.Stdin, os.Stdout))
	if err != nil {
		log.Fatal(err)
	}

	model, err := p.Synthesize(ctx, tr)
	if err != nil {
		log.Fatal(err)
	}
	docs, err := p.Render(model)
	if err != nil {
		log.Fatal(err)
	}
	if _, err := p.Emit(ctx, ".", model, docs); err != nil {
		log.Fatal(err)
	}

No document is written unless every step succeeds.
*/
package planner
