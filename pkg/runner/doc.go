/*
Package runner drives a planning conversation against a console.

It is the bridge between the conversation state machine and the outside world:
it prints assistant turns, reads user lines through a pluggable IOHandler and
stops when the session terminates or the input is gone.

# Key Components

  - Runner: the dialogue loop. EOF or cancellation before a termination token abandons the session.
  - IOHandler: decouples how turns are shown and lines are read (text or JSON Lines).
  - TextHandler: interactive console usage, with optional Markdown rendering.
  - JSONHandler: structured mode for scripts and editor integrations.
  - Gateway middlewares: logging, per-call timeouts and "thinking" feedback.

# Usage

	r := runner.NewRunner(
		runner.WithInputHandler(runner.NewTextHandler(os.Stdin, os.Stdout)),
		runner.WithLogger(logger),
	)

	if err := r.Run(ctx, session); err != nil {
		return err
	}
*/
package runner
