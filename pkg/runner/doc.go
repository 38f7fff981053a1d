/*
Package runner implements the interactive read-check-print loop.

Each input line is checked against every machine of an engine (or a single
selected one) and the results are presented through a pluggable IOHandler.

# Key Components

  - Runner: reads inputs, runs checks, writes results.
  - TextHandler: terminal output in the classic ACCEPTED / REJECTED! /
    SYMBOL x REJECTED / TIMEDOUT! wording, optionally colored or rendered
    as markdown.
  - JSONHandler: JSON-Lines output for scripts.
  - SignalManager: lets Ctrl+C abort a long check without ending the session.

# Usage

	r := runner.NewRunner(
		runner.WithInputHandler(runner.NewTextHandler(os.Stdin, os.Stdout)),
		runner.WithInterrupts(true),
	)
	if err := r.Run(ctx, engine); err != nil {
		log.Fatal(err)
	}
*/
package runner
