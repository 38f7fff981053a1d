package runner

import (
	"context"

	"github.com/aretw0/acceptor"
)

// IOHandler defines the strategy for interacting with the user.
// This allows switching between Text (terminal) and JSON (structured) modes.
type IOHandler interface {
	// Input reads the next input string. io.EOF ends the session.
	Input(ctx context.Context) (string, error)

	// Output presents the results of checking one input.
	Output(ctx context.Context, input string, results []acceptor.Result) error

	// SystemOutput presents a meta-message (unknown machine, rejected line).
	SystemOutput(ctx context.Context, msg string) error
}

// ContentRenderer transforms markdown before it is written, e.g. into ANSI.
type ContentRenderer func(string) (string, error)
