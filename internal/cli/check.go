package cli

import (
	"context"
	"io"
	"os"
	"strings"

	"github.com/aretw0/acceptor"
	"github.com/aretw0/acceptor/pkg/domain"
	"github.com/aretw0/acceptor/pkg/runner"
)

// Exit codes of the check command.
const (
	ExitAccepted = 0
	ExitRejected = 1
	ExitError    = 2
)

// CheckOptions configures a one-shot check.
type CheckOptions struct {
	Globals
	Path string
	// Machine selects one machine. Empty checks every machine.
	Machine string
	Inputs  []string
	JSON    bool

	Stdout io.Writer
}

// Check runs every input and prints the results. The returned code is
// ExitAccepted when everything was accepted, ExitRejected when something was
// rejected and ExitError when an input was malformed or a check timed out.
func Check(opts CheckOptions) (int, error) {
	cfg, logger, closer, err := opts.setup()
	if err != nil {
		return ExitError, err
	}
	defer closer.Close()

	stdout := opts.Stdout
	if stdout == nil {
		stdout = os.Stdout
	}

	sigCtx := NewSignalContext(context.Background())
	defer sigCtx.Cancel()

	engine, err := createEngine(sigCtx, opts.Path, engineParams{cfg: cfg, logger: logger})
	if err != nil {
		return ExitError, err
	}
	defer engine.Close()

	var handler runner.IOHandler
	if opts.JSON {
		handler = runner.NewJSONHandler(strings.NewReader(""), stdout)
	} else {
		handler = runner.NewTextHandler(strings.NewReader(""), stdout)
	}

	code := ExitAccepted
	for _, input := range opts.Inputs {
		clean, err := runner.SanitizeInput(input, 0)
		if err != nil {
			return ExitError, err
		}
		results, err := checkInput(sigCtx, engine, opts.Machine, clean)
		if err != nil {
			return ExitError, err
		}
		if err := handler.Output(sigCtx, clean, results); err != nil {
			return ExitError, err
		}
		code = max(code, ExitCode(results))
	}
	if sigCtx.Err() != nil {
		return ExitError, handleExecutionError(sigCtx.Err())
	}
	return code, nil
}

func checkInput(ctx context.Context, engine *acceptor.Engine, machine, input string) ([]acceptor.Result, error) {
	if machine == "" {
		return engine.CheckAll(ctx, input)
	}
	a, err := engine.Machine(machine)
	if err != nil {
		return nil, err
	}
	out, err := engine.Check(ctx, machine, input)
	if err != nil {
		return nil, err
	}
	return []acceptor.Result{{Machine: machine, Kind: a.Kind(), Outcome: out}}, nil
}

// ExitCode maps a batch of results to the worst exit code among them.
func ExitCode(results []acceptor.Result) int {
	code := ExitAccepted
	for _, res := range results {
		switch res.Outcome.Verdict {
		case domain.VerdictAccepted:
		case domain.VerdictRejected:
			if res.Outcome.Err() != nil {
				code = ExitError
				continue
			}
			code = max(code, ExitRejected)
		default:
			code = ExitError
		}
	}
	return code
}
