package cli

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/aretw0/acceptor/internal/presentation/graph"
	"github.com/aretw0/acceptor/pkg/runner"
)

// GraphOptions configures the graph command.
type GraphOptions struct {
	Globals
	Path    string
	Machine string
	// Input, when set, is checked first and its trace is highlighted.
	Input    string
	InputSet bool

	Stdout io.Writer
}

// Graph prints the Mermaid state diagram of one machine.
func Graph(opts GraphOptions) error {
	cfg, logger, closer, err := opts.setup()
	if err != nil {
		return err
	}
	defer closer.Close()

	stdout := opts.Stdout
	if stdout == nil {
		stdout = os.Stdout
	}

	ctx := NewSignalContext(context.Background())
	defer ctx.Cancel()

	engine, err := createEngine(ctx, opts.Path, engineParams{cfg: cfg, logger: logger})
	if err != nil {
		return err
	}
	defer engine.Close()

	a, err := engine.Machine(opts.Machine)
	if err != nil {
		return err
	}

	var overlay *graph.Overlay
	if opts.InputSet {
		input, err := runner.SanitizeInput(opts.Input, 0)
		if err != nil {
			return err
		}
		out, err := engine.Check(ctx, opts.Machine, input)
		if err != nil {
			return err
		}
		logger.Debug("graph overlay", "machine", opts.Machine, "verdict", out.Verdict, "steps", out.Steps)
		overlay = graph.OverlayFromTrace(out.Trace)
	}

	_, err = fmt.Fprint(stdout, graph.GenerateMermaid(a, overlay))
	return err
}
