package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/aretw0/acceptor"
	"github.com/aretw0/acceptor/internal/presentation/tui"
	"github.com/aretw0/acceptor/pkg/runner"
)

// RunOptions contains all the configuration for the run command.
type RunOptions struct {
	Globals
	Path    string
	Machine string
	JSON    bool
	// Pretty renders results as markdown. It defaults to true on a terminal.
	Pretty    bool
	PrettySet bool
	Quiet     bool

	// Stdin and Stdout default to the process streams.
	Stdin  io.Reader
	Stdout io.Writer
}

// Execute handles the run command: an interactive session that checks every
// line against the descriptor's machines.
func Execute(opts RunOptions) error {
	cfg, logger, closer, err := opts.setup()
	if err != nil {
		return err
	}
	defer closer.Close()

	stdin, stdout := opts.Stdin, opts.Stdout
	interactive := false
	if stdin == nil {
		stdin = os.Stdin
		interactive = isTerminal(os.Stdin)
	}
	if stdout == nil {
		stdout = os.Stdout
		interactive = interactive && isTerminal(os.Stdout)
	}

	sigCtx := NewSignalContext(context.Background())
	defer sigCtx.Cancel()

	engine, err := createEngine(sigCtx, opts.Path, engineParams{cfg: cfg, logger: logger})
	if err != nil {
		return err
	}
	defer engine.Close()

	quiet := opts.Quiet || opts.JSON || !interactive
	if !quiet {
		tui.PrintBanner(stdout, strings.TrimSpace(acceptor.Version))
		printSystemMessage(stdout, "Loaded %d machines from '%s'. Ctrl+D to quit.", len(engine.Machines()), opts.Path)
	}

	var handler runner.IOHandler
	if opts.JSON {
		handler = runner.NewJSONHandler(stdin, stdout)
	} else {
		pretty := interactive
		if opts.PrettySet {
			pretty = opts.Pretty
		}
		textOpts := []runner.TextHandlerOption{runner.WithTextHandlerColor(interactive)}
		if pretty {
			textOpts = append(textOpts, runner.WithTextHandlerRenderer(tui.NewRenderer()))
		}
		if !interactive {
			textOpts = append(textOpts, runner.WithTextHandlerPrompt(""))
		}
		handler = runner.NewTextHandler(stdin, stdout, textOpts...)
	}

	r := runner.NewRunner(
		runner.WithLogger(logger),
		runner.WithInputHandler(handler),
		runner.WithMachine(opts.Machine),
		// Ctrl+C stops a long check; at the prompt it ends the session.
		runner.WithInterrupts(interactive),
	)
	runErr := r.Run(sigCtx, engine)

	if !quiet {
		fmt.Fprintln(stdout)
		printSystemMessage(stdout, "Bye!")
	}
	return handleExecutionError(runErr)
}
