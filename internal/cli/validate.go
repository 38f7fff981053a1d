package cli

import (
	"context"
	"fmt"
	"io"
	"os"
)

// ValidateOptions configures the validate command.
type ValidateOptions struct {
	Globals
	Path   string
	Stdout io.Writer
}

// Validate parses and builds every machine of the descriptor. All problems are
// reported together in the returned error.
func Validate(opts ValidateOptions) error {
	cfg, logger, closer, err := opts.setup()
	if err != nil {
		return err
	}
	defer closer.Close()

	stdout := opts.Stdout
	if stdout == nil {
		stdout = os.Stdout
	}

	engine, err := createEngine(context.Background(), opts.Path, engineParams{cfg: cfg, logger: logger})
	if err != nil {
		return err
	}
	defer engine.Close()

	for _, name := range engine.Machines() {
		a, _ := engine.Machine(name)
		fmt.Fprintf(stdout, "  %s (%s, %d states)\n", name, a.Kind(), len(a.States()))
	}
	fmt.Fprintln(stdout, "Descriptor is valid! ✅")
	return nil
}
