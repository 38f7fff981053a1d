package runner

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/aretw0/acceptor"
	"github.com/aretw0/acceptor/pkg/automaton"
	"github.com/aretw0/acceptor/pkg/domain"
)

// Engine is the part of *acceptor.Engine the runner drives.
type Engine interface {
	Machine(name string) (automaton.Automaton, error)
	Check(ctx context.Context, name, input string) (domain.Outcome, error)
	CheckAll(ctx context.Context, input string) ([]acceptor.Result, error)
}

// Runner reads inputs from an IOHandler and checks each one against the
// selected machines until the input ends or the user quits.
type Runner struct {
	// Handler is the strategy for IO. Defaults to a TextHandler on stdin/stdout.
	Handler IOHandler

	// Logger is used for internal debug logging.
	// If nil, a no-op logger is used.
	Logger *slog.Logger

	// Machine restricts checks to one machine. Empty means all machines.
	Machine string

	// Interrupts enables per-check Ctrl+C handling.
	Interrupts bool
}

// NewRunner creates a new Runner.
func NewRunner(opts ...Option) *Runner {
	r := &Runner{
		Logger: slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Run executes the read-check-print loop. It returns nil when the input ends,
// on "exit" or "quit", or when ctx is cancelled at the prompt.
func (r *Runner) Run(ctx context.Context, engine Engine) error {
	handler := r.resolveHandler()

	if r.Machine != "" {
		if _, err := engine.Machine(r.Machine); err != nil {
			return err
		}
	}

	var signals *SignalManager
	if r.Interrupts {
		signals = NewSignalManager()
		defer signals.Stop()
	}

	for {
		inputCtx := ctx
		var stopInput context.CancelFunc = func() {}
		if signals != nil {
			inputCtx, stopInput = signals.Bind(ctx)
		}
		line, err := handler.Input(inputCtx)
		stopInput()
		if err != nil {
			if errors.Is(err, io.EOF) || ctx.Err() != nil || (signals != nil && signals.Interrupted()) {
				r.Logger.Debug("runner stopped", "err", err)
				return nil
			}
			return fmt.Errorf("input error: %w", err)
		}
		if line == "exit" || line == "quit" {
			return nil
		}

		results, err := r.check(ctx, engine, signals, line)
		if err != nil {
			if sysErr := handler.SystemOutput(ctx, err.Error()); sysErr != nil {
				return sysErr
			}
			continue
		}
		if err := handler.Output(ctx, line, results); err != nil {
			return fmt.Errorf("output error: %w", err)
		}
		if ctx.Err() != nil {
			return nil
		}
	}
}

func (r *Runner) check(ctx context.Context, engine Engine, signals *SignalManager, input string) ([]acceptor.Result, error) {
	if signals != nil {
		var cancel context.CancelFunc
		ctx, cancel = signals.Bind(ctx)
		defer cancel()
		defer func() {
			if signals.Interrupted() {
				r.Logger.Debug("check interrupted", "input", input)
				signals.Reset()
			}
		}()
	}

	if r.Machine == "" {
		return engine.CheckAll(ctx, input)
	}
	a, err := engine.Machine(r.Machine)
	if err != nil {
		return nil, err
	}
	out, err := engine.Check(ctx, r.Machine, input)
	if err != nil {
		return nil, err
	}
	return []acceptor.Result{{Machine: r.Machine, Kind: a.Kind(), Outcome: out}}, nil
}

func (r *Runner) resolveHandler() IOHandler {
	if r.Handler == nil {
		r.Handler = NewTextHandler(nil, nil)
	}
	return r.Handler
}
