package acceptor

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"path/filepath"
	goruntime "runtime"
	"time"

	"github.com/aretw0/acceptor/internal/runtime"
	"github.com/aretw0/acceptor/pkg/adapters/file"
	"github.com/aretw0/acceptor/pkg/adapters/memory"
	"github.com/aretw0/acceptor/pkg/automaton"
	"github.com/aretw0/acceptor/pkg/domain"
	"github.com/aretw0/acceptor/pkg/ports"
	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
)

// ErrNoResultStore is returned by History when the engine keeps no history.
var ErrNoResultStore = errors.New("no result store configured")

// Engine is the high-level entry point for the acceptor library.
// It holds a set of built machines and checks inputs against them.
// An Engine is safe for concurrent use.
type Engine struct {
	loader      ports.MachineLoader
	store       ports.ResultStore
	hooks       domain.LifecycleHooks
	logger      *slog.Logger
	timeout     time.Duration
	runtimeOpts []runtime.Option
	machines    map[string]automaton.Automaton
	order       []string
	Name        string
}

// Option defines a functional option for configuring the Engine.
type Option func(*Engine)

// WithLifecycleHooks registers observability hooks.
func WithLifecycleHooks(hooks domain.LifecycleHooks) Option {
	return func(e *Engine) {
		e.hooks = hooks
	}
}

// WithLoader injects a custom MachineLoader, bypassing the descriptor file.
func WithLoader(l ports.MachineLoader) Option {
	return func(e *Engine) {
		e.loader = l
	}
}

// WithLogger sets a custom structured logger for the engine.
func WithLogger(logger *slog.Logger) Option {
	return func(e *Engine) {
		e.logger = logger
	}
}

// WithCheckTimeout bounds every check. A check that runs out of time is Cancelled.
// Zero (the default) leaves checks bounded only by their context.
func WithCheckTimeout(d time.Duration) Option {
	return func(e *Engine) {
		e.timeout = d
	}
}

// WithIgnorable replaces the symbols skipped silently in every input
// (default: newline). Call it with no symbols to skip nothing.
func WithIgnorable(symbols ...domain.Symbol) Option {
	return func(e *Engine) {
		e.runtimeOpts = append(e.runtimeOpts, runtime.WithIgnorable(symbols...))
	}
}

// WithResultStore records every check in store.
func WithResultStore(store ports.ResultStore) Option {
	return func(e *Engine) {
		e.store = store
	}
}

// New initializes a new Engine from the descriptor file at path.
// If WithLoader option is provided, path can be empty and the file is skipped.
// Every machine is built up front; all descriptor errors are reported together.
func New(path string, opts ...Option) (*Engine, error) {
	eng := &Engine{}

	for _, opt := range opts {
		opt(eng)
	}

	if eng.loader == nil {
		if path == "" {
			return nil, fmt.Errorf("path is required when no custom loader is provided")
		}
		l, err := file.NewLoader(path)
		if err != nil {
			return nil, err
		}
		eng.loader = l
	}
	if path != "" {
		eng.Name = filepath.Base(path)
	}

	if eng.logger == nil {
		eng.logger = slog.New(slog.NewJSONHandler(io.Discard, nil))
	}
	if eng.Name != "" {
		eng.logger = eng.logger.With("descriptor", eng.Name)
	}

	if err := eng.build(); err != nil {
		return nil, err
	}
	return eng, nil
}

// NewFromDefinitions initializes an Engine from definitions held in memory.
func NewFromDefinitions(defs []automaton.Definition, opts ...Option) (*Engine, error) {
	l, err := memory.NewLoader(defs...)
	if err != nil {
		return nil, err
	}
	return New("", append(opts, WithLoader(l))...)
}

// Build validates a single definition. It is automaton.Build, re-exported for
// callers that only need the facade.
func Build(def automaton.Definition) (automaton.Automaton, error) {
	return automaton.Build(def)
}

func (e *Engine) build() error {
	names, err := e.loader.ListMachines()
	if err != nil {
		return fmt.Errorf("failed to list machines: %w", err)
	}

	e.machines = make(map[string]automaton.Automaton, len(names))
	var errs []error
	for _, name := range names {
		def, err := e.loader.GetMachine(name)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		a, err := automaton.Build(def)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		e.machines[name] = a
		e.order = append(e.order, name)
		e.logger.Debug("machine built",
			"machine", name,
			"kind", a.Kind(),
			"states", len(a.States()),
			"edges", len(a.Edges()))
	}
	return errors.Join(errs...)
}

// Machines returns the machine names in descriptor order.
func (e *Engine) Machines() []string {
	return append([]string(nil), e.order...)
}

// Machine returns the built machine called name.
func (e *Engine) Machine(name string) (automaton.Automaton, error) {
	a, ok := e.machines[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", domain.ErrMachineNotFound, name)
	}
	return a, nil
}

// Check runs input through the named machine. The returned error is non-nil
// only when no such machine exists; a MalformedInput or Cancelled verdict is
// reported through Outcome.Err.
func (e *Engine) Check(ctx context.Context, name, input string) (domain.Outcome, error) {
	a, err := e.Machine(name)
	if err != nil {
		return domain.Outcome{}, err
	}
	return e.check(ctx, a, input), nil
}

// Result is the outcome of one machine in CheckAll.
type Result struct {
	Machine string         `json:"machine"`
	Kind    automaton.Kind `json:"kind"`
	Outcome domain.Outcome `json:"outcome"`
}

// CheckAll runs input through every machine concurrently.
// Results are in descriptor order.
func (e *Engine) CheckAll(ctx context.Context, input string) ([]Result, error) {
	results := make([]Result, len(e.order))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(goruntime.GOMAXPROCS(0))
	for i, name := range e.order {
		a := e.machines[name]
		g.Go(func() error {
			results[i] = Result{Machine: name, Kind: a.Kind(), Outcome: e.check(ctx, a, input)}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

func (e *Engine) check(ctx context.Context, a automaton.Automaton, input string) domain.Outcome {
	if e.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, e.timeout)
		defer cancel()
	}

	if e.hooks.OnCheckStart != nil {
		e.hooks.OnCheckStart(ctx, e.event(domain.EventCheckStart, a, input, nil))
	}

	out := runtime.Check(ctx, a, input, e.runtimeOpts...)

	if e.hooks.OnCheckEnd != nil {
		e.hooks.OnCheckEnd(ctx, e.event(domain.EventCheckEnd, a, input, &out))
	}

	e.logger.Debug("check finished",
		"machine", a.Name(),
		"kind", a.Kind(),
		"verdict", out.Verdict,
		"steps", out.Steps,
		"duration", out.Duration)

	if e.store != nil {
		rec := domain.NewRecord(uuid.NewString(), a.Name(), string(a.Kind()), input, out)
		// A cancelled check is still recorded.
		if err := e.store.Save(context.WithoutCancel(ctx), rec); err != nil {
			e.logger.Warn("failed to save check result", "machine", a.Name(), "err", err)
		}
	}
	return out
}

func (e *Engine) event(t domain.EventType, a automaton.Automaton, input string, out *domain.Outcome) *domain.CheckEvent {
	return &domain.CheckEvent{
		EventBase: domain.EventBase{Timestamp: time.Now(), Type: t},
		Machine:   a.Name(),
		Kind:      string(a.Kind()),
		Input:     input,
		Outcome:   out,
	}
}

// History returns up to limit past checks of a machine, newest first.
func (e *Engine) History(ctx context.Context, name string, limit int) ([]domain.Record, error) {
	if e.store == nil {
		return nil, ErrNoResultStore
	}
	if _, err := e.Machine(name); err != nil {
		return nil, err
	}
	return e.store.List(ctx, name, limit)
}

// Loader returns the MachineLoader the engine was built from.
func (e *Engine) Loader() ports.MachineLoader {
	return e.loader
}

// Close releases the result store, if it holds resources.
func (e *Engine) Close() error {
	if c, ok := e.store.(io.Closer); ok {
		return c.Close()
	}
	return nil
}
