package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"golang.org/x/term"

	"github.com/aretw0/acceptor/internal/logging"
)

// SignalContext wraps a context and captures the signal that cancelled it.
type SignalContext struct {
	context.Context
	Cancel func()
	start  sync.Once
	stop   sync.Once
	sigCh  chan os.Signal
	sigVal os.Signal
	mu     sync.Mutex
}

// NewSignalContext creates a context that is cancelled on SIGINT or SIGTERM.
// It acts as a drop-in replacement for signal.NotifyContext but allows retrieving the signal.
func NewSignalContext(parent context.Context) *SignalContext {
	ctx, cancel := context.WithCancel(parent)
	sc := &SignalContext{
		Context: ctx,
		Cancel:  cancel,
		sigCh:   make(chan os.Signal, 1),
	}

	sc.start.Do(func() {
		signal.Notify(sc.sigCh, os.Interrupt, syscall.SIGTERM)
		go func() {
			select {
			case sig := <-sc.sigCh:
				sc.mu.Lock()
				sc.sigVal = sig
				sc.mu.Unlock()
				sc.Cancel()
			case <-sc.Context.Done():
			}
			sc.stop.Do(func() {
				signal.Stop(sc.sigCh)
			})
		}()
	})

	return sc
}

// Signal returns the signal that caused the context to be cancelled, or nil.
func (sc *SignalContext) Signal() os.Signal {
	sc.mu.Lock()
	defer sc.mu.Unlock()
	return sc.sigVal
}

// Globals are the persistent flags shared by every command.
type Globals struct {
	ConfigPath string
	Debug      bool
	LogFile    string
	// Timeout overrides the configured check timeout when TimeoutSet is true.
	Timeout    time.Duration
	TimeoutSet bool
}

// setup loads the configuration and builds the logger for a command that
// prints to stdout. The returned closer releases the log file, if any.
func (g Globals) setup() (Config, *slog.Logger, io.Closer, error) {
	return g.load(true)
}

// setupService is setup for long-running servers, which log at the
// configured level.
func (g Globals) setupService() (Config, *slog.Logger, io.Closer, error) {
	return g.load(false)
}

func (g Globals) load(quiet bool) (Config, *slog.Logger, io.Closer, error) {
	cfg, err := LoadConfig(g.ConfigPath)
	if err != nil {
		return cfg, nil, nil, err
	}
	if g.LogFile != "" {
		cfg.Log.File = g.LogFile
	}
	if g.TimeoutSet {
		cfg.Timeout = g.Timeout
	}
	logger, closer, err := createLogger(cfg.Log, g.Debug, quiet)
	if err != nil {
		return cfg, nil, nil, err
	}
	return cfg, logger, closer, nil
}

// createLogger configures the application logger. When quiet is set and there
// is neither --debug nor a log file, logs below warn are dropped.
func createLogger(cfg LogConfig, debug, quiet bool) (*slog.Logger, io.Closer, error) {
	level, err := logging.ParseLevel(cfg.Level)
	if err != nil {
		return nil, nil, err
	}
	if debug {
		level = slog.LevelDebug
	}
	if cfg.File != "" {
		return logging.NewWithFile(level, cfg.File)
	}
	if quiet && !debug && level < slog.LevelWarn {
		level = slog.LevelWarn
	}
	return logging.New(level), nopCloser{}, nil
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

// printSystemMessage prints a standardized system message.
func printSystemMessage(w io.Writer, format string, args ...any) {
	fmt.Fprintf(w, ">>> %s\n", fmt.Sprintf(format, args...))
}

// isTerminal reports whether f is attached to a terminal.
func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}

func isInterrupted(err error) bool {
	return errors.Is(err, context.Canceled) || errors.Is(err, io.EOF)
}

func handleExecutionError(err error) error {
	if err == nil || isInterrupted(err) {
		return nil // Exit 0 for interruptions
	}
	return err
}
