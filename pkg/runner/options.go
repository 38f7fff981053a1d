package runner

import "log/slog"

// Option defines a functional option for configuring the Runner.
type Option func(*Runner)

// WithLogger configures the structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(r *Runner) {
		r.Logger = logger
	}
}

// WithInputHandler configures a custom IOHandler.
func WithInputHandler(handler IOHandler) Option {
	return func(r *Runner) {
		r.Handler = handler
	}
}

// WithMachine restricts the session to one machine instead of all of them.
func WithMachine(name string) Option {
	return func(r *Runner) {
		r.Machine = name
	}
}

// WithInterrupts makes Ctrl+C abort the running check instead of the session.
// At the prompt it still ends the session.
func WithInterrupts(enabled bool) Option {
	return func(r *Runner) {
		r.Interrupts = enabled
	}
}
