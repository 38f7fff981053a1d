package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/aretw0/acceptor"
	httpAdapter "github.com/aretw0/acceptor/pkg/adapters/http"
	"github.com/aretw0/acceptor/pkg/domain"
	"github.com/aretw0/acceptor/pkg/observability"
)

const shutdownTimeout = 5 * time.Second

// ServeOptions configures the HTTP server.
type ServeOptions struct {
	Globals
	Path string
	Addr string

	Stdout io.Writer
}

// Serve exposes the engine over HTTP until SIGINT or SIGTERM.
func Serve(opts ServeOptions) error {
	cfg, logger, closer, err := opts.setupService()
	if err != nil {
		return err
	}
	defer closer.Close()

	stdout := opts.Stdout
	if stdout == nil {
		stdout = os.Stdout
	}

	sigCtx := NewSignalContext(context.Background())
	defer sigCtx.Cancel()

	handler, engine, err := newServeHandler(sigCtx, opts.Path, cfg, logger, prometheus.NewRegistry())
	if err != nil {
		return err
	}
	defer engine.Close()

	srv := &http.Server{
		Addr:              opts.Addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	serverErrors := make(chan error, 1)
	go func() {
		printSystemMessage(stdout, "Serving %d machines from '%s' on %s", len(engine.Machines()), opts.Path, opts.Addr)
		serverErrors <- srv.ListenAndServe()
	}()

	select {
	case err := <-serverErrors:
		return fmt.Errorf("server error: %w", err)
	case <-sigCtx.Done():
		logger.Info("shutting down", "signal", sigCtx.Signal())
		ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(ctx); err != nil {
			_ = srv.Close()
			return fmt.Errorf("graceful shutdown did not complete in %v: %w", shutdownTimeout, err)
		}
		if err := <-serverErrors; err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		printSystemMessage(stdout, "Server stopped gracefully")
		return nil
	}
}

// newServeHandler builds the engine with metrics, live events and an
// in-memory history, and returns the HTTP handler in front of it.
func newServeHandler(ctx context.Context, path string, cfg Config, logger *slog.Logger, reg *prometheus.Registry) (http.Handler, *acceptor.Engine, error) {
	metrics, err := observability.NewMetrics(reg)
	if err != nil {
		return nil, nil, err
	}
	streams := httpAdapter.NewStreamManager()

	engine, err := createEngine(ctx, path, engineParams{
		cfg:           cfg,
		logger:        logger,
		hooks:         []domain.LifecycleHooks{metrics.Hooks(), streams.Hooks()},
		memoryHistory: true,
	})
	if err != nil {
		return nil, nil, err
	}

	handler := httpAdapter.NewHandler(engine,
		httpAdapter.WithLogger(logger),
		httpAdapter.WithStreams(streams),
		httpAdapter.WithMetrics(promhttp.HandlerFor(reg, promhttp.HandlerOpts{})),
	)
	return handler, engine, nil
}
