package cli

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/aretw0/acceptor/pkg/adapters/mcp"
)

// MCPOptions configures the MCP server.
type MCPOptions struct {
	Globals
	Path string
	// Transport is "stdio" or "sse".
	Transport string
	Addr      string
}

// ServeMCP exposes the engine as Model Context Protocol tools.
// Stdout carries the protocol in stdio mode, so nothing else is printed there.
func ServeMCP(opts MCPOptions) error {
	if opts.Transport != "stdio" && opts.Transport != "sse" {
		return fmt.Errorf("unknown transport: %s. Supported: stdio, sse", opts.Transport)
	}

	cfg, logger, closer, err := opts.setupService()
	if err != nil {
		return err
	}
	defer closer.Close()

	sigCtx := NewSignalContext(context.Background())
	defer sigCtx.Cancel()

	engine, err := createEngine(sigCtx, opts.Path, engineParams{cfg: cfg, logger: logger})
	if err != nil {
		return err
	}
	defer engine.Close()

	srv := mcp.NewServer(engine, logger)
	switch opts.Transport {
	case "sse":
		logger.Info("starting MCP server", "transport", "sse", "address", opts.Addr)
		if err := srv.ServeSSE(sigCtx, opts.Addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		logger.Info("MCP server stopped gracefully")
		return nil
	default:
		logger.Info("starting MCP server", "transport", "stdio")
		return handleExecutionError(srv.ServeStdio())
	}
}
