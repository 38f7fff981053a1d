package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/aretw0/acceptor"
	"github.com/aretw0/acceptor/internal/presentation/graph"
	"github.com/aretw0/acceptor/internal/presentation/trace"
	"github.com/aretw0/acceptor/pkg/automaton"
	"github.com/aretw0/acceptor/pkg/domain"
	"github.com/aretw0/acceptor/pkg/runner"
)

// Engine is the part of *acceptor.Engine exposed as MCP tools.
type Engine interface {
	Machines() []string
	Machine(name string) (automaton.Automaton, error)
	Check(ctx context.Context, name, input string) (domain.Outcome, error)
	CheckAll(ctx context.Context, input string) ([]acceptor.Result, error)
}

// MachineSummary names one machine and its variant.
type MachineSummary struct {
	Name string `json:"name" jsonschema_description:"Machine name"`
	Kind string `json:"kind" jsonschema_description:"One of nfae, pda, dtm"`
}

// ListResponse is the result of list_machines.
type ListResponse struct {
	Machines []MachineSummary `json:"machines" jsonschema_description:"Machines in descriptor order"`
}

// InspectResponse is the result of inspect_machine.
type InspectResponse struct {
	Machine acceptor.MachineInfo `json:"machine" jsonschema_description:"States, alphabet and transitions"`
	Diagram string               `json:"diagram" jsonschema_description:"Mermaid state diagram"`
}

// CheckResult is one machine's verdict in check_input.
type CheckResult struct {
	Machine string `json:"machine"`
	Kind    string `json:"kind"`
	Verdict string `json:"verdict" jsonschema_description:"accepted, rejected, malformed_input or cancelled"`
	Steps   int    `json:"steps"`
	Reason  string `json:"reason,omitempty"`
	Error   string `json:"error,omitempty"`
	Trace   string `json:"trace,omitempty" jsonschema_description:"Accepting path, or deepest path on rejection"`
}

// CheckResponse is the result of check_input.
type CheckResponse struct {
	Input   string        `json:"input"`
	Results []CheckResult `json:"results"`
}

// Server wraps the engine and exposes it as an MCP Server.
type Server struct {
	engine    Engine
	mcpServer *server.MCPServer
	logger    *slog.Logger
}

// NewServer creates a new MCP Server instance.
func NewServer(engine Engine, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	s := &Server{
		engine:    engine,
		mcpServer: server.NewMCPServer("acceptor-mcp", strings.TrimSpace(acceptor.Version)),
		logger:    logger,
	}
	s.registerTools()
	s.registerResources()
	return s
}

// ServeStdio starts the server on Stdin/Stdout.
func (s *Server) ServeStdio() error {
	return server.ServeStdio(s.mcpServer)
}

// ServeSSE serves the MCP SSE transport on addr until ctx is cancelled.
func (s *Server) ServeSSE(ctx context.Context, addr string) error {
	baseURL := "http://localhost" + addr
	if !strings.HasPrefix(addr, ":") {
		baseURL = "http://" + addr
	}
	sseServer := server.NewSSEServer(s.mcpServer, server.WithBaseURL(baseURL))

	mux := http.NewServeMux()
	mux.Handle("/sse", corsMiddleware(sseServer.SSEHandler()))
	mux.Handle("/message", corsMiddleware(sseServer.MessageHandler()))

	httpServer := &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 10 * time.Second,
	}

	serverErrors := make(chan error, 1)
	go func() {
		s.logger.Info("MCP server listening (SSE)", "address", addr)
		serverErrors <- httpServer.ListenAndServe()
	}()

	select {
	case err := <-serverErrors:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("could not stop server gracefully: %w", err)
		}
		return nil
	}
}

func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (s *Server) registerTools() {
	s.mcpServer.AddTool(mcp.NewTool("list_machines",
		mcp.WithDescription("List the machines of the loaded descriptor."),
		mcp.WithOutputSchema[ListResponse](),
	), mcp.NewStructuredToolHandler(s.handleList))

	s.mcpServer.AddTool(mcp.NewTool("inspect_machine",
		mcp.WithDescription("Describe one machine: states, alphabet, transitions and a Mermaid diagram."),
		mcp.WithString("machine", mcp.Required(), mcp.Description("Machine name")),
		mcp.WithOutputSchema[InspectResponse](),
	), mcp.NewStructuredToolHandler(s.handleInspect))

	s.mcpServer.AddTool(mcp.NewTool("check_input",
		mcp.WithDescription("Decide whether machines accept an input string. Checks every machine unless one is named."),
		mcp.WithString("input", mcp.Required(), mcp.Description("Input string, one symbol per character")),
		mcp.WithString("machine", mcp.Description("Machine name (optional)")),
		mcp.WithOutputSchema[CheckResponse](),
	), mcp.NewStructuredToolHandler(s.handleCheck))
}

func (s *Server) handleList(ctx context.Context, request mcp.CallToolRequest, args map[string]interface{}) (ListResponse, error) {
	resp := ListResponse{Machines: []MachineSummary{}}
	for _, name := range s.engine.Machines() {
		a, err := s.engine.Machine(name)
		if err != nil {
			continue
		}
		resp.Machines = append(resp.Machines, MachineSummary{Name: name, Kind: string(a.Kind())})
	}
	return resp, nil
}

func (s *Server) handleInspect(ctx context.Context, request mcp.CallToolRequest, args map[string]interface{}) (InspectResponse, error) {
	name, _ := args["machine"].(string)
	a, err := s.engine.Machine(name)
	if err != nil {
		return InspectResponse{}, err
	}
	return InspectResponse{
		Machine: acceptor.Describe(a),
		Diagram: graph.GenerateMermaid(a, nil),
	}, nil
}

func (s *Server) handleCheck(ctx context.Context, request mcp.CallToolRequest, args map[string]interface{}) (CheckResponse, error) {
	input, ok := args["input"].(string)
	if !ok {
		return CheckResponse{}, errors.New("input is required")
	}
	clean, err := runner.SanitizeInput(input, 0)
	if err != nil {
		s.logger.Warn("MCP check: input rejected", "err", err, "size", len(input))
		return CheckResponse{}, fmt.Errorf("input rejected: %w", err)
	}

	var results []acceptor.Result
	if name, _ := args["machine"].(string); name != "" {
		a, err := s.engine.Machine(name)
		if err != nil {
			return CheckResponse{}, err
		}
		out, err := s.engine.Check(ctx, name, clean)
		if err != nil {
			return CheckResponse{}, err
		}
		results = []acceptor.Result{{Machine: name, Kind: a.Kind(), Outcome: out}}
	} else if results, err = s.engine.CheckAll(ctx, clean); err != nil {
		return CheckResponse{}, err
	}

	resp := CheckResponse{Input: clean, Results: make([]CheckResult, len(results))}
	for i, res := range results {
		out := res.Outcome
		cr := CheckResult{
			Machine: res.Machine,
			Kind:    string(res.Kind),
			Verdict: string(out.Verdict),
			Steps:   out.Steps,
			Reason:  out.Reason,
			Trace:   trace.Format(res.Kind, out.Trace),
		}
		if err := out.Err(); err != nil {
			cr.Error = err.Error()
		}
		resp.Results[i] = cr
	}
	return resp, nil
}

func (s *Server) registerResources() {
	for _, name := range s.engine.Machines() {
		uri := "acceptor://machines/" + name
		s.mcpServer.AddResource(mcp.NewResource(uri, name+" diagram",
			mcp.WithMIMEType("application/json"),
		), func(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
			a, err := s.engine.Machine(name)
			if err != nil {
				return nil, err
			}
			data, err := json.Marshal(acceptor.Describe(a))
			if err != nil {
				return nil, fmt.Errorf("failed to encode machine: %w", err)
			}
			return []mcp.ResourceContents{
				mcp.TextResourceContents{
					URI:      uri,
					MIMEType: "application/json",
					Text:     string(data),
				},
			}, nil
		})
	}
}
