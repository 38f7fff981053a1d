package http

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/aretw0/acceptor"
	"github.com/aretw0/acceptor/internal/presentation/graph"
	"github.com/aretw0/acceptor/pkg/automaton"
	"github.com/aretw0/acceptor/pkg/domain"
	"github.com/aretw0/acceptor/pkg/runner"
)

// Engine is the part of *acceptor.Engine served over HTTP.
type Engine interface {
	Machines() []string
	Machine(name string) (automaton.Automaton, error)
	Check(ctx context.Context, name, input string) (domain.Outcome, error)
	CheckAll(ctx context.Context, input string) ([]acceptor.Result, error)
	History(ctx context.Context, name string, limit int) ([]domain.Record, error)
}

// Server holds the HTTP handlers.
type Server struct {
	Engine  Engine
	Streams *StreamManager
	Logger  *slog.Logger
}

// Option configures NewHandler.
type Option func(*handlerConfig)

type handlerConfig struct {
	streams *StreamManager
	metrics http.Handler
	logger  *slog.Logger
}

// WithStreams serves GET /events from sm. The engine's lifecycle hooks must
// include sm.Hooks() for events to flow.
func WithStreams(sm *StreamManager) Option {
	return func(c *handlerConfig) { c.streams = sm }
}

// WithMetrics mounts h (usually promhttp) at GET /metrics.
func WithMetrics(h http.Handler) Option {
	return func(c *handlerConfig) { c.metrics = h }
}

// WithLogger configures the request logger.
func WithLogger(logger *slog.Logger) Option {
	return func(c *handlerConfig) { c.logger = logger }
}

// NewHandler creates a new HTTP handler for the engine.
func NewHandler(engine Engine, opts ...Option) http.Handler {
	cfg := handlerConfig{logger: slog.New(slog.DiscardHandler)}
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.streams == nil {
		cfg.streams = NewStreamManager()
	}
	s := &Server{Engine: engine, Streams: cfg.streams, Logger: cfg.logger}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(enableCORS)

	r.Get("/health", s.GetHealth)
	r.Get("/info", s.GetInfo)
	r.Get("/events", s.SubscribeEvents)
	r.Post("/check", s.CheckAll)
	r.Route("/machines", func(r chi.Router) {
		r.Get("/", s.ListMachines)
		r.Route("/{name}", func(r chi.Router) {
			r.Get("/", s.GetMachine)
			r.Get("/graph", s.GetGraph)
			r.Post("/check", s.Check)
			r.Get("/history", s.GetHistory)
		})
	})
	if cfg.metrics != nil {
		r.Method(http.MethodGet, "/metrics", cfg.metrics)
	}
	return r
}

func enableCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// CheckRequest is the body of the check endpoints.
type CheckRequest struct {
	Input string `json:"input"`
}

// CheckResponse is the result of POST /machines/{name}/check.
type CheckResponse struct {
	Machine string         `json:"machine"`
	Kind    automaton.Kind `json:"kind"`
	Outcome domain.Outcome `json:"outcome"`
}

// GetHealth handles the GET /health request.
func (s *Server) GetHealth(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// GetInfo handles the GET /info request.
func (s *Server) GetInfo(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]any{
		"app":      "acceptor-http",
		"version":  strings.TrimSpace(acceptor.Version),
		"machines": len(s.Engine.Machines()),
	})
}

// ListMachines handles the GET /machines request.
func (s *Server) ListMachines(w http.ResponseWriter, r *http.Request) {
	type summary struct {
		Name string         `json:"name"`
		Kind automaton.Kind `json:"kind"`
	}
	names := s.Engine.Machines()
	out := make([]summary, 0, len(names))
	for _, name := range names {
		a, err := s.Engine.Machine(name)
		if err != nil {
			continue
		}
		out = append(out, summary{Name: name, Kind: a.Kind()})
	}
	s.writeJSON(w, http.StatusOK, out)
}

// GetMachine handles the GET /machines/{name} request.
func (s *Server) GetMachine(w http.ResponseWriter, r *http.Request) {
	a, ok := s.machine(w, r)
	if !ok {
		return
	}
	s.writeJSON(w, http.StatusOK, acceptor.Describe(a))
}

// GetGraph handles the GET /machines/{name}/graph request with a Mermaid diagram.
func (s *Server) GetGraph(w http.ResponseWriter, r *http.Request) {
	a, ok := s.machine(w, r)
	if !ok {
		return
	}
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	fmt.Fprint(w, graph.GenerateMermaid(a, nil))
}

// Check handles the POST /machines/{name}/check request.
func (s *Server) Check(w http.ResponseWriter, r *http.Request) {
	a, ok := s.machine(w, r)
	if !ok {
		return
	}
	input, ok := s.decodeInput(w, r)
	if !ok {
		return
	}
	out, err := s.Engine.Check(r.Context(), a.Name(), input)
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, CheckResponse{Machine: a.Name(), Kind: a.Kind(), Outcome: out})
}

// CheckAll handles the POST /check request against every machine.
func (s *Server) CheckAll(w http.ResponseWriter, r *http.Request) {
	input, ok := s.decodeInput(w, r)
	if !ok {
		return
	}
	results, err := s.Engine.CheckAll(r.Context(), input)
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, results)
}

// GetHistory handles the GET /machines/{name}/history request.
func (s *Server) GetHistory(w http.ResponseWriter, r *http.Request) {
	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			http.Error(w, "limit must be a non-negative integer", http.StatusBadRequest)
			return
		}
		limit = n
	}
	records, err := s.Engine.History(r.Context(), chi.URLParam(r, "name"), limit)
	if err != nil {
		s.writeError(w, err)
		return
	}
	if records == nil {
		records = []domain.Record{}
	}
	s.writeJSON(w, http.StatusOK, records)
}

func (s *Server) machine(w http.ResponseWriter, r *http.Request) (automaton.Automaton, bool) {
	a, err := s.Engine.Machine(chi.URLParam(r, "name"))
	if err != nil {
		s.writeError(w, err)
		return nil, false
	}
	return a, true
}

func (s *Server) decodeInput(w http.ResponseWriter, r *http.Request) (string, bool) {
	var body CheckRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		s.Logger.Warn("invalid request body", "err", err, "path", r.URL.Path)
		return "", false
	}
	clean, err := runner.SanitizeInput(body.Input, 0)
	if err != nil {
		http.Error(w, fmt.Sprintf("Invalid input: %v", err), http.StatusBadRequest)
		s.Logger.Warn("input rejected", "err", err, "size", len(body.Input))
		return "", false
	}
	return clean, true
}

func (s *Server) writeError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, domain.ErrMachineNotFound):
		status = http.StatusNotFound
	case errors.Is(err, acceptor.ErrNoResultStore):
		status = http.StatusNotImplemented
	}
	if status == http.StatusInternalServerError {
		s.Logger.Error("request failed", "err", err)
	}
	http.Error(w, err.Error(), status)
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.Logger.Error("response encode failed", "err", err)
	}
}
