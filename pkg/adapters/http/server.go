// Package http exposes stored automata over a JSON API routed with chi.
//
// Request bodies and parameters are checked against the embedded OpenAPI
// document before they reach a handler.
package http

import (
	"context"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"github.com/aretw0/dfa"
	"github.com/aretw0/dfa/internal/presentation/graph"
	"github.com/aretw0/dfa/pkg/automaton"
	"github.com/aretw0/dfa/pkg/codec"
	"github.com/aretw0/dfa/pkg/generator"
	"github.com/aretw0/dfa/pkg/observability"
	"github.com/aretw0/dfa/pkg/ports"
	"github.com/aretw0/dfa/pkg/runner"
	"github.com/getkin/kin-openapi/openapi3"
	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

//go:embed openapi.yaml
var rawSpec []byte

// Server serves automata from a store.
type Server struct {
	Store     ports.AutomatonStore
	Logger    *slog.Logger
	Hooks     observability.Hooks
	Gatherer  prometheus.Gatherer
	Limit     int
	MaxLength int

	spec *openapi3.T
}

// Option configures a Server.
type Option func(*Server)

// WithLogger sets the request logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) {
		s.Logger = logger
	}
}

// WithHooks registers hooks passed to every engine the server builds.
func WithHooks(hooks observability.Hooks) Option {
	return func(s *Server) {
		s.Hooks = hooks
	}
}

// WithMetrics exposes g on GET /metrics.
func WithMetrics(g prometheus.Gatherer) Option {
	return func(s *Server) {
		s.Gatherer = g
	}
}

// WithGenerateBounds sets the defaults used when a generate request omits them.
func WithGenerateBounds(limit, maxLength int) Option {
	return func(s *Server) {
		s.Limit = limit
		s.MaxLength = maxLength
	}
}

// Spec parses the embedded OpenAPI document.
func Spec(ctx context.Context) (*openapi3.T, error) {
	doc, err := openapi3.NewLoader().LoadFromData(rawSpec)
	if err != nil {
		return nil, fmt.Errorf("failed to load OpenAPI spec: %w", err)
	}
	if err := doc.Validate(ctx); err != nil {
		return nil, fmt.Errorf("invalid OpenAPI spec: %w", err)
	}
	return doc, nil
}

// NewHandler creates the HTTP handler for store.
func NewHandler(store ports.AutomatonStore, opts ...Option) (http.Handler, error) {
	s := &Server{
		Store:     store,
		Limit:     generator.DefaultLimit,
		MaxLength: generator.DefaultMaxLength,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.Logger == nil {
		s.Logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	spec, err := Spec(context.Background())
	if err != nil {
		return nil, err
	}
	s.spec = spec

	r := chi.NewRouter()
	r.Get("/openapi.yaml", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/yaml")
		_, _ = w.Write(rawSpec)
	})
	if s.Gatherer != nil {
		r.Handle("/metrics", promhttp.HandlerFor(s.Gatherer, promhttp.HandlerOpts{}))
	}

	r.Group(func(r chi.Router) {
		r.Use(s.validateRequest)

		r.Get("/health", s.GetHealth)
		r.Get("/info", s.GetInfo)
		r.Post("/validate", s.ValidateDocument)
		r.Get("/automata", s.ListAutomata)
		r.Get("/automata/{name}", s.GetAutomaton)
		r.Put("/automata/{name}", s.PutAutomaton)
		r.Delete("/automata/{name}", s.DeleteAutomaton)
		r.Get("/automata/{name}/validate", s.ValidateAutomaton)
		r.Post("/automata/{name}/simulate", s.Simulate)
		r.Post("/automata/{name}/generate", s.Generate)
		r.Post("/automata/{name}/batch", s.Batch)
		r.Get("/automata/{name}/graph", s.GetGraph)
	})

	return enableCORS(r), nil
}

func enableCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// GetHealth handles GET /health.
func (s *Server) GetHealth(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// GetInfo handles GET /info.
func (s *Server) GetInfo(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]string{
		"app":         "dfa-http",
		"version":     dfa.Version,
		"api_version": s.spec.Info.Version,
		"format":      codec.Version,
	})
}

type validationReport struct {
	Valid      bool                  `json:"valid"`
	Violations []automaton.Violation `json:"violations"`
}

// ValidateDocument handles POST /validate. Structural problems are reported, not rejected.
func (s *Server) ValidateDocument(w http.ResponseWriter, r *http.Request) {
	var doc codec.Document
	if err := json.NewDecoder(r.Body).Decode(&doc); err != nil {
		s.writeError(w, http.StatusBadRequest, fmt.Errorf("invalid request body: %w", err))
		return
	}
	violations := automaton.Check(doc.Definition())
	if violations == nil {
		violations = []automaton.Violation{}
	}
	s.writeJSON(w, http.StatusOK, validationReport{Valid: len(violations) == 0, Violations: violations})
}

// ListAutomata handles GET /automata.
func (s *Server) ListAutomata(w http.ResponseWriter, r *http.Request) {
	names, err := s.Store.List(r.Context())
	if err != nil {
		s.fail(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, map[string][]string{"automata": names})
}

// GetAutomaton handles GET /automata/{name}.
func (s *Server) GetAutomaton(w http.ResponseWriter, r *http.Request) {
	a, err := s.Store.Load(r.Context(), chi.URLParam(r, "name"))
	if err != nil {
		s.fail(w, r, err)
		return
	}
	data, err := codec.Save(a)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	_, _ = w.Write(data)
}

// PutAutomaton handles PUT /automata/{name}.
func (s *Server) PutAutomaton(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	a, err := codec.Decode(r.Body, codec.FormatJSON)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	if err := s.Store.Save(r.Context(), name, a); err != nil {
		s.fail(w, r, err)
		return
	}
	s.Logger.Info("automaton stored", "name", name, "states", len(a.States()))
	s.writeJSON(w, http.StatusOK, map[string]string{"name": name})
}

// DeleteAutomaton handles DELETE /automata/{name}.
func (s *Server) DeleteAutomaton(w http.ResponseWriter, r *http.Request) {
	if err := s.Store.Delete(r.Context(), chi.URLParam(r, "name")); err != nil {
		s.fail(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ValidateAutomaton handles GET /automata/{name}/validate.
func (s *Server) ValidateAutomaton(w http.ResponseWriter, r *http.Request) {
	eng, err := s.engine(r)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	violations := eng.Automaton().Violations()
	if violations == nil {
		violations = []automaton.Violation{}
	}
	s.writeJSON(w, http.StatusOK, validationReport{Valid: eng.Validate(), Violations: violations})
}

type simulateRequest struct {
	Input   *string  `json:"input"`
	Symbols []string `json:"symbols"`
}

// Simulate handles POST /automata/{name}/simulate.
// Symbols take precedence over input when both are given.
func (s *Server) Simulate(w http.ResponseWriter, r *http.Request) {
	var body simulateRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		s.writeError(w, http.StatusBadRequest, fmt.Errorf("invalid request body: %w", err))
		return
	}
	eng, err := s.engine(r)
	if err != nil {
		s.fail(w, r, err)
		return
	}

	var res *automaton.TraceResult
	switch {
	case body.Symbols != nil:
		res, err = eng.SimulateSymbols(r.Context(), body.Symbols)
	case body.Input != nil:
		input, sErr := runner.SanitizeInput(*body.Input)
		if sErr != nil {
			s.writeError(w, http.StatusBadRequest, fmt.Errorf("invalid input: %w", sErr))
			return
		}
		res, err = eng.Simulate(r.Context(), input)
	default:
		s.writeError(w, http.StatusBadRequest, errors.New("either input or symbols is required"))
		return
	}
	if err != nil {
		s.fail(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, res)
}

type generateRequest struct {
	Limit     *int `json:"limit"`
	MaxLength *int `json:"max_length"`
}

// Generate handles POST /automata/{name}/generate. An empty body uses the server defaults.
func (s *Server) Generate(w http.ResponseWriter, r *http.Request) {
	var body generateRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil && !errors.Is(err, io.EOF) {
		s.writeError(w, http.StatusBadRequest, fmt.Errorf("invalid request body: %w", err))
		return
	}
	limit, maxLength := s.Limit, s.MaxLength
	if body.Limit != nil {
		limit = *body.Limit
	}
	if body.MaxLength != nil {
		maxLength = *body.MaxLength
	}

	eng, err := s.engine(r)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	words, err := eng.Generate(r.Context(), limit, maxLength)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, map[string]any{
		"strings":    words,
		"limit":      limit,
		"max_length": maxLength,
	})
}

type batchRequest struct {
	Inputs []string `json:"inputs"`
}

type batchResponse struct {
	Results []runner.Result `json:"results"`
	Summary runner.Summary  `json:"summary"`
}

// Batch handles POST /automata/{name}/batch.
func (s *Server) Batch(w http.ResponseWriter, r *http.Request) {
	var body batchRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		s.writeError(w, http.StatusBadRequest, fmt.Errorf("invalid request body: %w", err))
		return
	}
	eng, err := s.engine(r)
	if err != nil {
		s.fail(w, r, err)
		return
	}

	results, err := runner.Validate(r.Context(), eng.Automaton(), body.Inputs)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	var summary runner.Summary
	for _, res := range results {
		summary.Add(res)
	}
	s.writeJSON(w, http.StatusOK, batchResponse{Results: results, Summary: summary})
}

// GetGraph handles GET /automata/{name}/graph.
// With an input query parameter the states of its run are highlighted.
func (s *Server) GetGraph(w http.ResponseWriter, r *http.Request) {
	eng, err := s.engine(r)
	if err != nil {
		s.fail(w, r, err)
		return
	}

	var overlay *graph.GraphOverlay
	if r.URL.Query().Has("input") {
		res, err := eng.Simulate(r.Context(), r.URL.Query().Get("input"))
		if err != nil {
			s.fail(w, r, err)
			return
		}
		overlay = &graph.GraphOverlay{VisitedStates: res.Path(), CurrentState: res.FinalState}
	}

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = io.WriteString(w, graph.GenerateMermaid(eng.Automaton(), overlay))
}

func (s *Server) engine(r *http.Request) (*dfa.Engine, error) {
	return dfa.Load(r.Context(), s.Store, chi.URLParam(r, "name"),
		dfa.WithLogger(s.Logger),
		dfa.WithHooks(s.Hooks),
		dfa.WithGenerateBounds(s.Limit, s.MaxLength),
	)
}
