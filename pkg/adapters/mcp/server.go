// Package mcp exposes stored automata as Model Context Protocol tools.
package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/aretw0/dfa"
	"github.com/aretw0/dfa/pkg/automaton"
	"github.com/aretw0/dfa/pkg/codec"
	"github.com/aretw0/dfa/pkg/generator"
	"github.com/aretw0/dfa/pkg/observability"
	"github.com/aretw0/dfa/pkg/ports"
	"github.com/aretw0/dfa/pkg/runner"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// ListResponse names the stored automata.
type ListResponse struct {
	Automata []string `json:"automata" jsonschema_description:"Names of the stored automata"`
}

// ValidateResponse reports the well-formedness of a stored automaton.
type ValidateResponse struct {
	Valid      bool                  `json:"valid" jsonschema_description:"True when every state has exactly one transition per symbol"`
	Violations []automaton.Violation `json:"violations" jsonschema_description:"Problems found, empty when valid"`
}

// GenerateResponse lists accepted strings in breadth-first order.
type GenerateResponse struct {
	Strings []string `json:"strings" jsonschema_description:"Accepted strings, shortest first"`
}

// NameArgs selects a stored automaton.
type NameArgs struct {
	Name string `json:"name"`
}

// SimulateArgs runs one input.
type SimulateArgs struct {
	Name  string `json:"name"`
	Input string `json:"input"`
}

// PutArgs stores a document under a name.
type PutArgs struct {
	Name     string         `json:"name"`
	Document map[string]any `json:"document"`
}

// GenerateArgs bounds a generation. Omitted bounds fall back to the server
// defaults; an explicit zero is used as given.
type GenerateArgs struct {
	Name      string `json:"name"`
	Limit     *int   `json:"limit,omitempty"`
	MaxLength *int   `json:"max_length,omitempty"`
}

// Server exposes an automaton store over MCP.
type Server struct {
	store     ports.AutomatonStore
	logger    *slog.Logger
	hooks     observability.Hooks
	limit     int
	maxLength int
	mcpServer *server.MCPServer
}

// Option configures a Server.
type Option func(*Server)

// WithLogger sets the server logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) { s.logger = logger }
}

// WithHooks registers hooks passed to every engine the server builds.
func WithHooks(hooks observability.Hooks) Option {
	return func(s *Server) { s.hooks = hooks }
}

// WithGenerateBounds sets the defaults used when generate omits its bounds.
func WithGenerateBounds(limit, maxLength int) Option {
	return func(s *Server) {
		s.limit = limit
		s.maxLength = maxLength
	}
}

// NewServer creates a new MCP Server instance.
func NewServer(store ports.AutomatonStore, opts ...Option) *Server {
	s := &Server{
		store:     store,
		logger:    slog.New(slog.NewTextHandler(io.Discard, nil)),
		limit:     generator.DefaultLimit,
		maxLength: generator.DefaultMaxLength,
		mcpServer: server.NewMCPServer("dfa-mcp", dfa.Version),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.registerTools()
	s.registerResources()
	return s
}

// ServeStdio starts the server on Stdin/Stdout.
func (s *Server) ServeStdio() error {
	return server.ServeStdio(s.mcpServer)
}

// ServeSSE serves over SSE on addr until ctx is cancelled.
func (s *Server) ServeSSE(ctx context.Context, addr, baseURL string) error {
	sseServer := server.NewSSEServer(s.mcpServer, server.WithBaseURL(baseURL))

	mux := http.NewServeMux()
	mux.Handle("/sse", sseServer.SSEHandler())
	mux.Handle("/message", sseServer.MessageHandler())
	httpServer := &http.Server{Addr: addr, Handler: mux}

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

func (s *Server) registerTools() {
	s.mcpServer.AddTool(mcp.NewTool("list_automata",
		mcp.WithDescription("List the names of the stored automata."),
		mcp.WithOutputSchema[ListResponse](),
	), mcp.NewStructuredToolHandler(s.handleList))

	s.mcpServer.AddTool(mcp.NewTool("get_automaton",
		mcp.WithDescription("Get the JSON document of a stored automaton."),
		mcp.WithString("name", mcp.Required(), mcp.Description("Automaton name")),
	), mcp.NewTypedToolHandler(s.handleGet))

	s.mcpServer.AddTool(mcp.NewTool("put_automaton",
		mcp.WithDescription("Store an automaton document under a name, replacing any previous one."),
		mcp.WithString("name", mcp.Required(), mcp.Description("Automaton name")),
		mcp.WithObject("document", mcp.Required(), mcp.Description("Document with states, alphabet, initial, finals and transitions")),
	), mcp.NewTypedToolHandler(s.handlePut))

	s.mcpServer.AddTool(mcp.NewTool("validate_automaton",
		mcp.WithDescription("Check that a stored automaton is complete."),
		mcp.WithString("name", mcp.Required(), mcp.Description("Automaton name")),
		mcp.WithOutputSchema[ValidateResponse](),
	), mcp.NewStructuredToolHandler(s.handleValidate))

	s.mcpServer.AddTool(mcp.NewTool("simulate",
		mcp.WithDescription("Run an input string and return the step-by-step trace."),
		mcp.WithString("name", mcp.Required(), mcp.Description("Automaton name")),
		mcp.WithString("input", mcp.Required(), mcp.Description("Input string, may be empty")),
		mcp.WithOutputSchema[automaton.TraceResult](),
	), mcp.NewStructuredToolHandler(s.handleSimulate))

	s.mcpServer.AddTool(mcp.NewTool("generate",
		mcp.WithDescription("Enumerate accepted strings, shortest first."),
		mcp.WithString("name", mcp.Required(), mcp.Description("Automaton name")),
		mcp.WithNumber("limit", mcp.Min(0), mcp.Description("Maximum number of strings")),
		mcp.WithNumber("max_length", mcp.Min(0), mcp.Description("Maximum string length in characters")),
		mcp.WithOutputSchema[GenerateResponse](),
	), mcp.NewStructuredToolHandler(s.handleGenerate))
}

func (s *Server) handleList(ctx context.Context, _ mcp.CallToolRequest, _ struct{}) (ListResponse, error) {
	names, err := s.store.List(ctx)
	if err != nil {
		return ListResponse{}, fmt.Errorf("list failed: %w", err)
	}
	return ListResponse{Automata: names}, nil
}

func (s *Server) handleGet(ctx context.Context, _ mcp.CallToolRequest, args NameArgs) (*mcp.CallToolResult, error) {
	a, err := s.store.Load(ctx, args.Name)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("load failed: %v", err)), nil
	}
	data, err := codec.Save(a)
	if err != nil {
		return nil, err
	}
	return mcp.NewToolResultText(string(data)), nil
}

func (s *Server) handlePut(ctx context.Context, _ mcp.CallToolRequest, args PutArgs) (*mcp.CallToolResult, error) {
	a, err := codec.FromMap(args.Document)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("invalid document: %v", err)), nil
	}
	if err := s.store.Save(ctx, args.Name, a); err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("save failed: %v", err)), nil
	}
	s.logger.Info("automaton stored", "name", args.Name, "states", len(a.States()))
	return mcp.NewToolResultText(fmt.Sprintf("stored %q", args.Name)), nil
}

func (s *Server) handleValidate(ctx context.Context, _ mcp.CallToolRequest, args NameArgs) (ValidateResponse, error) {
	eng, err := s.engine(ctx, args.Name)
	if err != nil {
		return ValidateResponse{}, err
	}
	violations := eng.Automaton().Violations()
	if violations == nil {
		violations = []automaton.Violation{}
	}
	return ValidateResponse{Valid: eng.Validate(), Violations: violations}, nil
}

func (s *Server) handleSimulate(ctx context.Context, _ mcp.CallToolRequest, args SimulateArgs) (automaton.TraceResult, error) {
	clean, err := runner.SanitizeInput(args.Input)
	if err != nil {
		s.logger.Warn("MCP simulate: input rejected", "err", err, "size", len(args.Input))
		return automaton.TraceResult{}, fmt.Errorf("input rejected: %w", err)
	}
	eng, err := s.engine(ctx, args.Name)
	if err != nil {
		return automaton.TraceResult{}, err
	}
	res, err := eng.Simulate(ctx, clean)
	if err != nil {
		return automaton.TraceResult{}, fmt.Errorf("simulate failed: %w", err)
	}
	return *res, nil
}

func (s *Server) handleGenerate(ctx context.Context, _ mcp.CallToolRequest, args GenerateArgs) (GenerateResponse, error) {
	limit, maxLength := s.limit, s.maxLength
	if args.Limit != nil {
		limit = *args.Limit
	}
	if args.MaxLength != nil {
		maxLength = *args.MaxLength
	}
	eng, err := s.engine(ctx, args.Name)
	if err != nil {
		return GenerateResponse{}, err
	}
	words, err := eng.Generate(ctx, limit, maxLength)
	if err != nil {
		return GenerateResponse{}, err
	}
	return GenerateResponse{Strings: words}, nil
}

func (s *Server) engine(ctx context.Context, name string) (*dfa.Engine, error) {
	if name == "" {
		return nil, errors.New("name is required")
	}
	eng, err := dfa.Load(ctx, s.store, name,
		dfa.WithLogger(s.logger),
		dfa.WithHooks(s.hooks),
		dfa.WithGenerateBounds(s.limit, s.maxLength),
	)
	if err != nil {
		return nil, fmt.Errorf("load failed: %w", err)
	}
	return eng, nil
}

func (s *Server) registerResources() {
	s.mcpServer.AddResource(mcp.NewResource("dfa://automata", "Stored automata",
		mcp.WithMIMEType("application/json"),
	), func(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
		names, err := s.store.List(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to list automata: %w", err)
		}
		jsonBytes, _ := json.Marshal(ListResponse{Automata: names})

		return []mcp.ResourceContents{
			mcp.TextResourceContents{
				URI:      "dfa://automata",
				MIMEType: "application/json",
				Text:     string(jsonBytes),
			},
		}, nil
	})
}
