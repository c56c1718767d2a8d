package dfa

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"path/filepath"
	"strings"
	"time"

	"github.com/aretw0/dfa/pkg/automaton"
	"github.com/aretw0/dfa/pkg/codec"
	"github.com/aretw0/dfa/pkg/generator"
	"github.com/aretw0/dfa/pkg/observability"
	"github.com/aretw0/dfa/pkg/ports"
	"github.com/aretw0/dfa/pkg/replay"
)

// Version is the release of this module.
const Version = "0.3.0"

// ErrNilAutomaton is returned when an Engine is created without an automaton.
var ErrNilAutomaton = errors.New("automaton is required")

// Engine is the high-level entry point of the library.
// It is safe for concurrent use: the automaton is immutable.
type Engine struct {
	automaton *automaton.Automaton
	hooks     observability.Hooks
	logger    *slog.Logger
	limit     int
	maxLength int
	Name      string
}

// Option defines a functional option for configuring the Engine.
type Option func(*Engine)

// WithHooks registers observability hooks.
func WithHooks(hooks observability.Hooks) Option {
	return func(e *Engine) {
		e.hooks = hooks
	}
}

// WithLogger sets a custom structured logger for the engine.
func WithLogger(logger *slog.Logger) Option {
	return func(e *Engine) {
		e.logger = logger
	}
}

// WithName labels the engine in logs and hook events.
func WithName(name string) Option {
	return func(e *Engine) {
		e.Name = name
	}
}

// WithGenerateBounds sets the bounds used by Examples.
func WithGenerateBounds(limit, maxLength int) Option {
	return func(e *Engine) {
		e.limit = limit
		e.maxLength = maxLength
	}
}

// New wraps an automaton.
func New(a *automaton.Automaton, opts ...Option) (*Engine, error) {
	if a == nil {
		return nil, ErrNilAutomaton
	}
	eng := &Engine{
		automaton: a,
		limit:     generator.DefaultLimit,
		maxLength: generator.DefaultMaxLength,
	}
	for _, opt := range opts {
		opt(eng)
	}

	if eng.logger == nil {
		eng.logger = slog.New(slog.NewJSONHandler(io.Discard, nil))
	}
	if eng.Name != "" {
		eng.logger = eng.logger.With("automaton", eng.Name)
	}
	return eng, nil
}

// Open reads an automaton document and wraps it. The engine is named after the file.
func Open(path string, opts ...Option) (*Engine, error) {
	a, err := codec.ReadFile(path)
	if err != nil {
		return nil, err
	}
	name := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	return New(a, append([]Option{WithName(name)}, opts...)...)
}

// Load fetches a named automaton from a loader and wraps it.
func Load(ctx context.Context, loader ports.AutomatonLoader, name string, opts ...Option) (*Engine, error) {
	a, err := loader.Load(ctx, name)
	if err != nil {
		return nil, err
	}
	return New(a, append([]Option{WithName(name)}, opts...)...)
}

// Automaton returns the wrapped automaton.
func (e *Engine) Automaton() *automaton.Automaton { return e.automaton }

// Definition returns a copy of the automaton's 5-tuple.
func (e *Engine) Definition() automaton.Definition { return e.automaton.Definition() }

// Validate re-checks the completeness invariant. It is always true for an
// Engine built through New; adapters call it to report status.
func (e *Engine) Validate() bool { return e.automaton.Validate() }

// Simulate splits input into alphabet symbols and runs it.
func (e *Engine) Simulate(ctx context.Context, input string) (*automaton.TraceResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	symbols, err := e.automaton.Tokenize(input)
	if err != nil {
		e.fireSimulate(ctx, time.Now(), 0, nil, err)
		return nil, err
	}
	return e.SimulateSymbols(ctx, symbols)
}

// SimulateSymbols runs an already tokenized input.
func (e *Engine) SimulateSymbols(ctx context.Context, symbols []string) (*automaton.TraceResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	start := time.Now()
	res, err := e.automaton.Simulate(symbols)
	e.fireSimulate(ctx, start, len(symbols), res, err)
	return res, err
}

// Accepts reports whether input is accepted.
func (e *Engine) Accepts(ctx context.Context, input string) (bool, error) {
	res, err := e.Simulate(ctx, input)
	if err != nil {
		return false, err
	}
	return res.Accepted, nil
}

// Replay simulates input and returns a cursor positioned on the initial state.
func (e *Engine) Replay(ctx context.Context, input string) (*replay.Player, error) {
	res, err := e.Simulate(ctx, input)
	if err != nil {
		return nil, err
	}
	return replay.New(res), nil
}

// Generate enumerates accepted strings in breadth-first order.
func (e *Engine) Generate(ctx context.Context, limit, maxLength int) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	start := time.Now()
	words, err := generator.Generate(e.automaton, limit, maxLength)

	if e.hooks.OnGenerate != nil {
		e.hooks.OnGenerate(ctx, &observability.GenerateEvent{
			EventBase: e.event(observability.EventGenerate, start),
			Limit:     limit,
			MaxLength: maxLength,
			Count:     len(words),
			Err:       err,
		})
	}
	if err != nil {
		return nil, fmt.Errorf("generation failed: %w", err)
	}
	e.logger.DebugContext(ctx, "generated strings", "count", len(words), "limit", limit, "max_length", maxLength)
	return words, nil
}

// Examples enumerates accepted strings with the configured bounds.
func (e *Engine) Examples(ctx context.Context) ([]string, error) {
	return e.Generate(ctx, e.limit, e.maxLength)
}

func (e *Engine) fireSimulate(ctx context.Context, start time.Time, n int, res *automaton.TraceResult, err error) {
	if err != nil {
		e.logger.DebugContext(ctx, "simulation rejected input", "err", err)
	} else {
		e.logger.DebugContext(ctx, "simulated input", "symbols", n, "accepted", res.Accepted, "final_state", res.FinalState)
	}
	if e.hooks.OnSimulate == nil {
		return
	}
	ev := &observability.SimulateEvent{
		EventBase: e.event(observability.EventSimulate, start),
		Symbols:   n,
		Err:       err,
	}
	if res != nil {
		ev.Accepted = res.Accepted
		ev.FinalState = res.FinalState
	}
	e.hooks.OnSimulate(ctx, ev)
}

func (e *Engine) event(t observability.EventType, start time.Time) observability.EventBase {
	return observability.EventBase{
		Timestamp: start,
		Type:      t,
		Automaton: e.Name,
		Duration:  time.Since(start),
	}
}
