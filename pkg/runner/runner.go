package runner

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/aretw0/dfa/pkg/automaton"
)

// ErrBatchFailed is returned by Run in fail-fast mode when an input errors.
var ErrBatchFailed = errors.New("batch stopped on failing input")

// Runner streams batch validation results to a Handler.
type Runner struct {
	// Handler presents results. Defaults to a TextHandler on stdout.
	Handler Handler

	// Logger is used for debug logging. Defaults to a no-op logger.
	Logger *slog.Logger

	// FailFast stops the batch on the first errored input.
	FailFast bool
}

// New creates a Runner.
func New(opts ...Option) *Runner {
	r := &Runner{}
	for _, opt := range opts {
		opt(r)
	}
	if r.Handler == nil {
		r.Handler = NewTextHandler(os.Stdout)
	}
	if r.Logger == nil {
		r.Logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return r
}

// Run parses inputs from src and validates them against a.
func (r *Runner) Run(ctx context.Context, a *automaton.Automaton, src io.Reader) (Summary, error) {
	inputs, err := ParseInputs(src)
	if err != nil {
		return Summary{}, err
	}
	return r.RunInputs(ctx, a, inputs)
}

// RunInputs validates inputs against a, emitting each result as it is produced.
func (r *Runner) RunInputs(ctx context.Context, a *automaton.Automaton, inputs []string) (Summary, error) {
	var summary Summary
	r.Logger.Debug("batch started", "inputs", len(inputs))

	for i, in := range inputs {
		if err := ctx.Err(); err != nil {
			r.Logger.Debug("batch cancelled", "done", summary.Total)
			return summary, err
		}

		res := Check(a, i, in)
		summary.Add(res)
		if res.Status == StatusError {
			r.Logger.Debug("input failed", "index", i, "err", res.Error)
		}

		if err := r.Handler.Result(ctx, res); err != nil {
			return summary, fmt.Errorf("output error: %w", err)
		}

		if r.FailFast && res.Status == StatusError {
			if err := r.Handler.Summary(ctx, summary); err != nil {
				return summary, fmt.Errorf("output error: %w", err)
			}
			return summary, fmt.Errorf("%w: input %d: %s", ErrBatchFailed, i, res.Error)
		}
	}

	if err := r.Handler.Summary(ctx, summary); err != nil {
		return summary, fmt.Errorf("output error: %w", err)
	}
	r.Logger.Debug("batch finished",
		"accepted", summary.Accepted,
		"rejected", summary.Rejected,
		"errors", summary.Errors,
	)
	return summary, nil
}
