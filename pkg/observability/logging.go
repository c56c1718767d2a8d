package observability

import (
	"context"
	"log/slog"
)

// LogHooks returns hooks that log every event at debug level, or at warn
// level when the operation failed.
func LogHooks(logger *slog.Logger) Hooks {
	return Hooks{
		OnSimulate: func(ctx context.Context, e *SimulateEvent) {
			if e.Err != nil {
				logger.WarnContext(ctx, "simulation failed",
					"automaton", e.Automaton,
					"symbols", e.Symbols,
					"err", e.Err,
				)
				return
			}
			logger.DebugContext(ctx, "simulation finished",
				"automaton", e.Automaton,
				"symbols", e.Symbols,
				"accepted", e.Accepted,
				"final_state", e.FinalState,
				"duration", e.Duration,
			)
		},
		OnGenerate: func(ctx context.Context, e *GenerateEvent) {
			if e.Err != nil {
				logger.WarnContext(ctx, "generation failed",
					"automaton", e.Automaton,
					"err", e.Err,
				)
				return
			}
			logger.DebugContext(ctx, "generation finished",
				"automaton", e.Automaton,
				"limit", e.Limit,
				"max_length", e.MaxLength,
				"count", e.Count,
				"duration", e.Duration,
			)
		},
	}
}
