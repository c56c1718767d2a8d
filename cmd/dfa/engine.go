package main

import (
	"context"
	"os"
	"strings"

	"github.com/aretw0/dfa"
	"github.com/aretw0/dfa/internal/cli"
	"github.com/aretw0/dfa/pkg/codec"
	"github.com/aretw0/dfa/pkg/observability"
)

// openEngine resolves ref as a document path when it names an existing file
// or carries a codec extension, and as a stored automaton name otherwise.
func openEngine(ctx context.Context, ref string, hooks ...observability.Hooks) (*dfa.Engine, error) {
	opts := []dfa.Option{
		dfa.WithLogger(logger),
		dfa.WithHooks(observability.Chain(append([]observability.Hooks{observability.LogHooks(logger)}, hooks...)...)),
		dfa.WithGenerateBounds(cfg.Generate.Limit, cfg.Generate.MaxLength),
	}
	if isPath(ref) {
		return dfa.Open(ref, opts...)
	}

	store, closeStore, err := cli.OpenStore(ctx, cfg, logger)
	if err != nil {
		return nil, err
	}
	defer closeStore()
	return dfa.Load(ctx, store, ref, opts...)
}

func isPath(ref string) bool {
	if _, err := os.Stat(ref); err == nil {
		return true
	}
	for _, ext := range codec.Extensions() {
		if strings.HasSuffix(strings.ToLower(ref), ext) {
			return true
		}
	}
	return strings.ContainsRune(ref, os.PathSeparator)
}
