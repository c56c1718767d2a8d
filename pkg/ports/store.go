package ports

import (
	"context"

	"github.com/aretw0/dfa/pkg/automaton"
)

// AutomatonStore persists named automata.
type AutomatonStore interface {
	AutomatonLoader

	// Save stores a under name, replacing any previous automaton.
	Save(ctx context.Context, name string, a *automaton.Automaton) error

	// Delete removes name. Deleting a missing name is not an error.
	Delete(ctx context.Context, name string) error
}
