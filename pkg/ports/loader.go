package ports

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/aretw0/dfa/pkg/automaton"
)

var (
	// ErrNotFound is returned when no automaton is stored under a name.
	ErrNotFound = errors.New("automaton not found")
	// ErrInvalidName is returned for names that cannot be used as storage keys.
	ErrInvalidName = errors.New("invalid automaton name")
	// ErrReadOnly is returned when writing to a store that only loads.
	ErrReadOnly = errors.New("store is read-only")
)

// AutomatonLoader retrieves automata by name.
type AutomatonLoader interface {
	// Load returns the automaton stored under name.
	// Returns ErrNotFound if there is none.
	Load(ctx context.Context, name string) (*automaton.Automaton, error)

	// List returns every stored name in lexical order.
	List(ctx context.Context) ([]string, error)
}

// ValidateName rejects names that are empty, contain path separators or
// start with a dot.
func ValidateName(name string) error {
	switch {
	case name == "":
		return fmt.Errorf("%w: empty", ErrInvalidName)
	case strings.ContainsAny(name, `/\`):
		return fmt.Errorf("%w: %q contains a path separator", ErrInvalidName, name)
	case strings.HasPrefix(name, "."):
		return fmt.Errorf("%w: %q starts with a dot", ErrInvalidName, name)
	}
	return nil
}
