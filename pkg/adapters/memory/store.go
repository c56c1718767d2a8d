// Package memory provides an in-process AutomatonStore.
package memory

import (
	"context"
	"slices"
	"sync"

	"github.com/aretw0/dfa/pkg/automaton"
	"github.com/aretw0/dfa/pkg/ports"
)

// Store implements ports.AutomatonStore in memory.
// Safe for concurrent use.
type Store struct {
	data map[string]*automaton.Automaton
	mu   sync.RWMutex
}

// NewStore creates a new in-memory store, optionally seeded with automata.
func NewStore(seed map[string]*automaton.Automaton) *Store {
	s := &Store{
		data: make(map[string]*automaton.Automaton, len(seed)),
	}
	for name, a := range seed {
		s.data[name] = a
	}
	return s
}

// Save stores the automaton. Automata are immutable, so no copy is taken.
func (s *Store) Save(ctx context.Context, name string, a *automaton.Automaton) error {
	if err := ports.ValidateName(name); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data[name] = a
	return nil
}

// Load retrieves an automaton from memory.
func (s *Store) Load(ctx context.Context, name string) (*automaton.Automaton, error) {
	if err := ports.ValidateName(name); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	a, ok := s.data[name]
	if !ok {
		return nil, ports.ErrNotFound
	}
	return a, nil
}

// Delete removes the automaton.
func (s *Store) Delete(ctx context.Context, name string) error {
	if err := ports.ValidateName(name); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.data, name)
	return nil
}

// List returns stored names in lexical order.
func (s *Store) List(ctx context.Context) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	names := make([]string, 0, len(s.data))
	for name := range s.data {
		names = append(names, name)
	}
	slices.Sort(names)
	return names, nil
}
