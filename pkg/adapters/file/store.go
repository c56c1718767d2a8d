// Package file stores automata as codec documents in a directory.
package file

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/aretw0/dfa/pkg/automaton"
	"github.com/aretw0/dfa/pkg/codec"
	"github.com/aretw0/dfa/pkg/ports"
)

// Store implements ports.AutomatonStore using the local filesystem.
// Each automaton is one file named after it, in the configured format.
type Store struct {
	BasePath string
	Format   codec.Format
}

// Option configures a Store.
type Option func(*Store)

// WithFormat selects the document format for new files. Defaults to JSON.
func WithFormat(f codec.Format) Option {
	return func(s *Store) {
		s.Format = f
	}
}

// New creates a new Store with the given base path.
// If basePath is empty, it defaults to ".dfa/automata".
func New(basePath string, opts ...Option) *Store {
	if basePath == "" {
		basePath = filepath.Join(".dfa", "automata")
	}
	s := &Store{BasePath: basePath, Format: codec.FormatJSON}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Store) path(name, ext string) string {
	return filepath.Join(s.BasePath, name+ext)
}

// extensions returns the candidate extensions, the configured format first.
func (s *Store) extensions() []string {
	out := []string{s.Format.Ext()}
	for _, ext := range codec.Extensions() {
		if ext != out[0] {
			out = append(out, ext)
		}
	}
	return out
}

// Save writes the automaton atomically and removes copies stored under other extensions.
func (s *Store) Save(ctx context.Context, name string, a *automaton.Automaton) error {
	if err := ports.ValidateName(name); err != nil {
		return err
	}
	exts := s.extensions()
	if err := codec.WriteFile(s.path(name, exts[0]), a); err != nil {
		return fmt.Errorf("failed to save automaton %q: %w", name, err)
	}
	for _, ext := range exts[1:] {
		if err := os.Remove(s.path(name, ext)); err != nil && !errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("failed to remove stale automaton file: %w", err)
		}
	}
	return nil
}

// Load reads the automaton, trying the configured format first.
func (s *Store) Load(ctx context.Context, name string) (*automaton.Automaton, error) {
	if err := ports.ValidateName(name); err != nil {
		return nil, err
	}
	for _, ext := range s.extensions() {
		a, err := codec.ReadFile(s.path(name, ext))
		if errors.Is(err, os.ErrNotExist) {
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("failed to load automaton %q: %w", name, err)
		}
		return a, nil
	}
	return nil, fmt.Errorf("%w: %q", ports.ErrNotFound, name)
}

// Delete removes every file stored under name.
func (s *Store) Delete(ctx context.Context, name string) error {
	if err := ports.ValidateName(name); err != nil {
		return err
	}
	for _, ext := range codec.Extensions() {
		if err := os.Remove(s.path(name, ext)); err != nil && !errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("failed to delete automaton file: %w", err)
		}
	}
	return nil
}

// List returns stored names in lexical order. Temporary files are skipped.
func (s *Store) List(ctx context.Context) ([]string, error) {
	entries, err := os.ReadDir(s.BasePath)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return []string{}, nil
		}
		return nil, fmt.Errorf("failed to list automata: %w", err)
	}

	names := []string{}
	for _, entry := range entries {
		if entry.IsDir() || strings.HasPrefix(entry.Name(), "tmp-") {
			continue
		}
		ext := filepath.Ext(entry.Name())
		if !slices.Contains(codec.Extensions(), ext) {
			continue
		}
		name := strings.TrimSuffix(entry.Name(), ext)
		if !slices.Contains(names, name) {
			names = append(names, name)
		}
	}
	slices.Sort(names)
	return names, nil
}
