// Package loam serves automata from a Loam document repository.
//
// Each document carries an automaton in its metadata (Markdown frontmatter,
// or the top-level fields of a JSON or YAML file) using the codec document
// keys. A Markdown body, when present, is the automaton's description.
// Documents without states are not automata and are skipped.
package loam

import (
	"context"
	"fmt"
	"path/filepath"
	"slices"
	"strings"

	"github.com/aretw0/dfa/pkg/automaton"
	"github.com/aretw0/dfa/pkg/codec"
	"github.com/aretw0/dfa/pkg/ports"
	"github.com/aretw0/loam"
)

// Loader adapts a Loam repository to ports.AutomatonLoader.
type Loader struct {
	Repo *loam.TypedRepository[codec.Document]
}

// New creates a new Loam adapter.
func New(repo *loam.TypedRepository[codec.Document]) *Loader {
	return &Loader{
		Repo: repo,
	}
}

// Open initializes a strict, read-only Loam repository at dir.
func Open(dir string) (*Loader, error) {
	absPath, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve library path: %w", err)
	}
	repo, err := loam.Init(absPath,
		loam.WithStrict(true),
		loam.WithReadOnly(true),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to open automaton library: %w", err)
	}
	return New(loam.NewTypedRepository[codec.Document](repo)), nil
}

// Load builds the automaton stored under name. The name may omit the file extension.
func (l *Loader) Load(ctx context.Context, name string) (*automaton.Automaton, error) {
	e, err := l.find(ctx, name)
	if err != nil {
		return nil, err
	}
	a, err := e.data.Automaton()
	if err != nil {
		return nil, fmt.Errorf("invalid automaton in %s: %w", e.id, err)
	}
	return a, nil
}

// Describe returns the document body written alongside the automaton.
func (l *Loader) Describe(ctx context.Context, name string) (string, error) {
	e, err := l.find(ctx, name)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(e.content), nil
}

// List returns the names of all automaton documents in lexical order.
func (l *Loader) List(ctx context.Context) ([]string, error) {
	docs, err := l.Repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("loam list failed: %w", err)
	}

	seen := make(map[string]string)
	names := make([]string, 0, len(docs))
	for _, doc := range docs {
		if len(doc.Data.States) == 0 {
			continue
		}
		name := trimExtension(doc.ID)
		if existing, ok := seen[name]; ok {
			return nil, fmt.Errorf("collision detected: automaton '%s' is defined in both '%s' and '%s'", name, existing, doc.ID)
		}
		seen[name] = doc.ID
		names = append(names, name)
	}
	slices.Sort(names)
	return names, nil
}

type entry struct {
	id      string
	data    codec.Document
	content string
}

// find looks name up directly and falls back to scanning, so a missing
// document is reported as ports.ErrNotFound whatever error Loam returns.
func (l *Loader) find(ctx context.Context, name string) (entry, error) {
	if doc, err := l.Repo.Get(ctx, name); err == nil && len(doc.Data.States) > 0 {
		return entry{id: doc.ID, data: doc.Data, content: doc.Content}, nil
	}

	docs, err := l.Repo.List(ctx)
	if err != nil {
		return entry{}, fmt.Errorf("loam list failed: %w", err)
	}
	for _, doc := range docs {
		if trimExtension(doc.ID) == name && len(doc.Data.States) > 0 {
			return entry{id: doc.ID, data: doc.Data, content: doc.Content}, nil
		}
	}
	return entry{}, fmt.Errorf("%w: %q", ports.ErrNotFound, name)
}

func trimExtension(id string) string {
	return filepath.ToSlash(strings.TrimSuffix(id, filepath.Ext(id)))
}
