package cli

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/aretw0/dfa/internal/config"
	"github.com/aretw0/dfa/pkg/adapters/file"
	loamadapter "github.com/aretw0/dfa/pkg/adapters/loam"
	"github.com/aretw0/dfa/pkg/adapters/memory"
	redisadapter "github.com/aretw0/dfa/pkg/adapters/redis"
	"github.com/aretw0/dfa/pkg/automaton"
	"github.com/aretw0/dfa/pkg/ports"
)

// ErrReadOnly is returned when writing to a backend that only loads.
var ErrReadOnly = ports.ErrReadOnly

// ErrNoDescription is returned by Describe for backends that keep no prose.
var ErrNoDescription = errors.New("store keeps no descriptions")

// Describer is implemented by backends that keep a markdown description
// alongside each automaton.
type Describer interface {
	Describe(ctx context.Context, name string) (string, error)
}

// OpenStore builds the store selected by cfg.Store.Backend.
// The returned close function is never nil.
func OpenStore(ctx context.Context, cfg *config.Config, logger *slog.Logger) (ports.AutomatonStore, func() error, error) {
	noop := func() error { return nil }

	switch cfg.Store.Backend {
	case config.BackendMemory:
		return memory.NewStore(nil), noop, nil

	case config.BackendFile:
		logger.Debug("using file store", "dir", cfg.Store.Dir)
		return file.New(cfg.Store.Dir), noop, nil

	case config.BackendRedis:
		rc := cfg.Store.Redis
		var opts []redisadapter.Option
		if rc.Prefix != "" {
			opts = append(opts, redisadapter.WithPrefix(rc.Prefix))
		}
		if rc.TTL > 0 {
			opts = append(opts, redisadapter.WithTTL(rc.TTL))
		}
		store := redisadapter.New(rc.Addr, rc.Password, rc.DB, opts...)
		if err := store.Ping(ctx); err != nil {
			_ = store.Close()
			return nil, noop, fmt.Errorf("failed to reach redis at %s: %w", rc.Addr, err)
		}
		logger.Debug("using redis store", "addr", rc.Addr, "prefix", rc.Prefix)
		return store, store.Close, nil

	case config.BackendLoam:
		loader, err := loamadapter.Open(cfg.Store.Dir)
		if err != nil {
			return nil, noop, err
		}
		logger.Debug("using loam repository", "dir", cfg.Store.Dir)
		return ReadOnly(loader), noop, nil
	}
	return nil, noop, fmt.Errorf("%w: unknown store backend %q", config.ErrInvalidConfig, cfg.Store.Backend)
}

// ReadOnly adapts a loader to the store port. Save and Delete fail with ErrReadOnly.
func ReadOnly(loader ports.AutomatonLoader) ports.AutomatonStore {
	return readOnlyStore{loader}
}

type readOnlyStore struct {
	ports.AutomatonLoader
}

// Describe forwards to the wrapped loader when it keeps descriptions.
func (s readOnlyStore) Describe(ctx context.Context, name string) (string, error) {
	if d, ok := s.AutomatonLoader.(Describer); ok {
		return d.Describe(ctx, name)
	}
	return "", ErrNoDescription
}

// Describe returns the description of name, or ErrNoDescription when the
// store cannot hold one.
func Describe(ctx context.Context, store ports.AutomatonLoader, name string) (string, error) {
	d, ok := store.(Describer)
	if !ok {
		return "", ErrNoDescription
	}
	return d.Describe(ctx, name)
}

func (readOnlyStore) Save(context.Context, string, *automaton.Automaton) error {
	return ErrReadOnly
}

func (readOnlyStore) Delete(context.Context, string) error {
	return ErrReadOnly
}
