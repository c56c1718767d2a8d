package redis_test

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/aretw0/dfa/pkg/adapters/redis"
	"github.com/aretw0/dfa/pkg/automaton"
	"github.com/aretw0/dfa/pkg/codec"
	"github.com/aretw0/dfa/pkg/ports"
	backend "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setup(t *testing.T) (*miniredis.Miniredis, *backend.Client) {
	t.Helper()
	mr, err := miniredis.Run()
	require.NoError(t, err, "failed to start miniredis")
	t.Cleanup(mr.Close)

	client := backend.NewClient(&backend.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return mr, client
}

func sink() *automaton.Automaton {
	return automaton.MustNew(automaton.Definition{
		States:      []string{"q"},
		Alphabet:    []string{"a"},
		Initial:     "q",
		Finals:      []string{"q"},
		Transitions: map[string]map[string]string{"q": {"a": "q"}},
	})
}

func TestRedisStore_Contract(t *testing.T) {
	_, client := setup(t)
	ports.RunAutomatonStoreContract(t, redis.NewFromClient(client))
}

func TestRedisStore_TTL_Expiration(t *testing.T) {
	mr, client := setup(t)
	store := redis.NewFromClient(client, redis.WithTTL(1*time.Second))
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, "short-lived", sink()))

	names, err := store.List(ctx)
	assert.NoError(t, err)
	assert.Contains(t, names, "short-lived")

	mr.FastForward(2 * time.Second)

	_, err = store.Load(ctx, "short-lived")
	assert.ErrorIs(t, err, ports.ErrNotFound)

	// Index pruning compares against wall-clock time.
	time.Sleep(1200 * time.Millisecond)

	names, err = store.List(ctx)
	assert.NoError(t, err)
	assert.Empty(t, names)
}

func TestRedisStore_Prefix(t *testing.T) {
	mr, client := setup(t)
	store := redis.NewFromClient(client, redis.WithPrefix("custom:app:"))
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, "loop", sink()))

	assert.True(t, mr.Exists("custom:app:automaton:loop"), "expected document key with custom prefix")
	assert.True(t, mr.Exists("custom:app:index"), "expected index with custom prefix")

	raw, err := mr.Get("custom:app:automaton:loop")
	require.NoError(t, err)
	a, err := codec.Load([]byte(raw))
	require.NoError(t, err)
	assert.True(t, sink().Equal(a))

	names, err := store.List(ctx)
	assert.NoError(t, err)
	assert.Equal(t, []string{"loop"}, names)
}

func TestRedisStore_CorruptDocument(t *testing.T) {
	mr, client := setup(t)
	store := redis.NewFromClient(client)
	require.NoError(t, mr.Set(redis.DefaultPrefix+"automaton:bad", `{"states": []}`))

	_, err := store.Load(context.Background(), "bad")
	require.Error(t, err)
	assert.NotErrorIs(t, err, ports.ErrNotFound)
}

func TestRedisStore_Ping(t *testing.T) {
	mr, client := setup(t)
	store := redis.NewFromClient(client)
	assert.NoError(t, store.Ping(context.Background()))

	mr.Close()
	assert.Error(t, store.Ping(context.Background()))
}
