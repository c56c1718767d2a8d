package ports

import (
	"context"
	"testing"
	"time"

	"github.com/aretw0/dfa/pkg/automaton"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// contractAutomaton accepts strings over {a, b} ending in "ab".
func contractAutomaton() *automaton.Automaton {
	return automaton.MustNew(automaton.Definition{
		States:   []string{"s0", "s1", "s2"},
		Alphabet: []string{"a", "b"},
		Initial:  "s0",
		Finals:   []string{"s2"},
		Transitions: map[string]map[string]string{
			"s0": {"a": "s1", "b": "s0"},
			"s1": {"a": "s1", "b": "s2"},
			"s2": {"a": "s1", "b": "s0"},
		},
	})
}

// RunAutomatonStoreContract runs a suite of tests to verify that an AutomatonStore
// implementation adheres to the defined interface contract.
func RunAutomatonStoreContract(t *testing.T, store AutomatonStore) {
	ctx := context.Background()
	name := "contract-" + time.Now().Format("20060102150405")

	t.Run("Save and Load", func(t *testing.T) {
		a := contractAutomaton()

		err := store.Save(ctx, name, a)
		require.NoError(t, err, "Save should not return error")

		loaded, err := store.Load(ctx, name)
		require.NoError(t, err, "Load should not return error")
		assert.True(t, a.Equal(loaded), "loaded automaton should equal the saved one")
		assert.True(t, loaded.Accepts("aab"))
	})

	t.Run("Save Overwrites", func(t *testing.T) {
		b := automaton.MustNew(automaton.Definition{
			States:      []string{"only"},
			Alphabet:    []string{"x"},
			Initial:     "only",
			Finals:      []string{"only"},
			Transitions: map[string]map[string]string{"only": {"x": "only"}},
		})
		require.NoError(t, store.Save(ctx, name, b))

		loaded, err := store.Load(ctx, name)
		require.NoError(t, err)
		assert.True(t, b.Equal(loaded))
	})

	t.Run("Load Non-Existent", func(t *testing.T) {
		_, err := store.Load(ctx, "non-existent-"+name)
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("Invalid Name", func(t *testing.T) {
		err := store.Save(ctx, "../escape", contractAutomaton())
		assert.ErrorIs(t, err, ErrInvalidName)

		_, err = store.Load(ctx, "../escape")
		assert.ErrorIs(t, err, ErrInvalidName, "Load must check the name")

		err = store.Delete(ctx, "../escape")
		assert.ErrorIs(t, err, ErrInvalidName, "Delete must check the name")
	})

	t.Run("Delete", func(t *testing.T) {
		require.NoError(t, store.Save(ctx, name, contractAutomaton()))

		err := store.Delete(ctx, name)
		require.NoError(t, err, "Delete should not return error")

		_, err = store.Load(ctx, name)
		assert.ErrorIs(t, err, ErrNotFound, "Load after Delete should return ErrNotFound")

		assert.NoError(t, store.Delete(ctx, name), "Delete of a missing name should succeed")
	})

	t.Run("List", func(t *testing.T) {
		id1 := name + "-1"
		id2 := name + "-2"
		require.NoError(t, store.Save(ctx, id2, contractAutomaton()))
		require.NoError(t, store.Save(ctx, id1, contractAutomaton()))

		defer func() {
			_ = store.Delete(ctx, id1)
			_ = store.Delete(ctx, id2)
		}()

		names, err := store.List(ctx)
		require.NoError(t, err)
		assert.Contains(t, names, id1)
		assert.Contains(t, names, id2)
		assert.IsNonDecreasing(t, names)
	})
}

// RunAutomatonLoaderContract verifies a read-only loader against the
// automata it is expected to serve.
func RunAutomatonLoaderContract(t *testing.T, loader AutomatonLoader, want map[string]*automaton.Automaton) {
	t.Helper()
	ctx := context.Background()

	t.Run("Load", func(t *testing.T) {
		for name, expected := range want {
			got, err := loader.Load(ctx, name)
			require.NoError(t, err, "unexpected error loading %s", name)
			assert.True(t, expected.Equal(got), "automaton mismatch for %s", name)
		}
	})

	t.Run("Load Non-Existent", func(t *testing.T) {
		_, err := loader.Load(ctx, "non-existent-automaton")
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("List", func(t *testing.T) {
		names, err := loader.List(ctx)
		require.NoError(t, err)
		for name := range want {
			assert.Contains(t, names, name)
		}
		assert.IsNonDecreasing(t, names)
	})
}
