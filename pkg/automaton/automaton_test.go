package automaton_test

import (
	"errors"
	"testing"

	"github.com/aretw0/dfa/pkg/automaton"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// oddOnes accepts strings with an odd number of '1'.
func oddOnes() automaton.Definition {
	return automaton.Definition{
		States:   []string{"q0", "q1"},
		Alphabet: []string{"0", "1"},
		Initial:  "q0",
		Finals:   []string{"q1"},
		Transitions: map[string]map[string]string{
			"q0": {"0": "q0", "1": "q1"},
			"q1": {"0": "q1", "1": "q0"},
		},
	}
}

func TestNew_Valid(t *testing.T) {
	a, err := automaton.New(oddOnes())
	require.NoError(t, err)
	assert.True(t, a.Validate())
	assert.Empty(t, a.Violations())
	assert.Equal(t, "q0", a.Initial())
	assert.Equal(t, []string{"q0", "q1"}, a.States())
	assert.Equal(t, []string{"0", "1"}, a.Alphabet())
	assert.Equal(t, []string{"q1"}, a.Finals())
}

func TestNew_UnknownInitial(t *testing.T) {
	_, err := automaton.New(automaton.Definition{
		States:      []string{"q0"},
		Alphabet:    []string{"a"},
		Initial:     "qX",
		Finals:      []string{"q0"},
		Transitions: map[string]map[string]string{"q0": {"a": "q0"}},
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, automaton.ErrInvalidAutomaton)
	assert.ErrorIs(t, err, automaton.ErrUnknownInitial)

	var v *automaton.Violation
	require.ErrorAs(t, err, &v)
	assert.Equal(t, automaton.UnknownInitial, v.Kind)
	assert.Equal(t, "qX", v.State)
	assert.Contains(t, err.Error(), `"qX"`)
}

func TestNew_Violations(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*automaton.Definition)
		want   automaton.Violation
		target error
	}{
		{
			name:   "unknown final",
			mutate: func(d *automaton.Definition) { d.Finals = []string{"q9"} },
			want:   automaton.Violation{Kind: automaton.UnknownFinal, State: "q9"},
			target: automaton.ErrUnknownFinal,
		},
		{
			name:   "missing transition",
			mutate: func(d *automaton.Definition) { delete(d.Transitions["q1"], "0") },
			want:   automaton.Violation{Kind: automaton.MissingTransition, State: "q1", Symbol: "0"},
			target: automaton.ErrMissingTransition,
		},
		{
			name:   "missing row",
			mutate: func(d *automaton.Definition) { delete(d.Transitions, "q1") },
			want:   automaton.Violation{Kind: automaton.MissingTransition, State: "q1", Symbol: "0"},
			target: automaton.ErrMissingTransition,
		},
		{
			name:   "unknown target",
			mutate: func(d *automaton.Definition) { d.Transitions["q0"]["1"] = "q7" },
			want:   automaton.Violation{Kind: automaton.UnknownTarget, State: "q0", Symbol: "1", Target: "q7"},
			target: automaton.ErrUnknownTarget,
		},
		{
			name:   "undeclared source",
			mutate: func(d *automaton.Definition) { d.Transitions["q5"] = map[string]string{"0": "q0", "1": "q0"} },
			want:   automaton.Violation{Kind: automaton.UnknownSource, State: "q5"},
			target: automaton.ErrUnknownSource,
		},
		{
			name:   "undeclared symbol",
			mutate: func(d *automaton.Definition) { d.Transitions["q0"]["2"] = "q0" },
			want:   automaton.Violation{Kind: automaton.UnknownSymbol, State: "q0", Symbol: "2"},
			target: automaton.ErrUndeclaredSymbol,
		},
		{
			name:   "empty alphabet",
			mutate: func(d *automaton.Definition) { d.Alphabet = nil },
			want:   automaton.Violation{Kind: automaton.EmptyAlphabet},
			target: automaton.ErrEmptyAlphabet,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			def := oddOnes()
			tt.mutate(&def)

			a, err := automaton.New(def)
			assert.Nil(t, a, "no partially usable automaton is returned")
			require.Error(t, err)
			assert.ErrorIs(t, err, tt.target)
			assert.Contains(t, automaton.Violations(err), tt.want)
			assert.Contains(t, automaton.Check(def), tt.want)
		})
	}
}

func TestNew_ReportsAllViolations(t *testing.T) {
	_, err := automaton.New(automaton.Definition{
		States:      []string{"q0", "q1"},
		Alphabet:    []string{"a"},
		Initial:     "nope",
		Finals:      []string{"ghost"},
		Transitions: map[string]map[string]string{"q0": {"a": "q1"}},
	})

	var se *automaton.StructuralError
	require.True(t, errors.As(err, &se))
	assert.Equal(t, automaton.UnknownInitial, se.First().Kind)
	assert.Equal(t, []automaton.Violation{
		{Kind: automaton.UnknownInitial, State: "nope"},
		{Kind: automaton.UnknownFinal, State: "ghost"},
		{Kind: automaton.MissingTransition, State: "q1", Symbol: "a"},
	}, se.Violations)
	assert.Contains(t, err.Error(), "3 violations")
}

func TestNew_CollapsesDuplicates(t *testing.T) {
	def := oddOnes()
	def.States = []string{"q0", "q1", "q0"}
	def.Alphabet = []string{"0", "1", "1"}
	def.Finals = []string{"q1", "q1"}

	a, err := automaton.New(def)
	require.NoError(t, err)
	assert.Equal(t, []string{"q0", "q1"}, a.States())
	assert.Equal(t, []string{"0", "1"}, a.Alphabet())
	assert.Equal(t, []string{"q1"}, a.Finals())
}

func TestAutomaton_IsImmutable(t *testing.T) {
	def := oddOnes()
	a, err := automaton.New(def)
	require.NoError(t, err)

	// Mutating the input after construction does not leak in.
	def.Transitions["q0"]["1"] = "q0"
	def.States[0] = "zz"

	// Mutating returned copies does not leak in either.
	a.Transitions()["q0"]["1"] = "q0"
	a.States()[0] = "zz"

	next, ok := a.Step("q0", "1")
	require.True(t, ok)
	assert.Equal(t, "q1", next)
	assert.Equal(t, "q0", a.States()[0])
}

func TestAutomaton_Equal(t *testing.T) {
	a := automaton.MustNew(oddOnes())
	b := automaton.MustNew(oddOnes())
	assert.True(t, a.Equal(b))

	def := oddOnes()
	def.Finals = []string{"q0"}
	c := automaton.MustNew(def)
	assert.False(t, a.Equal(c))
}

func TestMustNew_Panics(t *testing.T) {
	assert.Panics(t, func() {
		automaton.MustNew(automaton.Definition{})
	})
}
