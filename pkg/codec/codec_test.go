package codec_test

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/aretw0/dfa/pkg/automaton"
	"github.com/aretw0/dfa/pkg/codec"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sample() *automaton.Automaton {
	return automaton.MustNew(automaton.Definition{
		States:   []string{"q0", "q1"},
		Alphabet: []string{"a", "b"},
		Initial:  "q0",
		Finals:   []string{"q1"},
		Transitions: map[string]map[string]string{
			"q0": {"a": "q1", "b": "q0"},
			"q1": {"a": "q1", "b": "q0"},
		},
	})
}

func TestSaveLoad_RoundTrip(t *testing.T) {
	a := sample()

	data, err := codec.Save(a)
	require.NoError(t, err)

	loaded, err := codec.Load(data)
	require.NoError(t, err)
	assert.True(t, a.Equal(loaded))
	assert.Equal(t, a.States(), loaded.States())
	assert.Equal(t, a.Alphabet(), loaded.Alphabet())
	assert.Equal(t, a.Initial(), loaded.Initial())
	assert.Equal(t, a.Finals(), loaded.Finals())
	assert.Equal(t, a.Transitions(), loaded.Transitions())
}

func TestSave_FieldOrderAndVersion(t *testing.T) {
	data, err := codec.Save(sample())
	require.NoError(t, err)

	text := string(data)
	keys := []string{`"version"`, `"states"`, `"alphabet"`, `"initial"`, `"finals"`, `"transitions"`}
	last := -1
	for _, k := range keys {
		idx := strings.Index(text, k)
		require.GreaterOrEqual(t, idx, 0, "missing %s", k)
		assert.Greater(t, idx, last, "%s out of order", k)
		last = idx
	}

	var raw map[string]any
	require.NoError(t, json.Unmarshal(data, &raw))
	assert.Equal(t, codec.Version, raw["version"])

	again, err := codec.Save(sample())
	require.NoError(t, err)
	assert.Equal(t, data, again, "output must be stable")
}

func TestLoad_InvalidSyntax(t *testing.T) {
	_, err := codec.Load([]byte("{invalid json}"))
	require.Error(t, err)
	assert.ErrorIs(t, err, codec.ErrFormat)
}

func TestLoad_MissingField(t *testing.T) {
	for _, field := range []string{"states", "alphabet", "initial", "finals", "transitions"} {
		t.Run(field, func(t *testing.T) {
			var raw map[string]any
			data, err := codec.Save(sample())
			require.NoError(t, err)
			require.NoError(t, json.Unmarshal(data, &raw))
			delete(raw, field)
			data, err = json.Marshal(raw)
			require.NoError(t, err)

			_, err = codec.Load(data)
			var fe *codec.FormatError
			require.ErrorAs(t, err, &fe)
			assert.Equal(t, field, fe.Field)
		})
	}
}

func TestLoad_InheritsValidation(t *testing.T) {
	doc := `{
		"version": "1.0",
		"states": ["q0"],
		"alphabet": ["a"],
		"initial": "q0",
		"finals": [],
		"transitions": {"q0": {"a": "q9"}}
	}`
	_, err := codec.Load([]byte(doc))
	require.Error(t, err)
	assert.ErrorIs(t, err, automaton.ErrUnknownTarget)
	assert.NotErrorIs(t, err, codec.ErrFormat)
}

func TestLoad_IgnoresUnknownFieldsAndMissingVersion(t *testing.T) {
	doc := `{
		"author": "someone",
		"states": ["q0"],
		"alphabet": ["a"],
		"initial": "q0",
		"finals": ["q0"],
		"transitions": {"q0": {"a": "q0"}}
	}`
	a, err := codec.Load([]byte(doc))
	require.NoError(t, err)
	assert.True(t, a.Accepts("aaa"))
}

func TestLoad_UnsupportedVersion(t *testing.T) {
	doc := `{"version": "2.0", "states": ["q0"], "alphabet": ["a"], "initial": "q0", "finals": [], "transitions": {"q0": {"a": "q0"}}}`
	_, err := codec.Load([]byte(doc))
	var fe *codec.FormatError
	require.ErrorAs(t, err, &fe)
	assert.Equal(t, "version", fe.Field)
}

func TestYAML_RoundTrip(t *testing.T) {
	a := sample()
	data, err := codec.Marshal(a, codec.FormatYAML)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(data), "version: \"1.0\""), string(data))

	loaded, err := codec.Unmarshal(data, codec.FormatYAML)
	require.NoError(t, err)
	assert.True(t, a.Equal(loaded))
}

func TestFromMap(t *testing.T) {
	a, err := codec.FromMap(map[string]any{
		"states":   []any{"q0", "q1"},
		"alphabet": []any{"a", "b"},
		"initial":  "q0",
		"finals":   []any{"q1"},
		"transitions": map[string]any{
			"q0": map[string]any{"a": "q1", "b": "q0"},
			"q1": map[string]any{"a": "q1", "b": "q0"},
		},
	})
	require.NoError(t, err)
	assert.True(t, sample().Equal(a))

	_, err = codec.FromMap(map[string]any{"states": []any{"q0"}})
	assert.ErrorIs(t, err, codec.ErrFormat)
}

func TestFiles(t *testing.T) {
	dir := t.TempDir()
	a := sample()

	for _, name := range []string{"afd.json", "afd.yaml", filepath.Join("nested", "afd.yml")} {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(dir, name)
			require.NoError(t, codec.WriteFile(path, a))
			// Overwrite must succeed too.
			require.NoError(t, codec.WriteFile(path, a))

			loaded, err := codec.ReadFile(path)
			require.NoError(t, err)
			assert.True(t, a.Equal(loaded))
		})
	}

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	for _, e := range entries {
		assert.False(t, strings.HasPrefix(e.Name(), "tmp-"), "temp file left behind: %s", e.Name())
	}

	_, err = codec.ReadFile(filepath.Join(dir, "missing.json"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestEncode_Writer(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, codec.Encode(&buf, sample(), codec.FormatJSON))
	a, err := codec.Decode(&buf, codec.FormatJSON)
	require.NoError(t, err)
	assert.True(t, sample().Equal(a))
}
