package mcp

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/aretw0/dfa/pkg/adapters/memory"
	"github.com/aretw0/dfa/pkg/automaton"
	"github.com/aretw0/dfa/pkg/ports"
	"github.com/aretw0/dfa/pkg/runner"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestServer(t *testing.T) *Server {
	t.Helper()
	a := automaton.MustNew(automaton.Definition{
		States:   []string{"q0", "q1"},
		Alphabet: []string{"a", "b"},
		Initial:  "q0",
		Finals:   []string{"q1"},
		Transitions: map[string]map[string]string{
			"q0": {"a": "q1", "b": "q0"},
			"q1": {"a": "q1", "b": "q0"},
		},
	})
	store := memory.NewStore(map[string]*automaton.Automaton{"ends-in-a": a})
	return NewServer(store, WithGenerateBounds(3, 3))
}

func TestServer_RegistersTools(t *testing.T) {
	s := newTestServer(t)
	resp := s.mcpServer.HandleMessage(context.Background(),
		json.RawMessage(`{"jsonrpc":"2.0","id":1,"method":"tools/list"}`))
	data, err := json.Marshal(resp)
	require.NoError(t, err)
	for _, name := range []string{"list_automata", "get_automaton", "put_automaton", "validate_automaton", "simulate", "generate"} {
		assert.Contains(t, string(data), `"name":"`+name+`"`)
	}
}

func TestServer_List(t *testing.T) {
	s := newTestServer(t)
	res, err := s.handleList(context.Background(), mcp.CallToolRequest{}, struct{}{})
	require.NoError(t, err)
	assert.Equal(t, []string{"ends-in-a"}, res.Automata)
}

func TestServer_Get(t *testing.T) {
	s := newTestServer(t)
	ctx := context.Background()

	res, err := s.handleGet(ctx, mcp.CallToolRequest{}, NameArgs{Name: "ends-in-a"})
	require.NoError(t, err)
	assert.False(t, res.IsError)
	require.Len(t, res.Content, 1)
	text, ok := res.Content[0].(mcp.TextContent)
	require.True(t, ok)
	assert.Contains(t, text.Text, `"initial": "q0"`)

	res, err = s.handleGet(ctx, mcp.CallToolRequest{}, NameArgs{Name: "missing"})
	require.NoError(t, err)
	assert.True(t, res.IsError)
}

func TestServer_Validate(t *testing.T) {
	s := newTestServer(t)
	res, err := s.handleValidate(context.Background(), mcp.CallToolRequest{}, NameArgs{Name: "ends-in-a"})
	require.NoError(t, err)
	assert.True(t, res.Valid)
	assert.Empty(t, res.Violations)
}

func TestServer_Simulate(t *testing.T) {
	s := newTestServer(t)
	ctx := context.Background()

	res, err := s.handleSimulate(ctx, mcp.CallToolRequest{}, SimulateArgs{Name: "ends-in-a", Input: "ba"})
	require.NoError(t, err)
	assert.True(t, res.Accepted)
	assert.Equal(t, []string{"q0", "q0", "q1"}, res.Path())

	_, err = s.handleSimulate(ctx, mcp.CallToolRequest{}, SimulateArgs{Name: "ends-in-a", Input: "abc"})
	assert.ErrorIs(t, err, automaton.ErrUnknownSymbol)

	_, err = s.handleSimulate(ctx, mcp.CallToolRequest{}, SimulateArgs{Name: "ends-in-a", Input: "b\x1ba"})
	assert.ErrorIs(t, err, runner.ErrControlChar)

	_, err = s.handleSimulate(ctx, mcp.CallToolRequest{}, SimulateArgs{Name: "missing", Input: "a"})
	assert.ErrorIs(t, err, ports.ErrNotFound)

	_, err = s.handleSimulate(ctx, mcp.CallToolRequest{}, SimulateArgs{Input: "a"})
	assert.Error(t, err)
}

func TestServer_Generate(t *testing.T) {
	s := newTestServer(t)
	ctx := context.Background()

	res, err := s.handleGenerate(ctx, mcp.CallToolRequest{}, GenerateArgs{Name: "ends-in-a"})
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "aa", "ba"}, res.Strings)

	limit := 1
	res, err = s.handleGenerate(ctx, mcp.CallToolRequest{}, GenerateArgs{Name: "ends-in-a", Limit: &limit})
	require.NoError(t, err)
	assert.Equal(t, []string{"a"}, res.Strings)

	zero := 0
	res, err = s.handleGenerate(ctx, mcp.CallToolRequest{}, GenerateArgs{Name: "ends-in-a", Limit: &zero})
	require.NoError(t, err)
	assert.Empty(t, res.Strings)

	negative := -1
	_, err = s.handleGenerate(ctx, mcp.CallToolRequest{}, GenerateArgs{Name: "ends-in-a", MaxLength: &negative})
	assert.Error(t, err)
}

func TestServer_Put(t *testing.T) {
	s := newTestServer(t)
	ctx := context.Background()

	doc := map[string]any{
		"states":      []any{"s"},
		"alphabet":    []any{"x"},
		"initial":     "s",
		"finals":      []any{"s"},
		"transitions": map[string]any{"s": map[string]any{"x": "s"}},
	}
	res, err := s.handlePut(ctx, mcp.CallToolRequest{}, PutArgs{Name: "loop", Document: doc})
	require.NoError(t, err)
	assert.False(t, res.IsError)

	list, err := s.handleList(ctx, mcp.CallToolRequest{}, struct{}{})
	require.NoError(t, err)
	assert.Equal(t, []string{"ends-in-a", "loop"}, list.Automata)

	delete(doc, "transitions")
	res, err = s.handlePut(ctx, mcp.CallToolRequest{}, PutArgs{Name: "broken", Document: doc})
	require.NoError(t, err)
	assert.True(t, res.IsError)
}
