package http_test

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/aretw0/dfa/internal/cli"
	dfahttp "github.com/aretw0/dfa/pkg/adapters/http"
	"github.com/aretw0/dfa/pkg/adapters/memory"
	"github.com/aretw0/dfa/pkg/automaton"
	"github.com/aretw0/dfa/pkg/observability"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const evenZeros = `{
	"version": "1.0",
	"states": ["even", "odd"],
	"alphabet": ["0", "1"],
	"initial": "even",
	"finals": ["even"],
	"transitions": {
		"even": {"0": "odd", "1": "even"},
		"odd": {"0": "even", "1": "odd"}
	}
}`

func evenZerosAutomaton() *automaton.Automaton {
	return automaton.MustNew(automaton.Definition{
		States:   []string{"even", "odd"},
		Alphabet: []string{"0", "1"},
		Initial:  "even",
		Finals:   []string{"even"},
		Transitions: map[string]map[string]string{
			"even": {"0": "odd", "1": "even"},
			"odd":  {"0": "even", "1": "odd"},
		},
	})
}

func newServer(t *testing.T, opts ...dfahttp.Option) *httptest.Server {
	t.Helper()
	store := memory.NewStore(map[string]*automaton.Automaton{"even-zeros": evenZerosAutomaton()})
	h, err := dfahttp.NewHandler(store, opts...)
	require.NoError(t, err)
	ts := httptest.NewServer(h)
	t.Cleanup(ts.Close)
	return ts
}

func do(t *testing.T, ts *httptest.Server, method, path, body string) (*http.Response, []byte) {
	t.Helper()
	var r io.Reader
	if body != "" {
		r = strings.NewReader(body)
	}
	req, err := http.NewRequest(method, ts.URL+path, r)
	require.NoError(t, err)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	data, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp, data
}

func TestSpec_IsValid(t *testing.T) {
	doc, err := dfahttp.Spec(t.Context())
	require.NoError(t, err)
	assert.NotNil(t, doc.Paths.Value("/automata/{name}/simulate"))
}

func TestServer_HealthAndInfo(t *testing.T) {
	ts := newServer(t)

	resp, body := do(t, ts, http.MethodGet, "/health", "")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.JSONEq(t, `{"status":"ok"}`, string(body))
	assert.Equal(t, "*", resp.Header.Get("Access-Control-Allow-Origin"))

	resp, body = do(t, ts, http.MethodGet, "/info", "")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	var info map[string]string
	require.NoError(t, json.Unmarshal(body, &info))
	assert.Equal(t, "dfa-http", info["app"])
	assert.Equal(t, "1.0", info["format"])
}

func TestServer_CRUD(t *testing.T) {
	ts := newServer(t)

	resp, body := do(t, ts, http.MethodPut, "/automata/copy", evenZeros)
	require.Equal(t, http.StatusOK, resp.StatusCode, string(body))

	resp, body = do(t, ts, http.MethodGet, "/automata", "")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.JSONEq(t, `{"automata":["copy","even-zeros"]}`, string(body))

	resp, body = do(t, ts, http.MethodGet, "/automata/copy", "")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.JSONEq(t, evenZeros, string(body))

	resp, _ = do(t, ts, http.MethodDelete, "/automata/copy", "")
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)

	resp, _ = do(t, ts, http.MethodGet, "/automata/copy", "")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestServer_ReadOnlyStore(t *testing.T) {
	store := cli.ReadOnly(memory.NewStore(map[string]*automaton.Automaton{"even-zeros": evenZerosAutomaton()}))
	h, err := dfahttp.NewHandler(store)
	require.NoError(t, err)
	ts := httptest.NewServer(h)
	t.Cleanup(ts.Close)

	resp, _ := do(t, ts, http.MethodPut, "/automata/copy", evenZeros)
	assert.Equal(t, http.StatusMethodNotAllowed, resp.StatusCode)

	resp, _ = do(t, ts, http.MethodDelete, "/automata/even-zeros", "")
	assert.Equal(t, http.StatusMethodNotAllowed, resp.StatusCode)

	resp, _ = do(t, ts, http.MethodGet, "/automata/even-zeros", "")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestServer_PutInvalidAutomaton(t *testing.T) {
	ts := newServer(t)

	doc := `{"states":["q0"],"alphabet":["a"],"initial":"q0","finals":[],"transitions":{"q0":{}}}`
	resp, body := do(t, ts, http.MethodPut, "/automata/broken", doc)
	assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)

	var out struct {
		Error      string                `json:"error"`
		Violations []automaton.Violation `json:"violations"`
	}
	require.NoError(t, json.Unmarshal(body, &out))
	require.NotEmpty(t, out.Violations)
	assert.Equal(t, automaton.MissingTransition, out.Violations[0].Kind)
}

func TestServer_RequestValidation(t *testing.T) {
	ts := newServer(t)

	resp, _ := do(t, ts, http.MethodPut, "/automata/x", `{"states":["q0"]}`)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp, _ = do(t, ts, http.MethodPost, "/automata/even-zeros/generate", `{"limit":-1}`)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp, _ = do(t, ts, http.MethodPost, "/automata/even-zeros/batch", `{}`)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp, _ = do(t, ts, http.MethodGet, "/automata/.hidden", "")
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestServer_ValidateDocument(t *testing.T) {
	ts := newServer(t)

	resp, body := do(t, ts, http.MethodPost, "/validate", evenZeros)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.JSONEq(t, `{"valid":true,"violations":[]}`, string(body))

	doc := `{"states":["q0"],"alphabet":["a"],"initial":"q9","finals":[],"transitions":{"q0":{"a":"q0"}}}`
	resp, body = do(t, ts, http.MethodPost, "/validate", doc)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, string(body), `"valid":false`)
	assert.Contains(t, string(body), string(automaton.UnknownInitial))

	resp, body = do(t, ts, http.MethodGet, "/automata/even-zeros/validate", "")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.JSONEq(t, `{"valid":true,"violations":[]}`, string(body))
}

func TestServer_Simulate(t *testing.T) {
	ts := newServer(t)

	resp, body := do(t, ts, http.MethodPost, "/automata/even-zeros/simulate", `{"input":"1001"}`)
	require.Equal(t, http.StatusOK, resp.StatusCode, string(body))

	var res automaton.TraceResult
	require.NoError(t, json.Unmarshal(body, &res))
	assert.True(t, res.Accepted)
	assert.Equal(t, "even", res.FinalState)
	assert.Len(t, res.Steps, 5)
	assert.Equal(t, []string{"even", "even", "odd", "even", "even"}, res.Path())

	resp, body = do(t, ts, http.MethodPost, "/automata/even-zeros/simulate", `{"symbols":["0"]}`)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.NoError(t, json.Unmarshal(body, &res))
	assert.False(t, res.Accepted)

	resp, _ = do(t, ts, http.MethodPost, "/automata/even-zeros/simulate", `{"input":"012"}`)
	assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)

	resp, body = do(t, ts, http.MethodPost, "/automata/even-zeros/simulate", `{"input":"1\u001b1"}`)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Contains(t, string(body), "control character")

	resp, _ = do(t, ts, http.MethodPost, "/automata/even-zeros/simulate", `{}`)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp, _ = do(t, ts, http.MethodPost, "/automata/missing/simulate", `{"input":""}`)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestServer_Generate(t *testing.T) {
	ts := newServer(t, dfahttp.WithGenerateBounds(3, 4))

	resp, body := do(t, ts, http.MethodPost, "/automata/even-zeros/generate", `{"limit":4,"max_length":2}`)
	require.Equal(t, http.StatusOK, resp.StatusCode, string(body))
	assert.JSONEq(t, `{"strings":["","1","00","11"],"limit":4,"max_length":2}`, string(body))

	resp, body = do(t, ts, http.MethodPost, "/automata/even-zeros/generate", `{"limit":1000000000000,"max_length":2}`)
	require.Equal(t, http.StatusOK, resp.StatusCode, string(body))
	assert.Contains(t, string(body), `"strings":["","1","00","11"]`)

	resp, body = do(t, ts, http.MethodPost, "/automata/even-zeros/generate", "")
	require.Equal(t, http.StatusOK, resp.StatusCode, string(body))
	assert.JSONEq(t, `{"strings":["","1","00"],"limit":3,"max_length":4}`, string(body))
}

func TestServer_Batch(t *testing.T) {
	ts := newServer(t)

	resp, body := do(t, ts, http.MethodPost, "/automata/even-zeros/batch", `{"inputs":["", "0", "2"]}`)
	require.Equal(t, http.StatusOK, resp.StatusCode, string(body))

	var out struct {
		Results []struct {
			Status string `json:"status"`
		} `json:"results"`
		Summary struct {
			Total    int `json:"total"`
			Accepted int `json:"accepted"`
			Rejected int `json:"rejected"`
			Errors   int `json:"errors"`
		} `json:"summary"`
	}
	require.NoError(t, json.Unmarshal(body, &out))
	require.Len(t, out.Results, 3)
	assert.Equal(t, "accepted", out.Results[0].Status)
	assert.Equal(t, "rejected", out.Results[1].Status)
	assert.Equal(t, "error", out.Results[2].Status)
	assert.Equal(t, 3, out.Summary.Total)
	assert.Equal(t, 1, out.Summary.Errors)
}

func TestServer_Graph(t *testing.T) {
	ts := newServer(t)

	resp, body := do(t, ts, http.MethodGet, "/automata/even-zeros/graph", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.True(t, strings.HasPrefix(string(body), "graph LR"))
	assert.NotContains(t, string(body), "classDef")

	resp, body = do(t, ts, http.MethodGet, "/automata/even-zeros/graph?input=0", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, string(body), "classDef current")
}

func TestServer_Metrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := observability.NewMetrics(reg)
	ts := newServer(t, dfahttp.WithHooks(m.Hooks()), dfahttp.WithMetrics(reg))

	resp, _ := do(t, ts, http.MethodPost, "/automata/even-zeros/simulate", `{"input":"11"}`)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp, body := do(t, ts, http.MethodGet, "/metrics", "")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, string(body), `dfa_simulations_total{result="accepted"} 1`)
}
