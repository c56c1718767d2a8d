package runner

import (
	"context"
	"encoding/json"
	"io"
	"os"
)

// JSONHandler writes one JSON object per line: a result line for each input
// followed by a single summary line.
type JSONHandler struct {
	Encoder *json.Encoder
}

// NewJSONHandler creates a JSON-Lines handler writing to w.
func NewJSONHandler(w io.Writer) *JSONHandler {
	if w == nil {
		w = os.Stdout
	}
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	return &JSONHandler{Encoder: enc}
}

type jsonLine struct {
	Type    string   `json:"type"`
	Result  *Result  `json:"result,omitempty"`
	Summary *Summary `json:"summary,omitempty"`
}

func (h *JSONHandler) Result(ctx context.Context, r Result) error {
	return h.Encoder.Encode(jsonLine{Type: "result", Result: &r})
}

func (h *JSONHandler) Summary(ctx context.Context, s Summary) error {
	return h.Encoder.Encode(jsonLine{Type: "summary", Summary: &s})
}
