package runner

import (
	"context"

	"github.com/aretw0/dfa/pkg/automaton"
)

// Status is the outcome of one input.
type Status string

const (
	StatusAccepted Status = "accepted"
	StatusRejected Status = "rejected"
	StatusError    Status = "error"
)

// Result is the verdict for a single input.
type Result struct {
	Index      int    `json:"index"`
	Input      string `json:"input"`
	Status     Status `json:"status"`
	FinalState string `json:"final_state,omitempty"`
	Steps      int    `json:"steps"`
	Error      string `json:"error,omitempty"`
}

// Summary counts results by status.
type Summary struct {
	Total    int `json:"total"`
	Accepted int `json:"accepted"`
	Rejected int `json:"rejected"`
	Errors   int `json:"errors"`
}

// Add counts r.
func (s *Summary) Add(r Result) {
	s.Total++
	switch r.Status {
	case StatusAccepted:
		s.Accepted++
	case StatusRejected:
		s.Rejected++
	default:
		s.Errors++
	}
}

// Check sanitizes, tokenizes and simulates one input.
func Check(a *automaton.Automaton, index int, input string) Result {
	res := Result{Index: index, Input: input}

	clean, err := SanitizeInput(input)
	if err != nil {
		res.Status = StatusError
		res.Error = err.Error()
		return res
	}

	trace, err := a.SimulateString(clean)
	if err != nil {
		res.Status = StatusError
		res.Error = err.Error()
		return res
	}

	res.FinalState = trace.FinalState
	res.Steps = len(trace.Steps) - 1
	if trace.Accepted {
		res.Status = StatusAccepted
	} else {
		res.Status = StatusRejected
	}
	return res
}

// Validate checks every input in order. A cancelled context stops the loop
// between inputs and the results gathered so far are returned with ctx.Err().
func Validate(ctx context.Context, a *automaton.Automaton, inputs []string) ([]Result, error) {
	results := make([]Result, 0, len(inputs))
	for i, in := range inputs {
		if err := ctx.Err(); err != nil {
			return results, err
		}
		results = append(results, Check(a, i, in))
	}
	return results, nil
}
