package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/aretw0/dfa/pkg/automaton"
	"github.com/aretw0/dfa/pkg/codec"
	"github.com/aretw0/dfa/pkg/generator"
	"github.com/aretw0/dfa/pkg/ports"
)

type errorResponse struct {
	Error      string                `json:"error"`
	Violations []automaton.Violation `json:"violations,omitempty"`
}

// statusFor maps domain errors to HTTP status codes.
func statusFor(err error) int {
	switch {
	case errors.Is(err, ports.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, ports.ErrInvalidName),
		errors.Is(err, codec.ErrFormat),
		errors.Is(err, generator.ErrInvalidBounds):
		return http.StatusBadRequest
	case errors.Is(err, automaton.ErrInvalidAutomaton),
		errors.Is(err, automaton.ErrUnknownSymbol):
		return http.StatusUnprocessableEntity
	case errors.Is(err, ports.ErrReadOnly):
		return http.StatusMethodNotAllowed
	}
	return http.StatusInternalServerError
}

func (s *Server) fail(w http.ResponseWriter, r *http.Request, err error) {
	status := statusFor(err)
	if status == http.StatusInternalServerError {
		s.Logger.Error("request failed", "method", r.Method, "path", r.URL.Path, "err", err)
	} else {
		s.Logger.Debug("request rejected", "method", r.Method, "path", r.URL.Path, "status", status, "err", err)
	}
	s.writeError(w, status, err)
}

func (s *Server) writeError(w http.ResponseWriter, status int, err error) {
	s.writeJSON(w, status, errorResponse{
		Error:      err.Error(),
		Violations: automaton.Violations(err),
	})
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.Logger.Error("response encode failed", "err", err)
	}
}
