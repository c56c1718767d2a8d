package automaton

import (
	"errors"
	"fmt"
	"strings"
)

// ErrInvalidAutomaton matches every structural error returned by New.
var ErrInvalidAutomaton = errors.New("invalid automaton")

// ErrUnknownSymbol is returned when an input contains a symbol outside the alphabet.
var ErrUnknownSymbol = errors.New("unknown symbol")

// Sentinels for each violation kind, reachable with errors.Is.
var (
	ErrEmptyStates       = errors.New("no states declared")
	ErrEmptyAlphabet     = errors.New("no symbols declared")
	ErrEmptySymbol       = errors.New("empty symbol in alphabet")
	ErrUnknownInitial    = errors.New("initial state not declared")
	ErrUnknownFinal      = errors.New("final state not declared")
	ErrMissingTransition = errors.New("missing transition")
	ErrUnknownTarget     = errors.New("transition target not declared")
	ErrUnknownSource     = errors.New("transitions defined for undeclared state")
	ErrUndeclaredSymbol  = errors.New("transition uses undeclared symbol")
)

// ViolationKind classifies a well-formedness failure.
type ViolationKind string

const (
	EmptyStates       ViolationKind = "empty_states"
	EmptyAlphabet     ViolationKind = "empty_alphabet"
	EmptySymbol       ViolationKind = "empty_symbol"
	UnknownInitial    ViolationKind = "unknown_initial"
	UnknownFinal      ViolationKind = "unknown_final"
	MissingTransition ViolationKind = "missing_transition"
	UnknownTarget     ViolationKind = "unknown_target"
	UnknownSource     ViolationKind = "unknown_source"
	UnknownSymbol     ViolationKind = "unknown_symbol"
)

var kindErrors = map[ViolationKind]error{
	EmptyStates:       ErrEmptyStates,
	EmptyAlphabet:     ErrEmptyAlphabet,
	EmptySymbol:       ErrEmptySymbol,
	UnknownInitial:    ErrUnknownInitial,
	UnknownFinal:      ErrUnknownFinal,
	MissingTransition: ErrMissingTransition,
	UnknownTarget:     ErrUnknownTarget,
	UnknownSource:     ErrUnknownSource,
	UnknownSymbol:     ErrUndeclaredSymbol,
}

// Violation is a single well-formedness failure.
// State, Symbol and Target are filled in when they apply to the kind.
type Violation struct {
	Kind   ViolationKind `json:"kind"`
	State  string        `json:"state,omitempty"`
	Symbol string        `json:"symbol,omitempty"`
	Target string        `json:"target,omitempty"`
}

func (v *Violation) Error() string {
	switch v.Kind {
	case EmptyStates, EmptyAlphabet, EmptySymbol:
		return v.Unwrap().Error()
	case UnknownInitial:
		return fmt.Sprintf("initial state %q is not declared", v.State)
	case UnknownFinal:
		return fmt.Sprintf("final state %q is not declared", v.State)
	case MissingTransition:
		return fmt.Sprintf("missing transition from %q on symbol %q", v.State, v.Symbol)
	case UnknownTarget:
		return fmt.Sprintf("transition %s --%s--> %s targets an undeclared state", v.State, v.Symbol, v.Target)
	case UnknownSource:
		return fmt.Sprintf("transitions defined for undeclared state %q", v.State)
	case UnknownSymbol:
		return fmt.Sprintf("transition from %q uses undeclared symbol %q", v.State, v.Symbol)
	default:
		return fmt.Sprintf("invalid automaton (%s)", v.Kind)
	}
}

// Unwrap returns the sentinel error of the violation kind.
func (v *Violation) Unwrap() error {
	if err, ok := kindErrors[v.Kind]; ok {
		return err
	}
	return ErrInvalidAutomaton
}

// StructuralError reports every violation found while building an automaton.
type StructuralError struct {
	Violations []Violation
}

func (e *StructuralError) Error() string {
	if len(e.Violations) == 1 {
		return "invalid automaton: " + e.Violations[0].Error()
	}
	var sb strings.Builder
	fmt.Fprintf(&sb, "invalid automaton: %d violations:\n", len(e.Violations))
	for i := range e.Violations {
		fmt.Fprintf(&sb, "  %d. %s\n", i+1, e.Violations[i].Error())
	}
	return strings.TrimSuffix(sb.String(), "\n")
}

// Is reports ErrInvalidAutomaton for any structural error.
func (e *StructuralError) Is(target error) bool {
	return target == ErrInvalidAutomaton
}

// Unwrap exposes the individual violations to errors.Is and errors.As.
func (e *StructuralError) Unwrap() []error {
	errs := make([]error, len(e.Violations))
	for i := range e.Violations {
		errs[i] = &e.Violations[i]
	}
	return errs
}

// First returns the first violation.
func (e *StructuralError) First() Violation {
	if len(e.Violations) == 0 {
		return Violation{}
	}
	return e.Violations[0]
}

// Violations extracts the violation list from err, or nil if err is not structural.
func Violations(err error) []Violation {
	var se *StructuralError
	if errors.As(err, &se) {
		return se.Violations
	}
	return nil
}

// SimulationError is returned when the input cannot be read by the automaton.
type SimulationError struct {
	Symbol   string
	Position int
	Alphabet []string
}

func (e *SimulationError) Error() string {
	return fmt.Sprintf("symbol %q at position %d is not in the alphabet {%s}",
		e.Symbol, e.Position, strings.Join(e.Alphabet, ", "))
}

func (e *SimulationError) Unwrap() error { return ErrUnknownSymbol }
