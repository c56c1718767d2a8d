package codec

import (
	"errors"
	"fmt"
)

var (
	// ErrFormat matches every *FormatError.
	ErrFormat = errors.New("invalid automaton document")
	// ErrEncoding matches every *EncodingError.
	ErrEncoding = errors.New("cannot encode automaton")
)

// FormatError reports a document that is not syntactically valid,
// misses a required field or declares an unsupported version.
type FormatError struct {
	Field  string // empty for syntax errors
	Reason string
	Err    error
}

func (e *FormatError) Error() string {
	msg := "invalid automaton document"
	if e.Field != "" {
		msg += fmt.Sprintf(": field %q", e.Field)
	}
	if e.Reason != "" {
		msg += ": " + e.Reason
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *FormatError) Is(target error) bool { return target == ErrFormat }

func (e *FormatError) Unwrap() error { return e.Err }

// EncodingError reports an automaton that could not be serialized.
type EncodingError struct {
	Format Format
	Err    error
}

func (e *EncodingError) Error() string {
	return fmt.Sprintf("cannot encode automaton as %s: %v", e.Format, e.Err)
}

func (e *EncodingError) Is(target error) bool { return target == ErrEncoding }

func (e *EncodingError) Unwrap() error { return e.Err }
