package observability

import (
	"context"
	"time"
)

// EventType defines the category of the event.
type EventType string

const (
	EventSimulate EventType = "simulate"
	EventGenerate EventType = "generate"
)

// EventBase contains common fields for all events.
type EventBase struct {
	Timestamp time.Time     `json:"timestamp"`
	Type      EventType     `json:"type"`
	Automaton string        `json:"automaton,omitempty"`
	Duration  time.Duration `json:"duration"`
}

// SimulateEvent reports a finished simulation.
type SimulateEvent struct {
	EventBase
	Symbols    int    `json:"symbols"`
	Accepted   bool   `json:"accepted"`
	FinalState string `json:"final_state,omitempty"`
	Err        error  `json:"-"`
}

// GenerateEvent reports a finished enumeration.
type GenerateEvent struct {
	EventBase
	Limit     int   `json:"limit"`
	MaxLength int   `json:"max_length"`
	Count     int   `json:"count"`
	Err       error `json:"-"`
}

// Hooks defines callbacks fired after each operation. Nil fields are skipped.
type Hooks struct {
	OnSimulate func(context.Context, *SimulateEvent)
	OnGenerate func(context.Context, *GenerateEvent)
}

// Chain returns hooks that call each of hs in order.
func Chain(hs ...Hooks) Hooks {
	return Hooks{
		OnSimulate: func(ctx context.Context, e *SimulateEvent) {
			for _, h := range hs {
				if h.OnSimulate != nil {
					h.OnSimulate(ctx, e)
				}
			}
		},
		OnGenerate: func(ctx context.Context, e *GenerateEvent) {
			for _, h := range hs {
				if h.OnGenerate != nil {
					h.OnGenerate(ctx, e)
				}
			}
		},
	}
}
