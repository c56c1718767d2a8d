// Package replay steps through a simulation trace one move at a time.
//
// A Player is the cursor a simulator view drives with previous/next/reset
// buttons: position 0 shows the initial state before any symbol is read and
// the last position shows the state reached after the whole input.
package replay

import (
	"github.com/aretw0/dfa/pkg/automaton"
)

// Player is a cursor over a trace. It is not safe for concurrent use.
type Player struct {
	trace *automaton.TraceResult
	pos   int
}

// New creates a player positioned on the leading step.
func New(trace *automaton.TraceResult) *Player {
	return &Player{trace: trace}
}

// Len returns the number of steps, leading step included.
func (p *Player) Len() int { return len(p.trace.Steps) }

// Position returns the index of the current step.
func (p *Player) Position() int { return p.pos }

// Current returns the current step.
func (p *Player) Current() automaton.TraceStep {
	if p.Len() == 0 {
		return automaton.TraceStep{}
	}
	return p.trace.Steps[p.pos]
}

// State returns the highlighted state at the current position.
func (p *Player) State() string { return p.Current().To }

// Next advances one step. It returns false when already at the end.
func (p *Player) Next() bool {
	if p.pos+1 >= p.Len() {
		return false
	}
	p.pos++
	return true
}

// Prev goes back one step. It returns false when already at the start.
func (p *Player) Prev() bool {
	if p.pos == 0 {
		return false
	}
	p.pos--
	return true
}

// Reset rewinds to the leading step.
func (p *Player) Reset() { p.pos = 0 }

// Seek moves to step i, clamped to the valid range.
func (p *Player) Seek(i int) {
	p.pos = max(0, min(i, p.Len()-1))
}

// Done reports whether the whole input has been consumed.
func (p *Player) Done() bool { return p.pos >= p.Len()-1 }

// Consumed returns the symbols read up to the current position.
func (p *Player) Consumed() []string {
	return p.trace.Symbols()[:p.pos]
}

// Remaining returns the symbols not yet read.
func (p *Player) Remaining() []string {
	return p.trace.Symbols()[p.pos:]
}

// Visited returns the states highlighted so far, in order.
func (p *Player) Visited() []string {
	return p.trace.Path()[:p.pos+1]
}

// Verdict reports acceptance once the cursor reached the end.
// ok is false while the replay is still in progress.
func (p *Player) Verdict() (accepted, ok bool) {
	if !p.Done() {
		return false, false
	}
	return p.trace.Accepted, true
}
