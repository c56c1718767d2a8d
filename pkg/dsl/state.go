package dsl

// StateBuilder provides a fluent API for configuring a state.
type StateBuilder struct {
	id      string
	final   bool
	moves   map[string]string
	builder *Builder
}

// Initial marks the state as the initial state, replacing any previous one.
func (s *StateBuilder) Initial() *StateBuilder {
	s.builder.initial = s.id
	return s
}

// Final marks the state as accepting.
func (s *StateBuilder) Final() *StateBuilder {
	s.final = true
	return s
}

// On adds the transition δ(state, symbol) = target. A later call for the same symbol wins.
// The target state is declared if it does not exist yet.
func (s *StateBuilder) On(symbol, target string) *StateBuilder {
	s.moves[symbol] = target
	s.builder.State(target)
	return s
}

// Loop adds self-transitions for every given symbol.
func (s *StateBuilder) Loop(symbols ...string) *StateBuilder {
	for _, sym := range symbols {
		s.moves[sym] = s.id
	}
	return s
}

// State switches to another state, for chaining.
func (s *StateBuilder) State(id string) *StateBuilder {
	return s.builder.State(id)
}

// ID returns the state identifier.
func (s *StateBuilder) ID() string { return s.id }

// End returns the parent builder.
func (s *StateBuilder) End() *Builder { return s.builder }
