package dsl

import "fmt"

// StateBuilder provides a fluent API for configuring a state.
type StateBuilder struct {
	name        string
	transitions map[string]string
	builder     *Builder
}

// On adds a transition: firing event from this state moves to target.
// Redefining an event with a different target is reported by Build.
func (s *StateBuilder) On(event, target string) *StateBuilder {
	if existing, ok := s.transitions[event]; ok && existing != target {
		s.builder.errs = append(s.builder.errs,
			fmt.Errorf("state '%s': event '%s' already targets '%s'", s.name, event, existing))
		return s
	}
	s.transitions[event] = target
	return s
}

// Terminal marks the state as a sink by dropping any transitions added so far.
func (s *StateBuilder) Terminal() *StateBuilder {
	s.transitions = make(map[string]string)
	return s
}

// Add is a shortcut to start configuring another state on the same builder.
func (s *StateBuilder) Add(name string) *StateBuilder {
	return s.builder.Add(name)
}
