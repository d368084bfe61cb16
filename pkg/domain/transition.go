package domain

import "sort"

// StateDefinition lists every outbound transition of a state.
// Keys are event names, values are target state names.
type StateDefinition struct {
	Transitions map[string]string `json:"transitions,omitempty" yaml:"transitions,omitempty"`
}

// Target returns the destination for event, if any.
func (s StateDefinition) Target(event string) (string, bool) {
	to, ok := s.Transitions[event]
	return to, ok
}

// Events returns the event names handled by the state, sorted.
func (s StateDefinition) Events() []string {
	events := make([]string, 0, len(s.Transitions))
	for e := range s.Transitions {
		events = append(events, e)
	}
	sort.Strings(events)
	return events
}

// Definition is the declarative description of a machine.
// It is read-only input: the runtime never mutates it.
type Definition struct {
	// Initial is the state the machine starts in.
	Initial string `json:"initial" yaml:"initial"`

	// States is the transition table, keyed by state name.
	States map[string]StateDefinition `json:"states" yaml:"states"`

	// Order is the declaration order of States, when known.
	// It is filled by the compiler and the DSL builder.
	Order []string `json:"-" yaml:"-"`
}

// HasState reports whether name is a key of the transition table.
func (d Definition) HasState(name string) bool {
	_, ok := d.States[name]
	return ok
}

// StateNames returns every state name in table-iteration order.
// Names listed in Order come first, in that order; any remaining keys follow
// in lexical order.
func (d Definition) StateNames() []string {
	names := make([]string, 0, len(d.States))
	seen := make(map[string]bool, len(d.States))
	for _, name := range d.Order {
		if _, ok := d.States[name]; ok && !seen[name] {
			seen[name] = true
			names = append(names, name)
		}
	}

	var rest []string
	for name := range d.States {
		if !seen[name] {
			rest = append(rest, name)
		}
	}
	sort.Strings(rest)
	return append(names, rest...)
}
