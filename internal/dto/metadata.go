package dto

import "github.com/aretw0/rewind/pkg/domain"

// DefinitionMetadata is the on-disk shape of a machine definition.
// It uses "mapstructure" tags so it can be decoded from any generic map
// (YAML, JSON, HTTP bodies).
type DefinitionMetadata struct {
	Initial string                   `json:"initial" mapstructure:"initial"`
	States  map[string]StateMetadata `json:"states" mapstructure:"states"`
}

// StateMetadata lists the outbound transitions of one state.
// A state declared with no body (e.g. `done:` in YAML) is a sink.
type StateMetadata struct {
	Transitions map[string]string `json:"transitions" mapstructure:"transitions"`
}

// ToDomain converts the metadata into a domain definition.
// order is the declaration order of the states, if known.
func (m DefinitionMetadata) ToDomain(order []string) domain.Definition {
	def := domain.Definition{
		Initial: m.Initial,
		States:  make(map[string]domain.StateDefinition, len(m.States)),
		Order:   order,
	}
	for name, s := range m.States {
		transitions := make(map[string]string, len(s.Transitions))
		for event, to := range s.Transitions {
			transitions[event] = to
		}
		def.States[name] = domain.StateDefinition{Transitions: transitions}
	}
	return def
}
