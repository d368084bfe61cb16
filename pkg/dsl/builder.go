package dsl

import (
	"errors"
	"fmt"

	"github.com/aretw0/rewind/pkg/domain"
)

// Builder manages the definition construction.
type Builder struct {
	initial string
	states  map[string]*StateBuilder
	order   []string
	errs    []error
}

// New creates a new definition builder.
func New() *Builder {
	return &Builder{
		states: make(map[string]*StateBuilder),
	}
}

// Initial sets the state the machine starts in.
func (b *Builder) Initial(name string) *Builder {
	b.initial = name
	return b
}

// Add creates a new state in the definition.
// If the state already exists, it returns the existing builder.
func (b *Builder) Add(name string) *StateBuilder {
	if sb, ok := b.states[name]; ok {
		return sb
	}
	sb := &StateBuilder{
		name:        name,
		transitions: make(map[string]string),
		builder:     b,
	}
	b.states[name] = sb
	b.order = append(b.order, name)
	return sb
}

// Build compiles the states into a Definition.
func (b *Builder) Build() (domain.Definition, error) {
	if len(b.errs) > 0 {
		return domain.Definition{}, fmt.Errorf("failed to build definition: %w", errors.Join(b.errs...))
	}
	if len(b.states) == 0 {
		return domain.Definition{}, fmt.Errorf("failed to build definition: no states")
	}
	if b.initial == "" {
		return domain.Definition{}, fmt.Errorf("failed to build definition: no initial state")
	}

	def := domain.Definition{
		Initial: b.initial,
		States:  make(map[string]domain.StateDefinition, len(b.states)),
		Order:   append([]string(nil), b.order...),
	}
	for name, sb := range b.states {
		transitions := make(map[string]string, len(sb.transitions))
		for event, to := range sb.transitions {
			transitions[event] = to
		}
		def.States[name] = domain.StateDefinition{Transitions: transitions}
	}
	return def, nil
}
