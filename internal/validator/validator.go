package validator

import (
	"fmt"
	"strings"

	"github.com/aretw0/rewind/pkg/domain"
)

// ValidateDefinition checks for a missing initial state, transitions to
// undefined states and states unreachable from the initial state.
// It is a lint: the runtime accepts definitions that fail it.
func ValidateDefinition(def domain.Definition) error {
	var errors []string

	if !def.HasState(def.Initial) {
		errors = append(errors, fmt.Sprintf("Initial state '%s' is not defined", def.Initial))
	}

	// 1. Dangling targets
	for _, name := range def.StateNames() {
		state := def.States[name]
		for _, event := range state.Events() {
			target := state.Transitions[event]
			if !def.HasState(target) {
				errors = append(errors, fmt.Sprintf("Transition '%s' from '%s' targets undefined state '%s'", event, name, target))
			}
		}
	}

	// 2. Crawler
	if def.HasState(def.Initial) {
		visited := Reachable(def, def.Initial)
		for _, name := range def.StateNames() {
			if !visited[name] {
				errors = append(errors, fmt.Sprintf("State '%s' is unreachable from '%s'", name, def.Initial))
			}
		}
	}

	if len(errors) > 0 {
		return fmt.Errorf("found %d errors:\n- %s", len(errors), strings.Join(errors, "\n- "))
	}

	return nil
}

// Reachable returns the set of states reachable from start through transitions
// (breadth-first). Undefined targets are not followed.
func Reachable(def domain.Definition, start string) map[string]bool {
	visited := make(map[string]bool)
	queue := []string{start}

	for len(queue) > 0 {
		currentID := queue[0]
		queue = queue[1:]

		if visited[currentID] || !def.HasState(currentID) {
			continue
		}
		visited[currentID] = true

		state := def.States[currentID]
		for _, event := range state.Events() {
			if target := state.Transitions[event]; !visited[target] {
				queue = append(queue, target)
			}
		}
	}

	return visited
}
