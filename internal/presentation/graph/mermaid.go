package graph

import (
	"fmt"
	"strings"

	"github.com/aretw0/rewind/pkg/domain"
)

// Overlay contains runtime data to visualize on the diagram.
type Overlay struct {
	VisitedStates []string
	CurrentState  string
}

// OverlayFromSnapshot highlights the history and current state of a snapshot.
func OverlayFromSnapshot(snap domain.Snapshot) *Overlay {
	return &Overlay{
		VisitedStates: snap.History,
		CurrentState:  snap.Current,
	}
}

// GenerateMermaid produces a Mermaid state diagram from a definition.
// The initial state is linked from the start pseudo-state; sink states
// (no transitions) are linked to the end pseudo-state.
// It also applies overlay styles (Visited/Current) if provided.
func GenerateMermaid(def domain.Definition, overlay *Overlay) string {
	var sb strings.Builder
	sb.WriteString("stateDiagram-v2\n")

	if def.Initial != "" {
		sb.WriteString(fmt.Sprintf("    [*] --> %s\n", sanitizeMermaidID(def.Initial)))
	}

	for _, name := range def.StateNames() {
		safeID := sanitizeMermaidID(name)
		if safeID != name {
			sb.WriteString(fmt.Sprintf("    state \"%s\" as %s\n", strings.ReplaceAll(name, "\"", "'"), safeID))
		}

		state := def.States[name]
		if len(state.Transitions) == 0 {
			sb.WriteString(fmt.Sprintf("    %s --> [*]\n", safeID))
			continue
		}
		for _, event := range state.Events() {
			safeTo := sanitizeMermaidID(state.Transitions[event])
			sb.WriteString(fmt.Sprintf("    %s --> %s : %s\n", safeID, safeTo, sanitizeLabel(event)))
		}
	}

	if overlay != nil {
		sb.WriteString("\n    %% Overlay Styles\n")
		// Force black text (color:#000) for high-contrast on light backgrounds, regardless of theme
		sb.WriteString("    classDef visited fill:#e1f5fe,stroke:#01579b,stroke-width:2px,color:#000\n")
		sb.WriteString("    classDef current fill:#ffeb3b,stroke:#fbc02d,stroke-width:4px,color:#000\n")

		visitedSet := make(map[string]bool)
		for _, name := range overlay.VisitedStates {
			safeID := sanitizeMermaidID(name)
			if safeID == "" || visitedSet[safeID] || name == overlay.CurrentState {
				continue
			}
			visitedSet[safeID] = true
			sb.WriteString(fmt.Sprintf("    class %s visited\n", safeID))
		}

		if overlay.CurrentState != "" {
			sb.WriteString(fmt.Sprintf("    class %s current\n", sanitizeMermaidID(overlay.CurrentState)))
		}
	}

	return sb.String()
}

func sanitizeMermaidID(id string) string {
	return strings.NewReplacer(
		".", "_",
		"-", "_",
		"/", "_",
		"\\", "_",
		" ", "_",
		":", "_",
	).Replace(id)
}

func sanitizeLabel(s string) string {
	return strings.NewReplacer(":", " ", ";", " ", "\n", " ").Replace(s)
}
