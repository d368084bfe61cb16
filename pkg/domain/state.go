package domain

// Snapshot is the runtime state of a machine: where it is and how it got there.
// The definition is never part of a snapshot.
type Snapshot struct {
	// Current is the active state name.
	Current string `json:"current"`

	// History records every state occupied, in visitation order.
	History []string `json:"history"`

	// Cursor is the index of the "current point in time" within History.
	Cursor int `json:"cursor"`
}

// NewSnapshot creates a fresh snapshot positioned at initial.
func NewSnapshot(initial string) Snapshot {
	return Snapshot{
		Current: initial,
		History: []string{initial},
		Cursor:  0,
	}
}

// Clone returns a deep copy, so callers cannot alias the history slice.
func (s Snapshot) Clone() Snapshot {
	out := s
	out.History = append([]string(nil), s.History...)
	return out
}

// Validate checks the cursor/history invariants.
func (s Snapshot) Validate() error {
	if len(s.History) == 0 {
		return &SnapshotError{Reason: "history is empty"}
	}
	if s.Cursor < 0 || s.Cursor >= len(s.History) {
		return &SnapshotError{Reason: "cursor out of range"}
	}
	if s.History[s.Cursor] != s.Current {
		return &SnapshotError{Reason: "current state does not match history at cursor"}
	}
	return nil
}
