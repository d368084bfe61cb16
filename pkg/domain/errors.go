package domain

import (
	"errors"
	"fmt"
	"strings"
)

// ErrInvalidState is returned when a state name is not a key of the transition table.
var ErrInvalidState = errors.New("invalid state")

// ErrInvalidTransition is returned when the current state has no rule for an event.
var ErrInvalidTransition = errors.New("invalid transition")

// ErrSessionNotFound is returned when a session ID cannot be found in the store.
var ErrSessionNotFound = errors.New("session not found")

// ErrInvalidSnapshot is returned when a persisted snapshot breaks the history invariants.
var ErrInvalidSnapshot = errors.New("invalid snapshot")

// InvalidStateError is raised by a direct state change to an unknown state.
type InvalidStateError struct {
	State string
}

func (e *InvalidStateError) Error() string {
	return fmt.Sprintf("state '%s' is not defined", e.State)
}

// Is makes errors.Is(err, ErrInvalidState) match.
func (e *InvalidStateError) Is(target error) bool {
	return target == ErrInvalidState
}

// InvalidTransitionError is raised when an event is triggered from a state
// that has no transition for it.
type InvalidTransitionError struct {
	State     string
	Event     string
	Permitted []string
}

func (e *InvalidTransitionError) Error() string {
	permitted := " No transitions are defined from this state."
	if len(e.Permitted) > 0 {
		permitted = fmt.Sprintf(" Permitted events: %s.", strings.Join(e.Permitted, ", "))
	}
	return fmt.Sprintf("no transition from state '%s' for event '%s'.%s", e.State, e.Event, permitted)
}

// Is makes errors.Is(err, ErrInvalidTransition) match.
func (e *InvalidTransitionError) Is(target error) bool {
	return target == ErrInvalidTransition
}

// SnapshotError describes why a snapshot was rejected.
type SnapshotError struct {
	Reason string
}

func (e *SnapshotError) Error() string {
	return "invalid snapshot: " + e.Reason
}

// Is makes errors.Is(err, ErrInvalidSnapshot) match.
func (e *SnapshotError) Is(target error) bool {
	return target == ErrInvalidSnapshot
}
