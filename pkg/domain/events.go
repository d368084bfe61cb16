package domain

import (
	"context"
	"time"
)

// TransitionKind names the operation that moved the machine.
type TransitionKind string

const (
	KindTrigger TransitionKind = "trigger"
	KindChange  TransitionKind = "change"
	KindUndo    TransitionKind = "undo"
	KindRedo    TransitionKind = "redo"
	KindReset   TransitionKind = "reset"
	KindClear   TransitionKind = "clear"
)

// TransitionEvent describes a completed mutation.
type TransitionEvent struct {
	Timestamp  time.Time      `json:"timestamp"`
	Kind       TransitionKind `json:"kind"`
	From       string         `json:"from"`
	To         string         `json:"to"`
	Event      string         `json:"event,omitempty"` // Only set for KindTrigger
	Cursor     int            `json:"cursor"`
	HistoryLen int            `json:"history_len"`
}

// RejectionEvent describes an operation that failed its precondition.
type RejectionEvent struct {
	Timestamp time.Time      `json:"timestamp"`
	Kind      TransitionKind `json:"kind"`
	State     string         `json:"state"`
	Target    string         `json:"target"` // Event name or state name, depending on Kind
	Err       error          `json:"-"`
}

// LifecycleHooks defines callbacks for machine observability.
// Hooks run after the machine has been mutated (or the call rejected) and
// cannot influence the outcome.
type LifecycleHooks struct {
	OnTransition func(context.Context, *TransitionEvent)
	OnRejected   func(context.Context, *RejectionEvent)
}
