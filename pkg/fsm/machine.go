package fsm

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/aretw0/rewind/internal/logging"
	"github.com/aretw0/rewind/pkg/domain"
)

// Machine tracks the current state of a Definition and the history of visited states.
type Machine struct {
	def     domain.Definition
	current string
	history []string
	cursor  int

	logger *slog.Logger
	hooks  domain.LifecycleHooks
	now    func() time.Time
}

// New creates a machine positioned at def.Initial.
// The initial state is not checked against the table; an unknown initial
// state surfaces later as an InvalidTransitionError from Trigger.
func New(def domain.Definition, opts ...Option) *Machine {
	m := &Machine{
		def:    def,
		logger: logging.NewNop(),
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(m)
	}
	m.load(domain.NewSnapshot(def.Initial))
	return m
}

// Restore rebuilds a machine from a persisted snapshot.
func Restore(def domain.Definition, snap domain.Snapshot, opts ...Option) (*Machine, error) {
	if err := snap.Validate(); err != nil {
		return nil, err
	}
	// The initial state is exempt, matching New.
	for _, name := range snap.History {
		if name != def.Initial && !def.HasState(name) {
			return nil, &domain.SnapshotError{Reason: fmt.Sprintf("state '%s' is not defined", name)}
		}
	}
	m := New(def, opts...)
	m.load(snap.Clone())
	return m, nil
}

func (m *Machine) load(snap domain.Snapshot) {
	m.current = snap.Current
	m.history = snap.History
	m.cursor = snap.Cursor
}

// State returns the active state.
func (m *Machine) State() string {
	return m.current
}

// Initial returns the configured initial state.
func (m *Machine) Initial() string {
	return m.def.Initial
}

// Definition returns the definition the machine was built from.
func (m *Machine) Definition() domain.Definition {
	return m.def
}

// ChangeState jumps directly to state. Only existence is checked; no
// transition rule is consulted.
//
// The state is appended to the tail of the history and the cursor moves
// there. Entries after the previous cursor are kept, so a later Undo walks
// back through them. Trigger, by contrast, discards them.
func (m *Machine) ChangeState(state string) error {
	if !m.def.HasState(state) {
		err := &domain.InvalidStateError{State: state}
		m.reject(domain.KindChange, state, err)
		return err
	}

	from := m.current
	m.current = state
	m.history = append(m.history, state)
	m.cursor = len(m.history) - 1

	m.emit(domain.KindChange, from, "")
	return nil
}

// Trigger fires event from the current state.
// When the cursor is behind the end of the history, the redo branch is
// discarded before the new state is appended.
func (m *Machine) Trigger(event string) error {
	next, ok := m.def.States[m.current].Target(event)
	if !ok {
		err := &domain.InvalidTransitionError{
			State:     m.current,
			Event:     event,
			Permitted: m.PermittedEvents(),
		}
		m.reject(domain.KindTrigger, event, err)
		return err
	}

	from := m.current
	m.current = next
	if m.cursor < len(m.history)-1 {
		m.history = m.history[:m.cursor+1]
	}
	m.history = append(m.history, next)
	m.cursor = len(m.history) - 1

	m.emit(domain.KindTrigger, from, event)
	return nil
}

// Reset returns the machine to its configured initial state and collapses
// the history to that single entry.
func (m *Machine) Reset() {
	from := m.current
	m.load(domain.NewSnapshot(m.def.Initial))
	m.emit(domain.KindReset, from, "")
}

// States returns every state of the table, in table-iteration order.
func (m *Machine) States() []string {
	return m.def.StateNames()
}

// StatesWithEvent returns the states that have an outbound transition for event.
// The result is empty, never nil, when nothing matches.
func (m *Machine) StatesWithEvent(event string) []string {
	states := []string{}
	for _, name := range m.def.StateNames() {
		if _, ok := m.def.States[name].Target(event); ok {
			states = append(states, name)
		}
	}
	return states
}

// Undo moves one step back in history. It returns false at the start.
func (m *Machine) Undo() bool {
	if m.cursor == 0 {
		return false
	}
	from := m.current
	m.cursor--
	m.current = m.history[m.cursor]
	m.emit(domain.KindUndo, from, "")
	return true
}

// Redo moves one step forward in history. It returns false at the end.
func (m *Machine) Redo() bool {
	if m.cursor == len(m.history)-1 {
		return false
	}
	from := m.current
	m.cursor++
	m.current = m.history[m.cursor]
	m.emit(domain.KindRedo, from, "")
	return true
}

// ClearHistory drops all undo/redo information, keeping only the current state.
func (m *Machine) ClearHistory() {
	m.history = []string{m.current}
	m.cursor = 0
	m.emit(domain.KindClear, m.current, "")
}
