package fsm

import "github.com/aretw0/rewind/pkg/domain"

// History returns a copy of the visited states.
func (m *Machine) History() []string {
	return append([]string(nil), m.history...)
}

// Cursor returns the index of the current entry in History.
func (m *Machine) Cursor() int {
	return m.cursor
}

// CanUndo reports whether Undo would move the machine.
func (m *Machine) CanUndo() bool {
	return m.cursor > 0
}

// CanRedo reports whether Redo would move the machine.
func (m *Machine) CanRedo() bool {
	return m.cursor < len(m.history)-1
}

// CanTrigger reports whether event has a transition from the current state.
func (m *Machine) CanTrigger(event string) bool {
	_, ok := m.def.States[m.current].Target(event)
	return ok
}

// PermittedEvents returns the events that can be triggered from the current state.
func (m *Machine) PermittedEvents() []string {
	return m.def.States[m.current].Events()
}

// Snapshot captures the runtime state for persistence.
func (m *Machine) Snapshot() domain.Snapshot {
	return domain.Snapshot{
		Current: m.current,
		History: m.History(),
		Cursor:  m.cursor,
	}
}
