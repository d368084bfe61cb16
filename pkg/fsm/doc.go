/*
Package fsm implements the Rewind state machine: a transition table, the
current state and a linear history that supports undo and redo.

	m := fsm.New(domain.Definition{
		Initial: "A",
		States: map[string]domain.StateDefinition{
			"A": {Transitions: map[string]string{"go": "B"}},
			"B": {Transitions: map[string]string{"back": "A"}},
		},
	})

	_ = m.Trigger("go") // A -> B, history [A B]
	m.Undo()            // back to A, cursor 0
	m.Redo()            // B again

Invalid operations return *domain.InvalidStateError or
*domain.InvalidTransitionError. Undo and Redo report "nothing to do" as a
false return value instead.

A Machine is not safe for concurrent use. Hosts that share one machine across
goroutines must serialize access; see package session.
*/
package fsm
