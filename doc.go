/*
Package rewind is a finite state machine with a navigable history.

A machine is built from a transition table: each state maps event names to target
states. Firing an event moves the machine along the table, and every state it
enters is recorded. The history behaves like the history of a text editor:
Undo and Redo move a cursor through it, and a new transition after an undo
discards the entries that could have been redone.

# Concept

The definition (what transitions exist) is immutable data. The machine holds
only the current state, the history and the cursor, so it can be captured as
a domain.Snapshot, persisted and restored later. The session package binds a
definition to a snapshot store (memory, file or Redis) and serializes access
per session, which is what the CLI, the HTTP server and the MCP server build
on.

# Usage

Load a definition from a file:

	m, err := rewind.Open("machine.yaml")
	if err != nil {
		log.Fatal(err)
	}

	if err := m.Trigger("study"); err != nil {
		log.Fatal(err)
	}
	m.Undo()
	fmt.Println(m.State())

Or declare it in code with the dsl package:

	b := dsl.New().Initial("normal")
	b.Add("normal").On("study", "busy")
	b.Add("busy").On("get_tired", "sleeping")
	def, err := b.Build()
	m := fsm.New(def)

The definition file accepts YAML or JSON:

	initial: normal
	states:
	  normal:
	    transitions: { study: busy }
	  busy:
	    transitions: { get_tired: sleeping }
	  sleeping: {}

# Rejections

Firing an event the current state does not handle, or jumping to an unknown
state, returns an error and leaves the machine untouched. The errors match
domain.ErrInvalidTransition and domain.ErrInvalidState with errors.Is.
*/
package rewind
