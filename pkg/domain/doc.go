/*
Package domain contains the core domain models of the Rewind state machine runtime.

It defines the declarative machine description (Definition), the runtime
snapshot of a machine (Snapshot), the errors raised by invalid operations and
the events emitted after each mutation. This package is kept pure and free of
external dependencies like I/O or persistence.

# Key Entities

  - Definition: the transition table plus the initial state.
  - StateDefinition: the outbound transitions (event -> target) of one state.
  - Snapshot: current state, visited history and the history cursor.
  - TransitionEvent: what happened during a mutation (for logs and metrics).
*/
package domain
