/*
Package ports defines the driven ports (interfaces) for the Rewind runtime.

These interfaces decouple sessions from external implementations, allowing
machines to be persisted in various storage backends and coordinated across
replicas.

# Key Interfaces

  - SnapshotStore: persists and loads the runtime Snapshot of a session.
  - DistributedLocker: provides distributed locking for concurrent session access.
*/
package ports
