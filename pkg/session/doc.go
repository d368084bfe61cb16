/*
Package session binds a machine definition to a snapshot store and serializes
access per session.

A fsm.Machine has no internal locking. The Manager restores a machine from
its stored snapshot, applies one operation and saves the result, all while
holding a per-session lock (plus an optional distributed lock for multiple
replicas). Locks are reference counted and released when unused.
*/
package session
