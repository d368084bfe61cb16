/*
Package observability provides tools for monitoring Rewind machines.

It turns machine lifecycle events into Prometheus metrics and structured log
records. Both are exposed as domain.LifecycleHooks, which can be combined and
passed to fsm.WithLifecycleHooks (or session.WithMachineOptions).
*/
package observability
