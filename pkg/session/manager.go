package session

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/aretw0/rewind/internal/logging"
	"github.com/aretw0/rewind/pkg/domain"
	"github.com/aretw0/rewind/pkg/fsm"
	"github.com/aretw0/rewind/pkg/ports"
)

// DefaultLockTTL bounds how long a distributed lock is held.
const DefaultLockTTL = 30 * time.Second

// lockEntry holds the mutex and the reference count.
type lockEntry struct {
	mu   sync.Mutex
	refs int
}

// Manager orchestrates session access, ensuring safe concurrent operations.
// It uses Reference Counting to garbage collect unused locks.
type Manager struct {
	def   domain.Definition
	store ports.SnapshotStore

	mu    sync.Mutex            // Global lock for the map
	locks map[string]*lockEntry // Map of active locks

	locker      ports.DistributedLocker // Optional distributed locker
	lockTTL     time.Duration
	logger      *slog.Logger
	machineOpts []fsm.Option
}

// Option configures the Manager.
type Option func(*Manager)

// WithLocker enables distributed locking.
func WithLocker(locker ports.DistributedLocker) Option {
	return func(m *Manager) {
		m.locker = locker
	}
}

// WithLockTTL sets the TTL of distributed locks.
func WithLockTTL(ttl time.Duration) Option {
	return func(m *Manager) {
		if ttl > 0 {
			m.lockTTL = ttl
		}
	}
}

// WithLogger configures a logger for the Manager and the machines it restores.
func WithLogger(logger *slog.Logger) Option {
	return func(m *Manager) {
		if logger != nil {
			m.logger = logger
		}
	}
}

// WithMachineOptions adds options applied to every restored machine
// (e.g. fsm.WithLifecycleHooks for metrics).
func WithMachineOptions(opts ...fsm.Option) Option {
	return func(m *Manager) {
		m.machineOpts = append(m.machineOpts, opts...)
	}
}

// NewManager creates a new Session Manager for def, persisted in store.
func NewManager(def domain.Definition, store ports.SnapshotStore, opts ...Option) *Manager {
	m := &Manager{
		def:     def,
		store:   store,
		locks:   make(map[string]*lockEntry),
		lockTTL: DefaultLockTTL,
		logger:  logging.NewNop(), // Default to no-op
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Definition returns the definition shared by every session.
func (m *Manager) Definition() domain.Definition {
	return m.def
}

// Store returns the underlying snapshot store.
func (m *Manager) Store() ports.SnapshotStore {
	return m.store
}

// acquire gets or creates a lock entry and increments its reference count.
// The caller MUST Lock the entry.mu, and then call release(sessionID) after unlocking.
func (m *Manager) acquire(sessionID string) *lockEntry {
	m.mu.Lock()
	defer m.mu.Unlock()

	entry, exists := m.locks[sessionID]
	if !exists {
		entry = &lockEntry{}
		m.locks[sessionID] = entry
	}
	entry.refs++
	return entry
}

// release decrements the reference count and deletes the entry if it reaches zero.
func (m *Manager) release(sessionID string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	entry, exists := m.locks[sessionID]
	if !exists {
		return
	}

	entry.refs--
	if entry.refs <= 0 {
		delete(m.locks, sessionID)
	}
}

// WithLock executes a function while holding the lock for the session.
func (m *Manager) WithLock(ctx context.Context, sessionID string, fn func(context.Context) error) error {
	entry := m.acquire(sessionID)
	entry.mu.Lock()
	defer func() {
		entry.mu.Unlock()
		m.release(sessionID)
	}()

	if m.locker != nil {
		unlock, err := m.locker.Lock(ctx, sessionID, m.lockTTL)
		if err != nil {
			return fmt.Errorf("failed to acquire distributed lock: %w", err)
		}
		defer func() {
			if err := unlock(ctx); err != nil {
				m.logger.Warn("Failed to release distributed lock (will expire via TTL)",
					"session_id", sessionID,
					"err", err,
				)
			}
		}()
	}

	return fn(ctx)
}

// Start loads a session, creating it at the initial state if it does not exist.
func (m *Manager) Start(ctx context.Context, sessionID string) (domain.Snapshot, error) {
	var snap domain.Snapshot
	err := m.WithLock(ctx, sessionID, func(ctx context.Context) error {
		var err error
		snap, err = m.store.Load(ctx, sessionID)
		if err == nil {
			return nil
		}
		if !errors.Is(err, domain.ErrSessionNotFound) {
			return fmt.Errorf("failed to check session existence: %w", err)
		}

		snap = fsm.New(m.def, m.machineOptions(sessionID)...).Snapshot()
		if err := m.store.Save(ctx, sessionID, snap); err != nil {
			return fmt.Errorf("failed to initialize session: %w", err)
		}
		m.logger.Info("session started", "session_id", sessionID, "state", snap.Current)
		return nil
	})
	return snap, err
}

// Load retrieves an existing session snapshot.
func (m *Manager) Load(ctx context.Context, sessionID string) (domain.Snapshot, error) {
	var snap domain.Snapshot
	err := m.WithLock(ctx, sessionID, func(ctx context.Context) error {
		var err error
		snap, err = m.store.Load(ctx, sessionID)
		return err
	})
	return snap, err
}

// Machine restores a detached machine for read-only inspection.
// Mutating it does not affect the stored session; use Apply for that.
func (m *Manager) Machine(ctx context.Context, sessionID string) (*fsm.Machine, error) {
	snap, err := m.Load(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	return fsm.Restore(m.def, snap, m.machineOptions(sessionID)...)
}

// Apply restores the session machine, runs fn and saves the result.
// Nothing is saved when fn returns an error.
func (m *Manager) Apply(ctx context.Context, sessionID string, fn func(*fsm.Machine) error) (domain.Snapshot, error) {
	var snap domain.Snapshot
	err := m.WithLock(ctx, sessionID, func(ctx context.Context) error {
		stored, err := m.store.Load(ctx, sessionID)
		if err != nil {
			return err
		}

		machine, err := fsm.Restore(m.def, stored, m.machineOptions(sessionID)...)
		if err != nil {
			return fmt.Errorf("session %s: %w", sessionID, err)
		}

		if err := fn(machine); err != nil {
			return err
		}

		snap = machine.Snapshot()
		if err := m.store.Save(ctx, sessionID, snap); err != nil {
			return fmt.Errorf("failed to save session: %w", err)
		}
		return nil
	})
	return snap, err
}

// Trigger fires event on the session machine.
func (m *Manager) Trigger(ctx context.Context, sessionID, event string) (domain.Snapshot, error) {
	return m.Apply(ctx, sessionID, func(machine *fsm.Machine) error {
		return machine.Trigger(event)
	})
}

// ChangeState jumps the session machine to state.
func (m *Manager) ChangeState(ctx context.Context, sessionID, state string) (domain.Snapshot, error) {
	return m.Apply(ctx, sessionID, func(machine *fsm.Machine) error {
		return machine.ChangeState(state)
	})
}

// Undo moves the session one step back. The bool is false when there was nothing to undo.
func (m *Manager) Undo(ctx context.Context, sessionID string) (bool, domain.Snapshot, error) {
	var moved bool
	snap, err := m.Apply(ctx, sessionID, func(machine *fsm.Machine) error {
		moved = machine.Undo()
		return nil
	})
	return moved, snap, err
}

// Redo moves the session one step forward. The bool is false when there was nothing to redo.
func (m *Manager) Redo(ctx context.Context, sessionID string) (bool, domain.Snapshot, error) {
	var moved bool
	snap, err := m.Apply(ctx, sessionID, func(machine *fsm.Machine) error {
		moved = machine.Redo()
		return nil
	})
	return moved, snap, err
}

// Reset returns the session to the initial state with a fresh history.
func (m *Manager) Reset(ctx context.Context, sessionID string) (domain.Snapshot, error) {
	return m.Apply(ctx, sessionID, func(machine *fsm.Machine) error {
		machine.Reset()
		return nil
	})
}

// ClearHistory drops the undo/redo information of the session.
func (m *Manager) ClearHistory(ctx context.Context, sessionID string) (domain.Snapshot, error) {
	return m.Apply(ctx, sessionID, func(machine *fsm.Machine) error {
		machine.ClearHistory()
		return nil
	})
}

// Delete removes the session from the store.
func (m *Manager) Delete(ctx context.Context, sessionID string) error {
	return m.WithLock(ctx, sessionID, func(ctx context.Context) error {
		return m.store.Delete(ctx, sessionID)
	})
}

// List delegates to the store.
func (m *Manager) List(ctx context.Context) ([]string, error) {
	return m.store.List(ctx)
}

func (m *Manager) machineOptions(sessionID string) []fsm.Option {
	opts := []fsm.Option{fsm.WithLogger(m.logger.With("session_id", sessionID))}
	return append(opts, m.machineOpts...)
}
