package middleware

import (
	"context"
	"fmt"

	"github.com/aretw0/rewind/pkg/domain"
	"github.com/aretw0/rewind/pkg/ports"
)

type validationMiddleware struct {
	next ports.SnapshotStore
}

// NewValidationMiddleware rejects snapshots that break the history invariants,
// both before they are written and after they are read back.
// Errors match domain.ErrInvalidSnapshot.
func NewValidationMiddleware() Middleware {
	return func(next ports.SnapshotStore) ports.SnapshotStore {
		return &validationMiddleware{next: next}
	}
}

func (m *validationMiddleware) Save(ctx context.Context, sessionID string, snap domain.Snapshot) error {
	if err := snap.Validate(); err != nil {
		return fmt.Errorf("refusing to save session %s: %w", sessionID, err)
	}
	return m.next.Save(ctx, sessionID, snap)
}

func (m *validationMiddleware) Load(ctx context.Context, sessionID string) (domain.Snapshot, error) {
	snap, err := m.next.Load(ctx, sessionID)
	if err != nil {
		return domain.Snapshot{}, err
	}
	if err := snap.Validate(); err != nil {
		return domain.Snapshot{}, fmt.Errorf("session %s is corrupt: %w", sessionID, err)
	}
	return snap, nil
}

func (m *validationMiddleware) Delete(ctx context.Context, sessionID string) error {
	return m.next.Delete(ctx, sessionID)
}

func (m *validationMiddleware) List(ctx context.Context) ([]string, error) {
	return m.next.List(ctx)
}
