package middleware_test

import (
	"context"
	"errors"

	"github.com/aretw0/rewind/pkg/domain"
	"github.com/aretw0/rewind/pkg/ports"
)

// MockStore is a simple map-based store for testing middleware.
// It stores snapshots as given, without validation.
type MockStore struct {
	data    map[string]domain.Snapshot
	failing bool
}

func NewMockStore() *MockStore {
	return &MockStore{
		data: make(map[string]domain.Snapshot),
	}
}

var errBackend = errors.New("backend unavailable")

func (s *MockStore) Save(ctx context.Context, sessionID string, snap domain.Snapshot) error {
	if s.failing {
		return errBackend
	}
	s.data[sessionID] = snap
	return nil
}

func (s *MockStore) Load(ctx context.Context, sessionID string) (domain.Snapshot, error) {
	snap, ok := s.data[sessionID]
	if !ok {
		return domain.Snapshot{}, domain.ErrSessionNotFound
	}
	return snap, nil
}

func (s *MockStore) Delete(ctx context.Context, sessionID string) error {
	delete(s.data, sessionID)
	return nil
}

func (s *MockStore) List(ctx context.Context) ([]string, error) {
	keys := make([]string, 0, len(s.data))
	for k := range s.data {
		keys = append(keys, k)
	}
	return keys, nil
}

var _ ports.SnapshotStore = (*MockStore)(nil)
