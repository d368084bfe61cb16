package middleware_test

import (
	"context"
	"strings"
	"testing"

	"github.com/aretw0/rewind/pkg/adapters/memory"
	"github.com/aretw0/rewind/pkg/domain"
	"github.com/aretw0/rewind/pkg/persistence/middleware"
	"github.com/aretw0/rewind/pkg/ports"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMiddlewareChain_Contract(t *testing.T) {
	instrument, err := middleware.NewInstrumentationMiddleware(nil)
	require.NoError(t, err)

	store := middleware.Chain(memory.NewStore(), middleware.NewValidationMiddleware(), instrument)
	ports.RunSnapshotStoreContract(t, store)
}

func TestValidationMiddleware(t *testing.T) {
	ctx := context.Background()
	underlying := NewMockStore()
	store := middleware.NewValidationMiddleware()(underlying)

	corrupt := domain.Snapshot{Current: "B", History: []string{"A"}, Cursor: 0}

	err := store.Save(ctx, "s1", corrupt)
	assert.ErrorIs(t, err, domain.ErrInvalidSnapshot)
	_, err = underlying.Load(ctx, "s1")
	assert.ErrorIs(t, err, domain.ErrSessionNotFound, "invalid snapshot must not reach the backend")

	// Corruption introduced behind the middleware is caught on read.
	require.NoError(t, underlying.Save(ctx, "s2", domain.Snapshot{Current: "A", History: []string{"A"}, Cursor: 3}))
	_, err = store.Load(ctx, "s2")
	assert.ErrorIs(t, err, domain.ErrInvalidSnapshot)

	require.NoError(t, store.Save(ctx, "s3", domain.NewSnapshot("A")))
	snap, err := store.Load(ctx, "s3")
	require.NoError(t, err)
	assert.Equal(t, domain.NewSnapshot("A"), snap)
}

func TestInstrumentationMiddleware(t *testing.T) {
	ctx := context.Background()
	reg := prometheus.NewRegistry()
	instrument, err := middleware.NewInstrumentationMiddleware(reg)
	require.NoError(t, err)

	underlying := NewMockStore()
	store := instrument(underlying)

	require.NoError(t, store.Save(ctx, "s1", domain.NewSnapshot("A")))
	_, err = store.Load(ctx, "s1")
	require.NoError(t, err)
	_, err = store.Load(ctx, "missing")
	require.ErrorIs(t, err, domain.ErrSessionNotFound)

	underlying.failing = true
	require.ErrorIs(t, store.Save(ctx, "s1", domain.NewSnapshot("A")), errBackend)

	expected := `
# HELP rewind_store_errors_total Total number of failed snapshot store operations.
# TYPE rewind_store_errors_total counter
rewind_store_errors_total{op="save"} 1
`
	assert.NoError(t, testutil.GatherAndCompare(reg, strings.NewReader(expected), "rewind_store_errors_total"))

	count, err := testutil.GatherAndCount(reg, "rewind_store_operation_duration_seconds")
	require.NoError(t, err)
	assert.Equal(t, 2, count, "one series per operation kind used")

	_, err = middleware.NewInstrumentationMiddleware(reg)
	assert.Error(t, err, "registering twice on the same registry fails")
}

func TestChain_Order(t *testing.T) {
	var calls []string
	record := func(name string) middleware.Middleware {
		return func(next ports.SnapshotStore) ports.SnapshotStore {
			return &recordingStore{SnapshotStore: next, name: name, calls: &calls}
		}
	}

	store := middleware.Chain(NewMockStore(), record("outer"), record("inner"))
	require.NoError(t, store.Save(context.Background(), "s1", domain.NewSnapshot("A")))
	assert.Equal(t, []string{"outer", "inner"}, calls)
}

type recordingStore struct {
	ports.SnapshotStore
	name  string
	calls *[]string
}

func (s *recordingStore) Save(ctx context.Context, sessionID string, snap domain.Snapshot) error {
	*s.calls = append(*s.calls, s.name)
	return s.SnapshotStore.Save(ctx, sessionID, snap)
}
