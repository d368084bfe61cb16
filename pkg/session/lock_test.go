package session

import (
	"context"
	"fmt"
	"testing"

	"github.com/aretw0/rewind/pkg/adapters/memory"
	"github.com/aretw0/rewind/pkg/domain"
)

func TestManager_LockLifecycle(t *testing.T) {
	def := domain.Definition{
		Initial: "A",
		States:  map[string]domain.StateDefinition{"A": {}},
	}
	mgr := NewManager(def, memory.NewStore())
	ctx := context.Background()
	count := 1000

	for i := 0; i < count; i++ {
		sid := fmt.Sprintf("session-%d", i)
		_, _ = mgr.Start(ctx, sid)
		_ = mgr.Delete(ctx, sid)
	}

	mgr.mu.Lock()
	lockCount := len(mgr.locks)
	mgr.mu.Unlock()

	if lockCount != 0 {
		t.Errorf("Lock leak detected: %d locks remaining in map (expected 0)", lockCount)
	}
}
