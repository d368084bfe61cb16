package fsm_test

import (
	"testing"

	"github.com/aretw0/rewind/pkg/domain"
	"github.com/aretw0/rewind/pkg/fsm"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSnapshotRestore_RoundTrip(t *testing.T) {
	m := fsm.New(student())
	require.NoError(t, m.Trigger("study"))
	require.NoError(t, m.Trigger("get_tired"))
	require.True(t, m.Undo())

	snap := m.Snapshot()
	assert.Equal(t, domain.Snapshot{
		Current: "busy",
		History: []string{"normal", "busy", "sleeping"},
		Cursor:  1,
	}, snap)

	restored, err := fsm.Restore(student(), snap)
	require.NoError(t, err)
	assert.Equal(t, "busy", restored.State())
	assert.True(t, restored.Redo())
	assert.Equal(t, "sleeping", restored.State())

	// The restored machine does not alias the snapshot.
	assert.Equal(t, []string{"normal", "busy", "sleeping"}, snap.History)
	require.NoError(t, restored.Trigger("get_up"))
	assert.Equal(t, "busy", snap.Current)
}

func TestRestore_RejectsBrokenSnapshots(t *testing.T) {
	tests := []struct {
		name string
		snap domain.Snapshot
	}{
		{"empty history", domain.Snapshot{Current: "A"}},
		{"negative cursor", domain.Snapshot{Current: "A", History: []string{"A"}, Cursor: -1}},
		{"cursor past end", domain.Snapshot{Current: "A", History: []string{"A"}, Cursor: 1}},
		{"current mismatch", domain.Snapshot{Current: "B", History: []string{"A", "B"}, Cursor: 0}},
		{"unknown current", domain.Snapshot{Current: "Z", History: []string{"A", "Z"}, Cursor: 1}},
		{"unknown history entry", domain.Snapshot{Current: "A", History: []string{"A", "Z"}, Cursor: 0}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := fsm.Restore(pingPong(), tt.snap)
			assert.ErrorIs(t, err, domain.ErrInvalidSnapshot)
		})
	}
}

func TestRestore_UnknownStateReason(t *testing.T) {
	_, err := fsm.Restore(pingPong(), domain.Snapshot{Current: "ghost", History: []string{"ghost"}})

	var snapErr *domain.SnapshotError
	require.ErrorAs(t, err, &snapErr)
	assert.Contains(t, snapErr.Error(), "'ghost'")
}

func TestRestore_AcceptsUnknownInitial(t *testing.T) {
	def := pingPong()
	def.Initial = "Z"

	m, err := fsm.Restore(def, domain.NewSnapshot("Z"))
	require.NoError(t, err)
	assert.Equal(t, "Z", m.State())
}
