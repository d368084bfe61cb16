package testutils

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

// MoodDefinition is a small cyclic definition shared by tests.
const MoodDefinition = `
initial: normal
states:
  normal:
    transitions: { study: busy }
  busy:
    transitions: { get_tired: sleeping }
  sleeping:
    transitions: { wake: normal }
`

// WriteDefinition writes content to a machine.yaml inside dir and returns its path.
// It fails the test immediately on error.
func WriteDefinition(t *testing.T, dir, content string) string {
	t.Helper()

	path := filepath.Join(dir, "machine.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644), "Failed to write definition")

	return path
}
