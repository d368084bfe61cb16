package compiler_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/aretw0/rewind/internal/compiler"
	"github.com/aretw0/rewind/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const studentYAML = `
initial: normal
states:
  normal:
    transitions:
      study: busy
  busy:
    transitions:
      get_tired: sleeping
      get_hungry: hungry
  hungry:
    transitions:
      eat: normal
  sleeping:
    transitions:
      get_hungry: hungry
      get_up: normal
  done:
`

func TestParse_YAML(t *testing.T) {
	def, err := compiler.NewParser().Parse([]byte(studentYAML))
	require.NoError(t, err)

	assert.Equal(t, "normal", def.Initial)
	assert.Equal(t, []string{"normal", "busy", "hungry", "sleeping", "done"}, def.Order)
	assert.Equal(t, []string{"normal", "busy", "hungry", "sleeping", "done"}, def.StateNames())
	assert.Equal(t, map[string]string{"get_tired": "sleeping", "get_hungry": "hungry"}, def.States["busy"].Transitions)
	assert.True(t, def.HasState("done"))
	assert.Empty(t, def.States["done"].Transitions)
}

func TestParse_JSON(t *testing.T) {
	data := `{"initial": "B", "states": {"B": {"transitions": {"back": "A"}}, "A": {"transitions": {"go": "B"}}}}`

	def, err := compiler.NewParser().Parse([]byte(data))
	require.NoError(t, err)

	assert.Equal(t, "B", def.Initial)
	assert.Equal(t, []string{"B", "A"}, def.Order)
	assert.Equal(t, domain.StateDefinition{Transitions: map[string]string{"go": "B"}}, def.States["A"])
}

func TestParse_Errors(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"empty", ""},
		{"scalar", "just text"},
		{"missing initial", "states:\n  A: {}\n"},
		{"missing states", "initial: A\n"},
		{"unknown field", "initial: A\nstates:\n  A: {}\nguards: []\n"},
		{"bad yaml", "initial: [A\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := compiler.NewParser().Parse([]byte(tt.data))
			assert.Error(t, err)
		})
	}
}

func TestParse_EmptyDocument(t *testing.T) {
	_, err := compiler.NewParser().Parse([]byte("   \n"))
	assert.ErrorIs(t, err, compiler.ErrEmptyDefinition)
}

func TestParseFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "student.yaml")
	require.NoError(t, os.WriteFile(path, []byte(studentYAML), 0644))

	def, err := compiler.NewParser().ParseFile(path)
	require.NoError(t, err)
	assert.Len(t, def.States, 5)

	_, err = compiler.NewParser().ParseFile(filepath.Join(dir, "missing.yaml"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestDecode_GenericMap(t *testing.T) {
	raw := map[string]any{
		"initial": "A",
		"states": map[string]any{
			"A": map[string]any{"transitions": map[string]any{"go": "B"}},
			"B": nil,
		},
	}

	def, err := compiler.NewParser().Decode(raw, nil)
	require.NoError(t, err)
	assert.Equal(t, []string{"A", "B"}, def.StateNames())
	assert.Equal(t, "B", def.States["A"].Transitions["go"])
}
