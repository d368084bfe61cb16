package validator_test

import (
	"testing"

	"github.com/aretw0/rewind/internal/validator"
	"github.com/aretw0/rewind/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateDefinition(t *testing.T) {
	t.Run("Valid", func(t *testing.T) {
		def := domain.Definition{
			Initial: "A",
			States: map[string]domain.StateDefinition{
				"A": {Transitions: map[string]string{"go": "B"}},
				"B": {Transitions: map[string]string{"back": "A", "finish": "C"}},
				"C": {},
			},
		}
		assert.NoError(t, validator.ValidateDefinition(def))
	})

	t.Run("Broken Link", func(t *testing.T) {
		def := domain.Definition{
			Initial: "A",
			States: map[string]domain.StateDefinition{
				"A": {Transitions: map[string]string{"go": "ghost"}},
			},
		}
		err := validator.ValidateDefinition(def)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "targets undefined state 'ghost'")
	})

	t.Run("Unreachable", func(t *testing.T) {
		def := domain.Definition{
			Initial: "A",
			States: map[string]domain.StateDefinition{
				"A":      {Transitions: map[string]string{"go": "B"}},
				"B":      {},
				"island": {Transitions: map[string]string{"go": "A"}},
			},
		}
		err := validator.ValidateDefinition(def)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "'island' is unreachable")
		assert.Contains(t, err.Error(), "found 1 errors")
	})

	t.Run("Unknown Initial", func(t *testing.T) {
		def := domain.Definition{
			Initial: "normal",
			States: map[string]domain.StateDefinition{
				"A": {},
			},
		}
		err := validator.ValidateDefinition(def)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "Initial state 'normal' is not defined")
	})
}

func TestReachable(t *testing.T) {
	def := domain.Definition{
		Initial: "A",
		States: map[string]domain.StateDefinition{
			"A": {Transitions: map[string]string{"go": "B", "lost": "ghost"}},
			"B": {Transitions: map[string]string{"loop": "B"}},
			"C": {},
		},
	}
	assert.Equal(t, map[string]bool{"A": true, "B": true}, validator.Reachable(def, "A"))
}
