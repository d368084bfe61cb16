package dsl_test

import (
	"testing"

	"github.com/aretw0/rewind/pkg/dsl"
	"github.com/aretw0/rewind/pkg/fsm"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuilder_SimpleFlow(t *testing.T) {
	b := dsl.New().Initial("normal")

	b.Add("normal").On("study", "busy")
	b.Add("busy").
		On("get_tired", "sleeping").
		On("get_hungry", "hungry")
	b.Add("hungry").On("eat", "normal")
	b.Add("sleeping").
		On("get_hungry", "hungry").
		On("get_up", "normal")

	def, err := b.Build()
	require.NoError(t, err)

	assert.Equal(t, "normal", def.Initial)
	assert.Equal(t, []string{"normal", "busy", "hungry", "sleeping"}, def.StateNames())
	assert.Equal(t, "sleeping", def.States["busy"].Transitions["get_tired"])

	m := fsm.New(def)
	require.NoError(t, m.Trigger("study"))
	assert.Equal(t, []string{"busy", "sleeping"}, m.StatesWithEvent("get_hungry"))
}

func TestBuilder_AddReturnsExisting(t *testing.T) {
	b := dsl.New().Initial("A")
	b.Add("A").On("go", "B").Add("B").On("back", "A")
	b.Add("A").On("stay", "A")

	def, err := b.Build()
	require.NoError(t, err)
	assert.Equal(t, []string{"A", "B"}, def.Order)
	assert.Len(t, def.States["A"].Transitions, 2)
}

func TestBuilder_Terminal(t *testing.T) {
	b := dsl.New().Initial("A")
	b.Add("A").On("go", "B")
	b.Add("B").On("go", "A").Terminal()

	def, err := b.Build()
	require.NoError(t, err)
	assert.Empty(t, def.States["B"].Transitions)
}

func TestBuilder_Errors(t *testing.T) {
	_, err := dsl.New().Initial("A").Build()
	assert.ErrorContains(t, err, "no states")

	b := dsl.New()
	b.Add("A")
	_, err = b.Build()
	assert.ErrorContains(t, err, "no initial state")

	b = dsl.New().Initial("A")
	b.Add("A").On("go", "B").On("go", "C")
	_, err = b.Build()
	assert.ErrorContains(t, err, "event 'go' already targets 'B'")
}
