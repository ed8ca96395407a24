package extension

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/viant/fbp/model/types"
	"github.com/viant/fbp/service/component/nary"
	"github.com/viant/fbp/service/component/unary"
)

func identity(v interface{}) (interface{}, error) { return v, nil }

func first(args ...interface{}) (interface{}, error) { return args[0], nil }

func TestComponents_New(t *testing.T) {
	registry := NewComponents()
	registry.Register("Identity", unary.Factory(identity))

	assert.True(t, registry.Has("Identity"))
	one, err := registry.New("Identity")
	require.NoError(t, err)
	two, err := registry.New("Identity")
	require.NoError(t, err)
	assert.NotSame(t, one, two, "each call yields a fresh instance")

	_, err = registry.New("Missing")
	require.Error(t, err)
	assert.True(t, errors.Is(err, types.ErrUnknownComponent))
	assert.True(t, types.IsConfigurationError(err))
	assert.Contains(t, err.Error(), `"Missing"`)
}

func TestComponents_Names(t *testing.T) {
	registry := NewComponents()
	registry.Register("Zeta", unary.Factory(identity))
	registry.Register("Alpha", unary.Factory(identity))
	registry.Register("Mid", unary.Factory(identity))
	assert.Equal(t, []string{"Alpha", "Mid", "Zeta"}, registry.Names())
}

func TestComponents_Describe(t *testing.T) {
	registry := NewComponents()
	registry.Register("Join", nary.Factory([]string{"b", "a", "c"}, first), "first input")

	description, err := registry.Describe("Join")
	require.NoError(t, err)
	assert.Equal(t, &Description{
		Name:        "Join",
		Description: "first input",
		InPorts:     []string{"a", "b", "c"},
		OutPorts:    []string{"out"},
	}, description)

	_, err = registry.Describe("Missing")
	assert.ErrorIs(t, err, types.ErrUnknownComponent)
}

func TestComponents_RegisterReplaces(t *testing.T) {
	registry := NewComponents()
	registry.Register("X", unary.Factory(identity))
	registry.Register("X", nary.Factory([]string{"a"}, first))
	component, err := registry.New("X")
	require.NoError(t, err)
	assert.NotNil(t, component.Port("a"))
}
