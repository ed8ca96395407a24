package types

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPort_Latch(t *testing.T) {
	port := NewPort("a", DirectionIn)
	_, ok := port.Value()
	assert.False(t, ok)

	port.Latch(nil)
	value, ok := port.Value()
	assert.True(t, ok, "nil is a legitimate latched value")
	assert.Nil(t, value)

	port.Latch(5)
	value, ok = port.Value()
	assert.True(t, ok)
	assert.Equal(t, 5, value)

	port.Reset()
	_, ok = port.Value()
	assert.False(t, ok)
}

func TestPorts_Directions(t *testing.T) {
	ports := Ports{
		"out": NewPort("out", DirectionOut),
		"b":   NewPort("b", DirectionIn),
		"a":   NewPort("a", DirectionIn),
	}
	assert.Equal(t, []string{"a", "b"}, ports.Inbound())
	assert.Equal(t, []string{"out"}, ports.Outbound())
}

func TestConfigurationError(t *testing.T) {
	testCases := []struct {
		name   string
		err    error
		expect string
		is     error
	}{
		{
			name:   "process and port",
			err:    NewConfigurationError("connect", "adder", "c", ErrUnknownPort),
			expect: "configuration error: connect adder.c: unknown port",
			is:     ErrUnknownPort,
		},
		{
			name:   "process only",
			err:    NewConfigurationError("instantiate", "x", "", ErrUnknownComponent),
			expect: "configuration error: instantiate x: unknown component type",
			is:     ErrUnknownComponent,
		},
		{
			name:   "bare",
			err:    &ConfigurationError{Err: ErrNoSource},
			expect: "configuration error: connection has neither source nor data",
			is:     ErrNoSource,
		},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.EqualValues(t, tc.expect, tc.err.Error())
			assert.True(t, errors.Is(tc.err, tc.is))
			assert.True(t, IsConfigurationError(fmt.Errorf("wrapped: %w", tc.err)))
		})
	}
	assert.False(t, IsConfigurationError(errors.New("other")))
}
