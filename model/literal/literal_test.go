package literal

import (
	"encoding/json"
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/viant/fbp/model/types"
)

func TestCoerce(t *testing.T) {
	testCases := []struct {
		name   string
		raw    interface{}
		expect interface{}
	}{
		{name: "integer text", raw: "3", expect: 3},
		{name: "negative integer text", raw: "-42", expect: -42},
		{name: "float text", raw: "3.5", expect: 3.5},
		{name: "exponent text", raw: "1e3", expect: 1000.0},
		{name: "opaque text", raw: "abc", expect: "abc"},
		{name: "empty text", raw: "", expect: ""},
		{name: "json integer", raw: json.Number("7"), expect: 7},
		{name: "json float", raw: json.Number("0.25"), expect: 0.25},
		{name: "yaml int", raw: 12, expect: 12},
		{name: "int64", raw: int64(9), expect: 9},
		{name: "float64 kept", raw: 2.5, expect: 2.5},
		{name: "uint64 in range", raw: uint64(42), expect: 42},
		{name: "uint64 overflowing int", raw: uint64(math.MaxUint64), expect: float64(math.MaxUint64)},
		{name: "bool passthrough", raw: true, expect: true},
		{name: "list passthrough", raw: []interface{}{1, 2}, expect: []interface{}{1, 2}},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			actual, err := Coerce(tc.raw)
			assert.NoError(t, err)
			assert.EqualValues(t, tc.expect, actual)
			assert.IsType(t, tc.expect, actual)
		})
	}
}

func TestCoerceWith_Exhausted(t *testing.T) {
	_, err := CoerceWith("abc", AsInt, AsFloat)
	assert.True(t, errors.Is(err, types.ErrInvariant))
}

func TestCoerceWith_Order(t *testing.T) {
	// float first: integral text becomes float64
	actual, err := CoerceWith("3", AsFloat, AsInt, Passthrough)
	assert.NoError(t, err)
	assert.Equal(t, 3.0, actual)
}
