// Package literal converts raw initial-packet literals found in graph
// descriptions into runtime values.
package literal

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/viant/fbp/model/types"
)

// Converter attempts a single conversion; ok is false when it does not apply
type Converter func(raw interface{}) (value interface{}, ok bool)

// Converters is the ordered coercion cascade: integer, float, passthrough.
// The first converter that succeeds wins.
var Converters = []Converter{
	AsInt,
	AsFloat,
	Passthrough,
}

// Coerce converts raw with the default cascade
func Coerce(raw interface{}) (interface{}, error) {
	return CoerceWith(raw, Converters...)
}

// CoerceWith converts raw with the supplied cascade
func CoerceWith(raw interface{}, converters ...Converter) (interface{}, error) {
	for _, convert := range converters {
		if value, ok := convert(raw); ok {
			return value, nil
		}
	}
	return nil, fmt.Errorf("%w: no converter accepted %T", types.ErrInvariant, raw)
}

// AsInt parses integral text or passes integer kinds through as int
func AsInt(raw interface{}) (interface{}, bool) {
	switch actual := raw.(type) {
	case int:
		return actual, true
	case int8:
		return int(actual), true
	case int16:
		return int(actual), true
	case int32:
		return int(actual), true
	case int64:
		return int(actual), true
	case uint:
		return fitInt(uint64(actual))
	case uint8:
		return int(actual), true
	case uint16:
		return int(actual), true
	case uint32:
		return fitInt(uint64(actual))
	case uint64:
		return fitInt(actual)
	}
	text, ok := asText(raw)
	if !ok {
		return nil, false
	}
	value, err := strconv.ParseInt(strings.TrimSpace(text), 10, 64)
	if err != nil {
		return nil, false
	}
	return int(value), true
}

// fitInt rejects unsigned values that overflow int
func fitInt(value uint64) (interface{}, bool) {
	if value > math.MaxInt {
		return nil, false
	}
	return int(value), true
}

// AsFloat parses floating point text or passes float kinds through as float64
func AsFloat(raw interface{}) (interface{}, bool) {
	switch actual := raw.(type) {
	case float64:
		return actual, true
	case float32:
		return float64(actual), true
	case uint:
		return float64(actual), true
	case uint64:
		return float64(actual), true
	}
	text, ok := asText(raw)
	if !ok {
		return nil, false
	}
	value, err := strconv.ParseFloat(strings.TrimSpace(text), 64)
	if err != nil {
		return nil, false
	}
	return value, true
}

// Passthrough accepts any value unchanged; json.Number falls back to its text
func Passthrough(raw interface{}) (interface{}, bool) {
	switch actual := raw.(type) {
	case json.Number:
		return actual.String(), true
	case []byte:
		return string(actual), true
	}
	return raw, true
}

func asText(raw interface{}) (string, bool) {
	switch actual := raw.(type) {
	case string:
		return actual, true
	case json.Number:
		return actual.String(), true
	case []byte:
		return string(actual), true
	}
	return "", false
}
