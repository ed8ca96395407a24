package builtin

import (
	"fmt"
	"reflect"

	"github.com/viant/fbp/model/types"
	"github.com/viant/toolbox"
)

func invert(value interface{}) (interface{}, error) {
	return !truthy(value), nil
}

// truthy: false, nil, numeric zero and empty strings/collections are false
func truthy(value interface{}) bool {
	if value == nil {
		return false
	}
	if b, ok := value.(bool); ok {
		return b
	}
	v := reflect.ValueOf(value)
	switch v.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return v.Int() != 0
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return v.Uint() != 0
	case reflect.Float32, reflect.Float64:
		return v.Float() != 0
	case reflect.String, reflect.Slice, reflect.Map, reflect.Array:
		return v.Len() > 0
	case reflect.Ptr, reflect.Interface:
		return !v.IsNil()
	}
	return true
}

func increment(value interface{}) (interface{}, error) {
	if !isNumber(value) {
		return nil, fmt.Errorf("increment: %w", types.NewInvalidInputError(value))
	}
	if toolbox.IsInt(value) {
		return toolbox.AsInt(value) + 1, nil
	}
	return toolbox.AsFloat(value) + 1, nil
}

func stringify(value interface{}) (interface{}, error) {
	return toolbox.AsString(value), nil
}
