package builtin

import (
	"errors"
	"fmt"

	"github.com/viant/fbp/service/component/nary"
	"github.com/viant/toolbox"
)

// ErrDivisionByZero is returned by Divide when b is zero
var ErrDivisionByZero = errors.New("division by zero")

type operator func(a, b interface{}) (interface{}, error)

func binary(op operator) nary.Func {
	return func(args ...interface{}) (interface{}, error) {
		if len(args) != 2 {
			return nil, fmt.Errorf("expected 2 arguments, got %d", len(args))
		}
		return op(args[0], args[1])
	}
}

func add(a, b interface{}) (interface{}, error) {
	if x, ok := a.(string); ok {
		if y, ok := b.(string); ok {
			return x + y, nil
		}
	}
	return arithmetic("add", a, b,
		func(x, y int) (interface{}, error) { return x + y, nil },
		func(x, y float64) (interface{}, error) { return x + y, nil })
}

func subtract(a, b interface{}) (interface{}, error) {
	return arithmetic("subtract", a, b,
		func(x, y int) (interface{}, error) { return x - y, nil },
		func(x, y float64) (interface{}, error) { return x - y, nil })
}

func multiply(a, b interface{}) (interface{}, error) {
	return arithmetic("multiply", a, b,
		func(x, y int) (interface{}, error) { return x * y, nil },
		func(x, y float64) (interface{}, error) { return x * y, nil })
}

func divide(a, b interface{}) (interface{}, error) {
	return arithmetic("divide", a, b,
		func(x, y int) (interface{}, error) {
			if y == 0 {
				return nil, ErrDivisionByZero
			}
			return x / y, nil
		},
		func(x, y float64) (interface{}, error) {
			if y == 0 {
				return nil, ErrDivisionByZero
			}
			return x / y, nil
		})
}

// arithmetic keeps integer operands integral and promotes mixed operands to float64
func arithmetic(op string, a, b interface{}, ints func(x, y int) (interface{}, error), floats func(x, y float64) (interface{}, error)) (interface{}, error) {
	if !isNumber(a) || !isNumber(b) {
		return nil, fmt.Errorf("%s: unsupported operands %T and %T", op, a, b)
	}
	if toolbox.IsInt(a) && toolbox.IsInt(b) {
		return ints(toolbox.AsInt(a), toolbox.AsInt(b))
	}
	return floats(toolbox.AsFloat(a), toolbox.AsFloat(b))
}

func isNumber(v interface{}) bool {
	if _, ok := v.(bool); ok {
		return false
	}
	return toolbox.IsInt(v) || toolbox.IsFloat(v)
}
