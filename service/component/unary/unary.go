// Package unary builds single-input, single-output components from a function.
package unary

import (
	"github.com/viant/fbp/model/types"
	"github.com/viant/fbp/service/component/base"
)

const name = "unary"

// Func transforms a single value
type Func func(value interface{}) (interface{}, error)

// Component applies fn to every packet on "in" and sends the result to "out"
type Component struct {
	*base.Component
	fn Func
}

// Receive applies the function and forwards the result synchronously
func (c *Component) Receive(value interface{}, port string) error {
	if port != types.PortIn {
		return types.NewUnknownPortError(name, port)
	}
	result, err := c.fn(value)
	if err != nil {
		return err
	}
	return c.Send(result, types.PortOut)
}

// New creates a unary component
func New(fn Func) *Component {
	ret := &Component{Component: base.New(name), fn: fn}
	ret.AddPort(types.PortIn, types.DirectionIn)
	ret.AddPort(types.PortOut, types.DirectionOut)
	return ret
}

// Factory returns a factory producing fresh unary components around fn
func Factory(fn Func) types.Factory {
	return func() types.Component {
		return New(fn)
	}
}

var _ types.Component = (*Component)(nil)
