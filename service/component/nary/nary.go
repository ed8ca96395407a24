// Package nary builds join components that combine several named inputs.
//
// Every input port latches the most recent value it received. Once all inputs
// hold a value the function fires with arguments in declared order, and it
// fires again on every later update, recombining the current latch values.
package nary

import (
	"github.com/viant/fbp/model/types"
	"github.com/viant/fbp/service/component/base"
)

const name = "nary"

// Func combines input values passed in declared input order
type Func func(args ...interface{}) (interface{}, error)

// Component is a join over the declared inputs
type Component struct {
	*base.Component
	inputs []string
	fn     Func
}

// Inputs returns the declared input port names in order
func (c *Component) Inputs() []string {
	return c.inputs
}

// Receive latches value on port and fires when every input is present
func (c *Component) Receive(value interface{}, port string) error {
	p := c.Port(port)
	if p == nil || p.Direction != types.DirectionIn {
		return types.NewUnknownPortError(name, port)
	}
	p.Latch(value)

	args := make([]interface{}, 0, len(c.inputs))
	for _, input := range c.inputs {
		v, ok := c.Port(input).Value()
		if !ok {
			return nil
		}
		args = append(args, v)
	}
	result, err := c.fn(args...)
	if err != nil {
		return err
	}
	return c.Send(result, types.PortOut)
}

// New creates a join component
func New(inputs []string, fn Func) *Component {
	ret := &Component{Component: base.New(name), inputs: append([]string{}, inputs...), fn: fn}
	for _, input := range inputs {
		ret.AddPort(input, types.DirectionIn)
	}
	ret.AddPort(types.PortOut, types.DirectionOut)
	return ret
}

// Factory returns a factory producing fresh join components
func Factory(inputs []string, fn Func) types.Factory {
	return func() types.Component {
		return New(inputs, fn)
	}
}

var _ types.Component = (*Component)(nil)
