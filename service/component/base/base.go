// Package base provides the port table and forwarding behaviour shared by
// every component. Concrete components embed *Component and implement Receive.
package base

import (
	"github.com/viant/fbp/model/types"
)

// Component holds ports and forwards packets to port targets
type Component struct {
	name  string
	ports types.Ports
}

// Name returns the component kind used in error messages
func (c *Component) Name() string {
	return c.name
}

// Ports returns the port table
func (c *Component) Ports() types.Ports {
	return c.ports
}

// Port returns the named port or nil
func (c *Component) Port(name string) *types.Port {
	return c.ports[name]
}

// AddPort registers a port
func (c *Component) AddPort(name string, direction types.Direction) *types.Port {
	port := types.NewPort(name, direction)
	c.ports[name] = port
	return port
}

// Send forwards value to the target of the named port. A port without a target
// drops the value; this is not an error.
func (c *Component) Send(value interface{}, port string) error {
	p, ok := c.ports[port]
	if !ok {
		return types.NewUnknownPortError(c.name, port)
	}
	if !p.IsConnected() {
		return nil
	}
	return p.Target.Component.Receive(value, p.Target.Port)
}

// New creates a base component with no ports
func New(name string) *Component {
	return &Component{name: name, ports: types.Ports{}}
}
