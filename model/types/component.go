package types

import "sort"

// Direction of a port
type Direction string

const (
	DirectionIn  Direction = "in"
	DirectionOut Direction = "out"
)

// Conventional port names used by the built-in adapters
const (
	PortIn  = "in"
	PortOut = "out"
)

type (
	// Target is the single downstream endpoint of an output port
	Target struct {
		Component Component
		Port      string
	}

	// Port is an addressable endpoint owned by exactly one component.
	// It holds at most one outgoing target and, for join components, one latched value.
	Port struct {
		Name      string
		Direction Direction
		Target    *Target
		value     interface{}
		hasValue  bool
	}

	// Ports maps port name to port
	Ports map[string]*Port

	// Component is a process implementation wired into a network
	Component interface {
		// Ports returns the component port table
		Ports() Ports
		// Port returns the named port or nil
		Port(name string) *Port
		// Receive handles a packet arriving on the named port
		Receive(value interface{}, port string) error
		// Send forwards a packet through the named port; unwired ports drop it
		Send(value interface{}, port string) error
	}

	// Factory creates a fresh component instance
	Factory func() Component
)

// NewPort creates a port
func NewPort(name string, direction Direction) *Port {
	return &Port{Name: name, Direction: direction}
}

// Connect sets the port target, replacing any previous one
func (p *Port) Connect(component Component, port string) {
	p.Target = &Target{Component: component, Port: port}
}

// IsConnected returns true when the port has a target
func (p *Port) IsConnected() bool {
	return p.Target != nil && p.Target.Component != nil
}

// Latch stores value as the current port value
func (p *Port) Latch(value interface{}) {
	p.value = value
	p.hasValue = true
}

// Value returns the latched value and whether one was ever latched
func (p *Port) Value() (interface{}, bool) {
	return p.value, p.hasValue
}

// Reset clears the latched value
func (p *Port) Reset() {
	p.value = nil
	p.hasValue = false
}

// Names returns sorted port names with the given direction
func (p Ports) Names(direction Direction) []string {
	var result []string
	for name, port := range p {
		if port.Direction == direction {
			result = append(result, name)
		}
	}
	sort.Strings(result)
	return result
}

// Inbound returns sorted inbound port names
func (p Ports) Inbound() []string {
	return p.Names(DirectionIn)
}

// Outbound returns sorted outbound port names
func (p Ports) Outbound() []string {
	return p.Names(DirectionOut)
}
