package extension

import (
	"fmt"
	"sort"
	"sync"

	"github.com/viant/fbp/model/types"
)

// Description describes a component type's ports
type Description struct {
	Name        string
	Description string
	InPorts     []string
	OutPorts    []string
}

// Components maps component type names to factories
type Components struct {
	factories    map[string]types.Factory
	descriptions map[string]string
	mux          sync.RWMutex
}

// Register registers a factory under name, replacing any previous registration
func (c *Components) Register(name string, factory types.Factory, description ...string) {
	c.mux.Lock()
	defer c.mux.Unlock()
	c.factories[name] = factory
	if len(description) > 0 {
		c.descriptions[name] = description[0]
	}
}

// Lookup returns the factory registered under name or nil
func (c *Components) Lookup(name string) types.Factory {
	c.mux.RLock()
	defer c.mux.RUnlock()
	return c.factories[name]
}

// Has returns true if name is registered
func (c *Components) Has(name string) bool {
	return c.Lookup(name) != nil
}

// New instantiates a fresh component of the named type
func (c *Components) New(name string) (types.Component, error) {
	factory := c.Lookup(name)
	if factory == nil {
		return nil, types.NewConfigurationError("instantiate", "", "", fmt.Errorf("%w %q", types.ErrUnknownComponent, name))
	}
	return factory(), nil
}

// Names returns registered type names in sorted order
func (c *Components) Names() []string {
	c.mux.RLock()
	defer c.mux.RUnlock()
	result := make([]string, 0, len(c.factories))
	for name := range c.factories {
		result = append(result, name)
	}
	sort.Strings(result)
	return result
}

// Describe instantiates the named type to enumerate its ports
func (c *Components) Describe(name string) (*Description, error) {
	component, err := c.New(name)
	if err != nil {
		return nil, err
	}
	c.mux.RLock()
	description := c.descriptions[name]
	c.mux.RUnlock()
	ports := component.Ports()
	return &Description{
		Name:        name,
		Description: description,
		InPorts:     ports.Inbound(),
		OutPorts:    ports.Outbound(),
	}, nil
}

// NewComponents creates an empty registry
func NewComponents() *Components {
	return &Components{
		factories:    make(map[string]types.Factory),
		descriptions: make(map[string]string),
	}
}
