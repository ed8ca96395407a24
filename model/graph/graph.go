package graph

import (
	"fmt"
	"sort"

	"github.com/viant/fbp/model/types"
)

type (
	// Source provides information about the origin of the graph
	Source struct {
		URL string `json:"url,omitempty" yaml:"url,omitempty"`
	}

	// Process declares a named component instance
	Process struct {
		Component string                 `json:"component" yaml:"component"`
		Metadata  map[string]interface{} `json:"metadata,omitempty" yaml:"metadata,omitempty"`
	}

	// Endpoint addresses a port on a process
	Endpoint struct {
		Process string `json:"process" yaml:"process"`
		Port    string `json:"port" yaml:"port"`
	}

	// Connection is either a process link (Src set) or an initial packet (Data set)
	Connection struct {
		Src  *Endpoint   `json:"src,omitempty" yaml:"src,omitempty"`
		Tgt  *Endpoint   `json:"tgt" yaml:"tgt"`
		Data interface{} `json:"data,omitempty" yaml:"data,omitempty"`
	}

	// Graph is the canonical, declarative graph description
	Graph struct {
		Source      *Source             `json:"source,omitempty" yaml:"source,omitempty"`
		Name        string              `json:"name,omitempty" yaml:"name,omitempty"`
		Processes   map[string]*Process `json:"processes" yaml:"processes"`
		Connections []*Connection       `json:"connections" yaml:"connections"`
	}
)

func (e *Endpoint) String() string {
	if e == nil {
		return ""
	}
	return e.Process + "." + e.Port
}

// IsLink returns true for process-to-process connections
func (c *Connection) IsLink() bool {
	return c.Src != nil
}

// IsInitial returns true for initial packet connections
func (c *Connection) IsInitial() bool {
	return c.Src == nil && c.Data != nil
}

// New creates an empty graph
func New(name string) *Graph {
	return &Graph{Name: name, Processes: map[string]*Process{}}
}

// AddProcess declares a process
func (g *Graph) AddProcess(name, component string) *Graph {
	if g.Processes == nil {
		g.Processes = map[string]*Process{}
	}
	g.Processes[name] = &Process{Component: component}
	return g
}

// Connect adds a process link
func (g *Graph) Connect(src, srcPort, tgt, tgtPort string) *Graph {
	g.Connections = append(g.Connections, &Connection{
		Src: &Endpoint{Process: src, Port: srcPort},
		Tgt: &Endpoint{Process: tgt, Port: tgtPort},
	})
	return g
}

// AddInitial adds an initial packet connection
func (g *Graph) AddInitial(data interface{}, tgt, tgtPort string) *Graph {
	g.Connections = append(g.Connections, &Connection{
		Tgt:  &Endpoint{Process: tgt, Port: tgtPort},
		Data: data,
	})
	return g
}

// ProcessNames returns sorted process names
func (g *Graph) ProcessNames() []string {
	result := make([]string, 0, len(g.Processes))
	for name := range g.Processes {
		result = append(result, name)
	}
	sort.Strings(result)
	return result
}

// Validate performs structural validation. Component types and port names are
// resolved later against a registry; here only references within the document
// are checked. The returned slice is empty when the graph is sound.
func (g *Graph) Validate() []error {
	var issues []error
	for _, name := range g.ProcessNames() {
		process := g.Processes[name]
		if name == "" {
			issues = append(issues, types.NewConfigurationError("process", "", "", fmt.Errorf("empty process name")))
			continue
		}
		if process == nil || process.Component == "" {
			issues = append(issues, types.NewConfigurationError("process", name, "", fmt.Errorf("%w: missing component", types.ErrUnknownComponent)))
		}
	}
	for i, conn := range g.Connections {
		op := fmt.Sprintf("connection[%d]", i)
		if conn == nil {
			issues = append(issues, types.NewConfigurationError(op, "", "", types.ErrNoSource))
			continue
		}
		switch {
		case conn.Src != nil && conn.Data != nil:
			issues = append(issues, types.NewConfigurationError(op, "", "", types.ErrAmbiguousConnection))
		case conn.Src == nil && conn.Data == nil:
			issues = append(issues, types.NewConfigurationError(op, "", "", types.ErrNoSource))
		}
		if conn.Tgt == nil {
			issues = append(issues, types.NewConfigurationError(op, "", "", fmt.Errorf("%w: missing target", types.ErrUnknownProcess)))
		} else if _, ok := g.Processes[conn.Tgt.Process]; !ok {
			issues = append(issues, types.NewConfigurationError(op, conn.Tgt.Process, conn.Tgt.Port, types.ErrUnknownProcess))
		}
		if conn.Src != nil {
			if _, ok := g.Processes[conn.Src.Process]; !ok {
				issues = append(issues, types.NewConfigurationError(op, conn.Src.Process, conn.Src.Port, types.ErrUnknownProcess))
			}
		}
	}
	return issues
}
