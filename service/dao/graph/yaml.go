package graph

import (
	"fmt"
	"strings"

	"github.com/viant/fbp/internal/yml"
	model "github.com/viant/fbp/model/graph"
	"gopkg.in/yaml.v3"
)

// parseGraph converts a YAML document into a graph. Processes may be given as
// name: Component shorthand; endpoints may be given as "process.port".
func parseGraph(node *yml.Node) (*model.Graph, error) {
	root := node.Root()
	ret := model.New("")
	if root.Kind != yaml.MappingNode {
		return nil, fmt.Errorf("graph node should be a mapping")
	}
	err := root.Pairs(func(key string, valueNode *yml.Node) error {
		switch strings.ToLower(key) {
		case "name":
			ret.Name = valueNode.Value
		case "processes":
			return parseProcesses(valueNode, ret)
		case "connections":
			return parseConnections(valueNode, ret)
		}
		return nil
	})
	return ret, err
}

func parseProcesses(node *yml.Node, g *model.Graph) error {
	if node.Kind != yaml.MappingNode {
		return fmt.Errorf("processes node should be a mapping")
	}
	return node.Pairs(func(name string, processNode *yml.Node) error {
		process := &model.Process{}
		switch processNode.Kind {
		case yaml.ScalarNode:
			process.Component = processNode.Value
		case yaml.MappingNode:
			if component := processNode.Lookup("component"); component != nil {
				process.Component = component.Value
			}
			if metadata := processNode.Lookup("metadata"); metadata != nil {
				process.Metadata, _ = metadata.Interface().(map[string]interface{})
			}
		default:
			return fmt.Errorf("process %v should be a mapping or component name", name)
		}
		g.Processes[name] = process
		return nil
	})
}

func parseConnections(node *yml.Node, g *model.Graph) error {
	if node.Kind != yaml.SequenceNode {
		return fmt.Errorf("connections node should be a sequence")
	}
	return node.Items(func(index int, connNode *yml.Node) error {
		if connNode.Kind != yaml.MappingNode {
			return fmt.Errorf("connection[%d] should be a mapping", index)
		}
		conn := &model.Connection{}
		err := connNode.Pairs(func(key string, valueNode *yml.Node) error {
			var err error
			switch strings.ToLower(key) {
			case "src":
				conn.Src, err = parseEndpoint(valueNode)
			case "tgt":
				conn.Tgt, err = parseEndpoint(valueNode)
			case "data":
				conn.Data = valueNode.Interface()
			}
			if err != nil {
				return fmt.Errorf("connection[%d].%v: %w", index, key, err)
			}
			return nil
		})
		if err != nil {
			return err
		}
		g.Connections = append(g.Connections, conn)
		return nil
	})
}

func parseEndpoint(node *yml.Node) (*model.Endpoint, error) {
	switch node.Kind {
	case yaml.ScalarNode:
		index := strings.LastIndex(node.Value, ".")
		if index <= 0 || index == len(node.Value)-1 {
			return nil, fmt.Errorf("invalid endpoint %q, expected process.port", node.Value)
		}
		return &model.Endpoint{Process: node.Value[:index], Port: node.Value[index+1:]}, nil
	case yaml.MappingNode:
		ret := &model.Endpoint{}
		if process := node.Lookup("process"); process != nil {
			ret.Process = process.Value
		}
		if port := node.Lookup("port"); port != nil {
			ret.Port = port.Value
		}
		return ret, nil
	}
	return nil, fmt.Errorf("endpoint should be a mapping or process.port")
}
