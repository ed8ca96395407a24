package network

import (
	"fmt"

	"github.com/viant/fbp/model/types"
)

// guard counts nested deliveries into a node and fails once the network's
// maximum depth is exceeded. Send and the port table pass through to the node.
type guard struct {
	types.Component
	network *Network
	process string
}

func (g *guard) Receive(value interface{}, port string) error {
	n := g.network
	n.depth++
	defer func() { n.depth-- }()
	if n.depth > n.maxDepth {
		return fmt.Errorf("%s.%s: %w (%d)", g.process, port, types.ErrMaxDepthExceeded, n.maxDepth)
	}
	return g.Component.Receive(value, port)
}
