// Package network instantiates a graph description and drives packet
// delivery between its processes.
//
// A Network is either stopped or started. Start builds fresh component
// instances, wires process links and queues initial packets. RunIteration
// delivers the packets queued at call time in FIFO order; each delivery runs
// its whole synchronous cascade before the next one starts. A Network is not
// safe for concurrent use.
package network

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"

	"github.com/viant/fbp/extension"
	"github.com/viant/fbp/internal/clock"
	"github.com/viant/fbp/internal/idgen"
	"github.com/viant/fbp/model/graph"
	"github.com/viant/fbp/model/literal"
	"github.com/viant/fbp/model/types"
	"github.com/viant/fbp/service/messaging"
	"github.com/viant/fbp/service/messaging/memory"
	"github.com/viant/fbp/service/metrics"
	"github.com/viant/fbp/tracing"
)

// State of a network
type State int

const (
	StateStopped State = iota
	StateStarted
)

func (s State) String() string {
	if s == StateStarted {
		return "started"
	}
	return "stopped"
}

// Packet is a pending delivery of Value to Port on the named process
type Packet struct {
	Process string
	Port    string
	Value   interface{}
	target  types.Component
}

// Network owns live component instances and the pending-delivery queue
type Network struct {
	graph         *graph.Graph
	registry      *extension.Components
	nodes         map[string]types.Component
	queue         messaging.Queue[*Packet]
	state         State
	runID         string
	logger        *slog.Logger
	metrics       *metrics.Metrics
	maxDepth      int
	maxIterations int
	depth         int
}

// State returns the lifecycle state
func (n *Network) State() State {
	return n.state
}

// RunID identifies the current start; it is empty while stopped
func (n *Network) RunID() string {
	return n.runID
}

// Graph returns the graph description
func (n *Network) Graph() *graph.Graph {
	return n.graph
}

// Node returns the live component instance for process, or nil
func (n *Network) Node(process string) types.Component {
	return n.nodes[process]
}

// Nodes returns the sorted names of live processes
func (n *Network) Nodes() []string {
	result := make([]string, 0, len(n.nodes))
	for name := range n.nodes {
		result = append(result, name)
	}
	sort.Strings(result)
	return result
}

// Pending returns a copy of the queued packets in delivery order
func (n *Network) Pending() []Packet {
	result := make([]Packet, 0, n.queue.Len())
	for i := 0; i < n.queue.Len(); i++ {
		result = append(result, *n.queue.At(i))
	}
	return result
}

// Start instantiates every process, wires every connection and queues the
// initial packets. Nothing is instantiated unless the whole graph resolves;
// on any error the network stays stopped and empty.
func (n *Network) Start(ctx context.Context) (err error) {
	if n.state == StateStarted {
		return types.ErrAlreadyStarted
	}
	_, span := tracing.StartSpan(ctx, "network.start", tracing.KindInternal)
	defer func() { tracing.EndSpan(span, err) }()
	if err = ctx.Err(); err != nil {
		return err
	}
	if err = n.start(); err != nil {
		n.reset()
		n.logger.Error("network start failed", "error", err)
		return err
	}
	n.state = StateStarted
	n.runID = idgen.New()
	n.metrics.RecordQueueDepth(n.queue.Len())
	span.WithAttributes(map[string]string{"graph": n.graph.Name, "run": n.runID}).
		WithInt("processes", len(n.nodes)).WithInt("pending", n.queue.Len())
	n.logger.Info("network started", "graph", n.graph.Name, "run", n.runID, "processes", len(n.nodes), "pending", n.queue.Len())
	return nil
}

func (n *Network) start() error {
	if n.graph == nil {
		return types.NewConfigurationError("start", "", "", errors.New("graph is nil"))
	}
	if issues := n.graph.Validate(); len(issues) > 0 {
		for _, issue := range issues[1:] {
			n.logger.Debug("graph issue", "error", issue)
		}
		return issues[0]
	}
	names := n.graph.ProcessNames()
	for _, name := range names {
		component := n.graph.Processes[name].Component
		if !n.registry.Has(component) {
			return types.NewConfigurationError("instantiate", name, "", fmt.Errorf("%w %q", types.ErrUnknownComponent, component))
		}
	}
	nodes := make(map[string]types.Component, len(names))
	for _, name := range names {
		node, err := n.registry.New(n.graph.Processes[name].Component)
		if err != nil {
			return err
		}
		nodes[name] = node
	}
	n.nodes = nodes

	for _, conn := range n.graph.Connections {
		if _, err := n.resolve(conn.Tgt.Process, conn.Tgt.Port); err != nil {
			return err
		}
		if conn.IsLink() {
			if _, err := n.resolve(conn.Src.Process, conn.Src.Port); err != nil {
				return err
			}
		}
	}
	for _, conn := range n.graph.Connections {
		if conn.IsLink() {
			if err := n.connect(conn.Src.Process, conn.Src.Port, conn.Tgt.Process, conn.Tgt.Port); err != nil {
				return err
			}
			continue
		}
		value, err := literal.Coerce(conn.Data)
		if err != nil {
			return err
		}
		if err = n.send(conn.Tgt.Process, conn.Tgt.Port, value); err != nil {
			return err
		}
	}
	return nil
}

// Stop discards every node and pending packet
func (n *Network) Stop() {
	if n.state == StateStarted {
		n.logger.Info("network stopped", "graph", n.graph.Name, "run", n.runID, "discarded", n.queue.Len())
	}
	n.reset()
	n.metrics.RecordQueueDepth(0)
}

func (n *Network) reset() {
	n.state = StateStopped
	n.nodes = nil
	n.queue.Reset()
	n.runID = ""
	n.depth = 0
}

// Connect sets the target of src.srcPort to tgt.tgtPort, replacing any prior target
func (n *Network) Connect(src, srcPort, tgt, tgtPort string) error {
	if n.state != StateStarted {
		return types.ErrNotStarted
	}
	return n.connect(src, srcPort, tgt, tgtPort)
}

func (n *Network) connect(src, srcPort, tgt, tgtPort string) error {
	port, err := n.resolve(src, srcPort)
	if err != nil {
		return err
	}
	if _, err = n.resolve(tgt, tgtPort); err != nil {
		return err
	}
	port.Connect(n.target(tgt), tgtPort)
	n.logger.Debug("connected", "src", src+"."+srcPort, "tgt", tgt+"."+tgtPort)
	return nil
}

// Send queues value for delivery to tgt.port on the next iteration
func (n *Network) Send(tgt, port string, value interface{}) error {
	if n.state != StateStarted {
		return types.ErrNotStarted
	}
	if err := n.send(tgt, port, value); err != nil {
		return err
	}
	n.metrics.RecordQueueDepth(n.queue.Len())
	return nil
}

func (n *Network) send(tgt, port string, value interface{}) error {
	if _, err := n.resolve(tgt, port); err != nil {
		return err
	}
	n.queue.Publish(&Packet{Process: tgt, Port: port, Value: value, target: n.target(tgt)})
	return nil
}

func (n *Network) resolve(process, port string) (*types.Port, error) {
	node, ok := n.nodes[process]
	if !ok {
		return nil, types.NewConfigurationError("resolve", process, port, types.ErrUnknownProcess)
	}
	p := node.Port(port)
	if p == nil {
		return nil, types.NewConfigurationError("resolve", process, port, types.ErrUnknownPort)
	}
	return p, nil
}

// target returns the receiving side for process, guarded when a depth limit is set
func (n *Network) target(process string) types.Component {
	node := n.nodes[process]
	if n.maxDepth <= 0 {
		return node
	}
	return &guard{Component: node, network: n, process: process}
}

// RunIteration delivers every packet queued before the call, in FIFO order.
// Packets queued during the iteration wait for the next call. When a delivery
// fails the delivered packets, including the failing one, are removed and the
// rest stay queued. A component stopping the network ends the iteration with
// ErrNotStarted.
func (n *Network) RunIteration(ctx context.Context) (err error) {
	if n.state != StateStarted {
		return types.ErrNotStarted
	}
	started := clock.Now()
	ctx, span := tracing.StartSpan(ctx, "network.runIteration", tracing.KindInternal)
	snapshot := n.queue.Len()
	delivered := 0
	runID := n.runID
	defer func() {
		if n.runID == runID {
			n.queue.Discard(delivered)
		}
		n.metrics.RecordIteration(clock.Since(started))
		n.metrics.RecordQueueDepth(n.queue.Len())
		span.WithAttributes(map[string]string{"run": n.runID}).
			WithInt("snapshot", snapshot).WithInt("delivered", delivered)
		tracing.EndSpan(span, err)
	}()

	for i := 0; i < snapshot; i++ {
		if err = ctx.Err(); err != nil {
			return err
		}
		if n.state != StateStarted || n.runID != runID || i >= n.queue.Len() {
			err = fmt.Errorf("%w: stopped during iteration after %d of %d deliveries", types.ErrNotStarted, delivered, snapshot)
			return err
		}
		packet := n.queue.At(i)
		delivered++
		n.depth = 0
		if err = packet.target.Receive(packet.Value, packet.Port); err != nil {
			n.metrics.RecordFailure(packet.Process)
			n.logger.Error("delivery failed", "run", n.runID, "process", packet.Process, "port", packet.Port, "error", err)
			return fmt.Errorf("deliver %s.%s: %w", packet.Process, packet.Port, err)
		}
		n.metrics.RecordDelivery(packet.Process)
	}
	n.logger.Debug("iteration complete", "run", n.runID, "delivered", delivered, "pending", n.queue.Len())
	return nil
}

// Run repeats RunIteration until the queue is empty. With a positive
// iteration limit it returns ErrIterationLimit if packets remain afterwards.
func (n *Network) Run(ctx context.Context) error {
	for iteration := 0; n.queue.Len() > 0; iteration++ {
		if n.maxIterations > 0 && iteration >= n.maxIterations {
			return fmt.Errorf("%w: %d iterations, %d pending", types.ErrIterationLimit, iteration, n.queue.Len())
		}
		if err := n.RunIteration(ctx); err != nil {
			return err
		}
	}
	if n.state != StateStarted {
		return types.ErrNotStarted
	}
	return nil
}

// New creates a stopped network for g using components from registry
func New(g *graph.Graph, registry *extension.Components, opts ...Option) *Network {
	ret := &Network{
		graph:    g,
		registry: registry,
		queue:    memory.NewQueue[*Packet](),
		logger:   slog.Default(),
	}
	for _, opt := range opts {
		opt(ret)
	}
	return ret
}
