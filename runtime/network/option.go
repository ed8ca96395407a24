package network

import (
	"log/slog"

	"github.com/viant/fbp/service/messaging"
	"github.com/viant/fbp/service/metrics"
)

// Option configures a Network
type Option func(*Network)

// WithLogger sets the logger
func WithLogger(logger *slog.Logger) Option {
	return func(n *Network) {
		if logger != nil {
			n.logger = logger
		}
	}
}

// WithMetrics records deliveries and iterations
func WithMetrics(m *metrics.Metrics) Option {
	return func(n *Network) {
		n.metrics = m
	}
}

// WithMaxDepth bounds the synchronous cascade depth; 0 disables the guard
func WithMaxDepth(depth int) Option {
	return func(n *Network) {
		n.maxDepth = depth
	}
}

// WithMaxIterations bounds Run; 0 means run until the queue is empty
func WithMaxIterations(count int) Option {
	return func(n *Network) {
		n.maxIterations = count
	}
}

// WithQueue replaces the pending-delivery queue implementation
func WithQueue(queue messaging.Queue[*Packet]) Option {
	return func(n *Network) {
		if queue != nil {
			n.queue = queue
		}
	}
}
