package protocol

import (
	"log/slog"

	"github.com/viant/fbp/service/metrics"
)

// HandlerOption configures a Handler
type HandlerOption func(*Handler)

// WithSecret requires requests to carry secret
func WithSecret(secret string) HandlerOption {
	return func(h *Handler) {
		h.secret = secret
	}
}

// WithHandlerLogger sets the handler logger
func WithHandlerLogger(logger *slog.Logger) HandlerOption {
	return func(h *Handler) {
		if logger != nil {
			h.logger = logger
		}
	}
}

// ServerOption configures a Server
type ServerOption func(*Server)

// WithLogger sets the server logger
func WithLogger(logger *slog.Logger) ServerOption {
	return func(s *Server) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithMetrics exposes metrics on /metrics
func WithMetrics(m *metrics.Metrics) ServerOption {
	return func(s *Server) {
		s.metrics = m
	}
}
