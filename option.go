package fbp

import (
	"io"
	"log/slog"

	"github.com/viant/fbp/extension"
	"github.com/viant/fbp/service/dao/graph"
	"github.com/viant/fbp/service/meta"
	"github.com/viant/fbp/service/metrics"
	"github.com/viant/fbp/service/translator"
)

// Option configures a Service
type Option func(s *Service)

// WithConfig sets the engine configuration
func WithConfig(config *Config) Option {
	return func(s *Service) {
		if config != nil {
			s.config = config
		}
	}
}

// WithRegistry replaces the component registry; built-ins are not added to it
func WithRegistry(registry *extension.Components) Option {
	return func(s *Service) {
		s.registry = registry
	}
}

// WithMetaService sets the meta service used to download graph documents
func WithMetaService(service *meta.Service) Option {
	return func(s *Service) {
		s.metaService = service
	}
}

// WithTranslator translates .fbp documents with an external command instead of the native parser
func WithTranslator(service *translator.Service) Option {
	return func(s *Service) {
		s.translator = service
	}
}

// WithGraphService sets the graph loader
func WithGraphService(service *graph.Service) Option {
	return func(s *Service) {
		s.graphService = service
	}
}

// WithMetrics sets the metrics collector
func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Service) {
		s.metrics = m
	}
}

// WithLogger sets the logger
func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithWriter sets the output of the WriteStdOut built-in
func WithWriter(w io.Writer) Option {
	return func(s *Service) {
		s.writer = w
	}
}
