package fbp

import (
	"context"
	"io"
	"log/slog"

	"github.com/viant/afs"
	"github.com/viant/fbp/extension"
	model "github.com/viant/fbp/model/graph"
	"github.com/viant/fbp/runtime/network"
	"github.com/viant/fbp/service/component/builtin"
	"github.com/viant/fbp/service/dao/graph"
	"github.com/viant/fbp/service/directory"
	"github.com/viant/fbp/service/meta"
	"github.com/viant/fbp/service/metrics"
	"github.com/viant/fbp/service/translator"
	"github.com/viant/fbp/tracing"
)

// Service ties the component registry, graph loading and network execution together
type Service struct {
	config       *Config
	registry     *extension.Components
	metaService  *meta.Service
	graphService *graph.Service
	translator   *translator.Service
	metrics      *metrics.Metrics
	logger       *slog.Logger
	writer       io.Writer
}

func (s *Service) init(options []Option) error {
	for _, option := range options {
		option(s)
	}
	if err := s.config.Validate(); err != nil {
		return err
	}
	s.ensureBaseSetup()
	if s.config.Tracing.Enabled {
		return tracing.Init(s.config.Tracing.Service, s.config.Tracing.Version, s.config.Tracing.Output)
	}
	return nil
}

func (s *Service) ensureBaseSetup() {
	if s.registry == nil {
		var opts []builtin.Option
		if s.writer != nil {
			opts = append(opts, builtin.WithWriter(s.writer))
		}
		s.registry = builtin.NewRegistry(opts...)
	}
	if s.metaService == nil {
		s.metaService = meta.New(afs.New(), "")
	}
	if s.graphService == nil {
		opts := []graph.Option{graph.WithMetaService(s.metaService)}
		if s.translator != nil {
			opts = append(opts, graph.WithTranslator(s.translator))
		}
		s.graphService = graph.New(opts...)
	}
	if s.metrics == nil {
		s.metrics = metrics.New()
	}
}

// Config returns the engine configuration
func (s *Service) Config() *Config {
	return s.config
}

// Registry returns the component registry; components registered before a
// network starts are available to it
func (s *Service) Registry() *extension.Components {
	return s.registry
}

// Metrics returns the metrics collector
func (s *Service) Metrics() *metrics.Metrics {
	return s.metrics
}

// LoadGraph loads and validates the graph at URL
func (s *Service) LoadGraph(ctx context.Context, URL string) (*model.Graph, error) {
	return s.graphService.Load(ctx, URL)
}

// RefreshGraph discards the cached copy of the graph at URL. The next
// LoadGraph call reads it again through the meta service.
func (s *Service) RefreshGraph(URL string) {
	s.graphService.Refresh(URL)
}

// UpsertGraph decodes data and caches it as the graph at URL, so the next
// LoadGraph or RunGraph uses it. Networks already built keep their graph.
// Nil data falls back to RefreshGraph.
func (s *Service) UpsertGraph(URL string, data []byte) (*model.Graph, error) {
	return s.graphService.Upsert(URL, data)
}

// NewNetwork creates a stopped network for g bounded by the network configuration
func (s *Service) NewNetwork(g *model.Graph, opts ...network.Option) *network.Network {
	options := []network.Option{
		network.WithLogger(s.logger),
		network.WithMetrics(s.metrics),
		network.WithMaxDepth(s.config.Network.MaxDepth),
		network.WithMaxIterations(s.config.Network.MaxIterations),
	}
	return network.New(g, s.registry, append(options, opts...)...)
}

// RunGraph loads the graph at URL, starts a network for it and runs it until
// no packets are pending. The started network is returned even when running fails.
func (s *Service) RunGraph(ctx context.Context, URL string) (*network.Network, error) {
	g, err := s.LoadGraph(ctx, URL)
	if err != nil {
		return nil, err
	}
	net := s.NewNetwork(g)
	if err = net.Start(ctx); err != nil {
		return nil, err
	}
	return net, net.Run(ctx)
}

// NewRuntime creates a control-protocol runtime serving this service's registry
func (s *Service) NewRuntime() *Runtime {
	return newRuntime(s)
}

// Register advertises a runtime listening on the configured host and port with the directory
func (s *Service) Register(ctx context.Context) (*directory.Registration, error) {
	var opts = []directory.Option{directory.WithLogger(s.logger)}
	if URL := s.config.Directory.SecretURL; URL != "" {
		opts = append(opts, directory.WithSecret(URL, s.config.Directory.SecretKey))
	}
	client := directory.New(s.config.Directory.URL, opts...)
	return client.Register(ctx, s.config.Directory.User, s.config.Runtime.Label, s.config.Runtime.Host, s.config.Runtime.Port)
}

// New creates a service; it fails only on invalid configuration or tracing setup
func New(options ...Option) (*Service, error) {
	ret := &Service{config: DefaultConfig(), logger: slog.Default()}
	if err := ret.init(options); err != nil {
		return nil, err
	}
	return ret, nil
}
