package graph

import (
	"context"
	"fmt"
	"path"
	"strings"

	"github.com/viant/afs"
	"github.com/viant/fbp/internal/yml"
	model "github.com/viant/fbp/model/graph"
	"github.com/viant/fbp/service/dao/graph/fbp"
	"github.com/viant/fbp/service/dao/store"
	"github.com/viant/fbp/service/meta"
	"github.com/viant/fbp/tracing"
	"gopkg.in/yaml.v3"
)

// Supported graph document extensions
const (
	ExtJSON = ".json"
	ExtYAML = ".yaml"
	ExtYML  = ".yml"
	ExtFBP  = ".fbp"
)

// Translator converts a dialect document into canonical JSON
type Translator interface {
	Translate(ctx context.Context, URL string) ([]byte, error)
}

// Service loads graph descriptions
type Service struct {
	metaService *meta.Service
	translator  Translator
	cache       *store.MemoryStore[model.Graph]
}

// Load loads and validates the graph at URL. The format follows the extension;
// .fbp documents go through the translator when one is configured. Loaded
// graphs are cached by URL until refreshed.
func (s *Service) Load(ctx context.Context, URL string) (g *model.Graph, err error) {
	if cached, ok := s.cache.Get(URL); ok {
		return cached, nil
	}
	ctx, span := tracing.StartSpan(ctx, "graph.load", tracing.KindInternal)
	span.WithAttributes(map[string]string{"url": URL})
	defer func() { tracing.EndSpan(span, err) }()

	ext := strings.ToLower(path.Ext(URL))
	var data []byte
	if ext == ExtFBP && s.translator != nil {
		if data, err = s.translator.Translate(ctx, s.metaService.URL(URL)); err != nil {
			return nil, fmt.Errorf("failed to translate graph %s: %w", URL, err)
		}
		ext = ExtJSON
	} else if data, err = s.metaService.Download(ctx, URL); err != nil {
		return nil, err
	}

	if g, err = s.Decode(nameFromURL(URL), ext, data); err != nil {
		return nil, fmt.Errorf("failed to parse graph from %s: %w", URL, err)
	}
	if err = s.store(URL, g); err != nil {
		return nil, err
	}
	return g, nil
}

// Refresh discards the cached graph for URL; the next Load reads it again
func (s *Service) Refresh(URL string) {
	s.cache.Delete(URL)
}

// Upsert decodes data by the extension of URL and caches the graph under URL,
// replacing any cached copy. Networks already built keep their graph.
func (s *Service) Upsert(URL string, data []byte) (*model.Graph, error) {
	if data == nil {
		s.Refresh(URL)
		return nil, nil
	}
	g, err := s.Decode(nameFromURL(URL), path.Ext(URL), data)
	if err != nil {
		return nil, fmt.Errorf("failed to decode graph %s: %w", URL, err)
	}
	if err = s.store(URL, g); err != nil {
		return nil, err
	}
	return g, nil
}

// Cached returns the sorted URLs of cached graphs
func (s *Service) Cached() []string {
	return s.cache.Keys()
}

func (s *Service) store(URL string, g *model.Graph) error {
	g.Source = &model.Source{URL: URL}
	if issues := g.Validate(); len(issues) > 0 {
		return issues[0]
	}
	s.cache.Put(URL, g)
	return nil
}

// Decode decodes a graph document; name is used when the document has none
func (s *Service) Decode(name, ext string, data []byte) (*model.Graph, error) {
	var ret *model.Graph
	switch strings.ToLower(ext) {
	case ExtJSON:
		ret = &model.Graph{}
		if err := meta.Decode(ExtJSON, data, ret); err != nil {
			return nil, err
		}
	case ExtYAML, ExtYML:
		var node yaml.Node
		if err := yaml.Unmarshal(data, &node); err != nil {
			return nil, err
		}
		var err error
		if ret, err = parseGraph((*yml.Node)(&node)); err != nil {
			return nil, err
		}
	case ExtFBP:
		var err error
		if ret, err = fbp.Parse(name, data); err != nil {
			return nil, err
		}
	default:
		return nil, fmt.Errorf("unsupported graph format: %q", ext)
	}
	if ret.Name == "" {
		ret.Name = name
	}
	if ret.Processes == nil {
		ret.Processes = map[string]*model.Process{}
	}
	return ret, nil
}

func nameFromURL(URL string) string {
	base := path.Base(URL)
	return strings.TrimSuffix(base, path.Ext(base))
}

// New creates a graph loader
func New(opts ...Option) *Service {
	ret := &Service{metaService: meta.New(afs.New(), ""), cache: store.NewMemoryStore[model.Graph]()}
	for _, opt := range opts {
		opt(ret)
	}
	return ret
}
