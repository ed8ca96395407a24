package graph

import "github.com/viant/fbp/service/meta"

// Option configures the loader
type Option func(*Service)

// WithMetaService sets the content service
func WithMetaService(meta *meta.Service) Option {
	return func(s *Service) {
		s.metaService = meta
	}
}

// WithTranslator delegates .fbp documents to an external translator
func WithTranslator(translator Translator) Option {
	return func(s *Service) {
		s.translator = translator
	}
}
