package directory

import (
	"log/slog"
	"net/http"
)

// Option configures the directory client
type Option func(*Service)

// WithClient sets the HTTP client
func WithClient(client *http.Client) Option {
	return func(s *Service) {
		if client != nil {
			s.client = client
		}
	}
}

// WithSecret loads the runtime secret from URL, decrypting it with key (e.g. blowfish://default)
func WithSecret(URL, key string) Option {
	return func(s *Service) {
		s.secretURL = URL
		s.secretKey = key
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
