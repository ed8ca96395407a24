package translator

import "time"

// Option configures the translator
type Option func(*Service)

// WithCommand sets the translator executable
func WithCommand(command string) Option {
	return func(s *Service) {
		if command != "" {
			s.command = command
		}
	}
}

// WithTimeout bounds a single translation
func WithTimeout(timeout time.Duration) Option {
	return func(s *Service) {
		if timeout > 0 {
			s.timeout = timeout
		}
	}
}

// WithEnv sets environment variables for the translator process
func WithEnv(env map[string]string) Option {
	return func(s *Service) {
		s.env = env
	}
}
