package fbp

import (
	"context"
	"fmt"

	"github.com/viant/afs"
	"github.com/viant/fbp/service/directory"
	"github.com/viant/fbp/service/meta"
)

// DefaultPort is the control-protocol port
const DefaultPort = 3569

// Config is a serialisable representation of the engine configuration. It can
// be populated from JSON or YAML; ${env.KEY} references are expanded on load.
type Config struct {
	Network   NetworkConfig   `json:"network" yaml:"network"`
	Runtime   RuntimeConfig   `json:"runtime" yaml:"runtime"`
	Directory DirectoryConfig `json:"directory" yaml:"directory"`
	Tracing   TracingConfig   `json:"tracing" yaml:"tracing"`
}

// NetworkConfig bounds network execution; zero means unlimited
type NetworkConfig struct {
	MaxDepth      int `json:"maxDepth" yaml:"maxDepth"`
	MaxIterations int `json:"maxIterations" yaml:"maxIterations"`
}

// RuntimeConfig describes the control-protocol server
type RuntimeConfig struct {
	Port   int    `json:"port" yaml:"port"`
	Label  string `json:"label" yaml:"label"`
	Host   string `json:"host" yaml:"host"`
	Secret string `json:"secret,omitempty" yaml:"secret,omitempty"`
}

// DirectoryConfig describes runtime registration
type DirectoryConfig struct {
	URL       string `json:"url" yaml:"url"`
	User      string `json:"user" yaml:"user"`
	SecretURL string `json:"secretURL,omitempty" yaml:"secretURL,omitempty"`
	SecretKey string `json:"secretKey,omitempty" yaml:"secretKey,omitempty"`
}

// TracingConfig enables the stdout span exporter
type TracingConfig struct {
	Enabled bool   `json:"enabled" yaml:"enabled"`
	Service string `json:"service" yaml:"service"`
	Version string `json:"version" yaml:"version"`
	Output  string `json:"output,omitempty" yaml:"output,omitempty"`
}

// DefaultConfig returns a Config populated with the default values.
// Callers may modify the returned struct before passing it to WithConfig.
func DefaultConfig() *Config {
	return &Config{
		Runtime: RuntimeConfig{
			Port:  DefaultPort,
			Label: "fbp",
			Host:  "ws://localhost",
		},
		Directory: DirectoryConfig{
			URL: directory.DefaultURL,
		},
		Tracing: TracingConfig{
			Service: "fbp",
			Version: Version,
		},
	}
}

// Validate returns an error describing the first invalid setting, or nil
func (c *Config) Validate() error {
	if c == nil {
		return nil
	}
	switch {
	case c.Network.MaxDepth < 0:
		return fmt.Errorf("network.maxDepth must be >= 0")
	case c.Network.MaxIterations < 0:
		return fmt.Errorf("network.maxIterations must be >= 0")
	case c.Runtime.Port <= 0 || c.Runtime.Port > 65535:
		return fmt.Errorf("runtime.port must be within 1..65535, got %d", c.Runtime.Port)
	case c.Tracing.Enabled && c.Tracing.Service == "":
		return fmt.Errorf("tracing.service is required when tracing is enabled")
	}
	return nil
}

// LoadConfig reads a YAML or JSON configuration over the defaults
func LoadConfig(ctx context.Context, URL string) (*Config, error) {
	ret := DefaultConfig()
	if err := meta.New(afs.New(), "").Load(ctx, URL, ret); err != nil {
		return nil, fmt.Errorf("failed to load config %s: %w", URL, err)
	}
	if err := ret.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", URL, err)
	}
	return ret, nil
}
