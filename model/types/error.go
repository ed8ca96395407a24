package types

import (
	"errors"
	"fmt"
	"strings"
)

// Configuration errors are detected while a network is being built and abort Start.
var (
	ErrUnknownComponent    = errors.New("unknown component type")
	ErrUnknownProcess      = errors.New("unknown process")
	ErrUnknownPort         = errors.New("unknown port")
	ErrNoSource            = errors.New("connection has neither source nor data")
	ErrAmbiguousConnection = errors.New("connection has both source and data")
)

// Lifecycle and engine errors
var (
	ErrAlreadyStarted   = errors.New("network already started")
	ErrNotStarted       = errors.New("network not started")
	ErrMaxDepthExceeded = errors.New("maximum cascade depth exceeded")
	ErrIterationLimit   = errors.New("iteration limit reached with packets pending")
	// ErrInvariant signals an internal bug, never a user error
	ErrInvariant = errors.New("invariant violation")
)

// ConfigurationError describes a fatal graph or wiring problem
type ConfigurationError struct {
	Op      string
	Process string
	Port    string
	Err     error
}

func (e *ConfigurationError) Error() string {
	var parts []string
	if e.Op != "" {
		parts = append(parts, e.Op)
	}
	if e.Process != "" {
		ref := e.Process
		if e.Port != "" {
			ref += "." + e.Port
		}
		parts = append(parts, ref)
	} else if e.Port != "" {
		parts = append(parts, e.Port)
	}
	prefix := strings.Join(parts, " ")
	if prefix == "" {
		return fmt.Sprintf("configuration error: %v", e.Err)
	}
	return fmt.Sprintf("configuration error: %s: %v", prefix, e.Err)
}

func (e *ConfigurationError) Unwrap() error {
	return e.Err
}

// NewConfigurationError creates a configuration error
func NewConfigurationError(op, process, port string, err error) *ConfigurationError {
	return &ConfigurationError{Op: op, Process: process, Port: port, Err: err}
}

// IsConfigurationError returns true if err is or wraps a ConfigurationError
func IsConfigurationError(err error) bool {
	var cfgErr *ConfigurationError
	return errors.As(err, &cfgErr)
}

// NewUnknownPortError reports a port missing on a component
func NewUnknownPortError(component, port string) error {
	return NewConfigurationError("port", component, port, ErrUnknownPort)
}

// NewInvalidInputError reports a value a component function cannot handle
func NewInvalidInputError(in interface{}) error {
	return fmt.Errorf("invalid input %T", in)
}
