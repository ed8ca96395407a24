// Package translator converts FBP dialect files into canonical JSON by running
// an external command, by default the fbp tool: fbp <path>.
package translator

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/viant/afs/file"
	"github.com/viant/afs/url"
	"github.com/viant/gosh"
	"github.com/viant/gosh/runner"
	"github.com/viant/gosh/runner/local"
)

// DefaultCommand is the translator executable
const DefaultCommand = "fbp"

// Service runs the translator in a local shell
type Service struct {
	command string
	timeout time.Duration
	env     map[string]string
}

// Translate returns the translator's standard output for the local file at URL
func (s *Service) Translate(ctx context.Context, URL string) ([]byte, error) {
	if scheme := url.Scheme(URL, file.Scheme); scheme != file.Scheme {
		return nil, fmt.Errorf("unsupported translator location scheme %v: %v", scheme, URL)
	}
	location := url.Path(URL)

	var options []runner.Option
	if len(s.env) > 0 {
		options = append(options, runner.WithEnvironment(s.env))
	}
	shell, err := gosh.New(ctx, local.New(options...))
	if err != nil {
		return nil, fmt.Errorf("failed to start shell: %w", err)
	}
	defer shell.Close()

	command := s.command + " " + quote(location)
	stdout, status, err := shell.Run(ctx, command, runner.WithTimeout(int(s.timeout.Milliseconds())))
	if err != nil {
		return nil, fmt.Errorf("failed to run %v: %w", command, err)
	}
	if status != 0 {
		return nil, fmt.Errorf("%v exited with %d: %v", command, status, strings.TrimSpace(stdout))
	}
	return []byte(stdout), nil
}

func quote(arg string) string {
	return "'" + strings.ReplaceAll(arg, "'", `'\''`) + "'"
}

// New creates a translator
func New(opts ...Option) *Service {
	ret := &Service{command: DefaultCommand, timeout: time.Minute}
	for _, opt := range opts {
		opt(ret)
	}
	return ret
}
