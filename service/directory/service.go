// Package directory registers a running runtime with a remote runtime directory.
package directory

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/viant/fbp/internal/idgen"
	"github.com/viant/fbp/tracing"
	"github.com/viant/scy"
)

// Defaults match the public flowhub directory
const (
	DefaultURL      = "http://api.flowhub.io"
	DefaultType     = "fbp"
	DefaultProtocol = "websocket"
)

// Registration is the runtime record sent to the directory
type Registration struct {
	Type     string `json:"type"`
	Protocol string `json:"protocol"`
	Address  string `json:"address"`
	ID       string `json:"id"`
	Label    string `json:"label"`
	Port     int    `json:"port"`
	User     string `json:"user"`
	Secret   string `json:"secret"`
}

// Service is a directory client
type Service struct {
	baseURL   string
	client    *http.Client
	secrets   *scy.Service
	secretURL string
	secretKey string
	logger    *slog.Logger
}

// Register advertises the runtime at ip:port for user under a new identifier
func (s *Service) Register(ctx context.Context, user, label, ip string, port int) (registration *Registration, err error) {
	ctx, span := tracing.StartSpan(ctx, "directory.register", tracing.KindClient)
	defer func() { tracing.EndSpan(span, err) }()

	secret, err := s.secret(ctx)
	if err != nil {
		return nil, err
	}
	registration = &Registration{
		Type:     DefaultType,
		Protocol: DefaultProtocol,
		Address:  ip + ":" + strconv.Itoa(port),
		ID:       idgen.New(),
		Label:    label,
		Port:     port,
		User:     user,
		Secret:   secret,
	}
	body, err := json.Marshal(registration)
	if err != nil {
		return nil, err
	}
	URL := strings.TrimRight(s.baseURL, "/") + "/runtimes/" + registration.ID
	request, err := http.NewRequestWithContext(ctx, http.MethodPut, URL, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	request.Header.Set("Content-Type", "application/json")
	response, err := s.client.Do(request)
	if err != nil {
		return nil, fmt.Errorf("failed to register runtime: %w", err)
	}
	defer response.Body.Close()
	if response.StatusCode != http.StatusCreated {
		message, _ := io.ReadAll(io.LimitReader(response.Body, 4096))
		return nil, fmt.Errorf("could not create runtime: %d %s", response.StatusCode, strings.TrimSpace(string(message)))
	}
	s.logger.Info("runtime registered", "id", registration.ID, "address", registration.Address, "label", label)
	return registration, nil
}

// secret loads the runtime secret from the configured secret URL, or generates one
func (s *Service) secret(ctx context.Context) (string, error) {
	if s.secretURL == "" {
		return idgen.New(), nil
	}
	secret, err := s.secrets.Load(ctx, scy.NewResource(nil, s.secretURL, s.secretKey))
	if err != nil {
		return "", fmt.Errorf("failed to load secret from %s: %w", s.secretURL, err)
	}
	return strings.TrimSpace(secret.String()), nil
}

// New creates a directory client for baseURL
func New(baseURL string, opts ...Option) *Service {
	if baseURL == "" {
		baseURL = DefaultURL
	}
	ret := &Service{
		baseURL: baseURL,
		client:  http.DefaultClient,
		secrets: scy.New(),
		logger:  slog.Default(),
	}
	for _, opt := range opts {
		opt(ret)
	}
	return ret
}
