package fbp

import (
	"context"
	"net"
	"net/http"
	"strconv"

	"github.com/viant/fbp/internal/idgen"
	"github.com/viant/fbp/service/protocol"
)

// Capabilities advertised over the control protocol
var Capabilities = []string{"protocol:component", "protocol:runtime"}

// Runtime serves the component catalog over the websocket control protocol
type Runtime struct {
	info   protocol.Runtime
	addr   string
	server *protocol.Server
}

// Info returns the runtime description reported to clients
func (r *Runtime) Info() protocol.Runtime {
	return r.info
}

// Addr returns the listen address
func (r *Runtime) Addr() string {
	return r.addr
}

// Handler returns the HTTP handler serving the protocol and /metrics
func (r *Runtime) Handler() http.Handler {
	return r.server.Mux()
}

// ListenAndServe serves until ctx is cancelled
func (r *Runtime) ListenAndServe(ctx context.Context) error {
	return r.server.ListenAndServe(ctx, r.addr)
}

func newRuntime(s *Service) *Runtime {
	info := protocol.Runtime{
		Type:         "fbp",
		Version:      Version,
		Capabilities: Capabilities,
		ID:           idgen.New(),
		Label:        s.config.Runtime.Label,
	}
	var handlerOptions = []protocol.HandlerOption{protocol.WithHandlerLogger(s.logger)}
	if secret := s.config.Runtime.Secret; secret != "" {
		handlerOptions = append(handlerOptions, protocol.WithSecret(secret))
	}
	handler := protocol.NewHandler(s.registry, info, handlerOptions...)
	return &Runtime{
		info:   info,
		addr:   net.JoinHostPort("", strconv.Itoa(s.config.Runtime.Port)),
		server: protocol.NewServer(handler, protocol.WithLogger(s.logger), protocol.WithMetrics(s.metrics)),
	}
}
