package protocol

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/gorilla/websocket"
	"github.com/viant/fbp/service/metrics"
	"github.com/viant/fbp/tracing"
)

const writeTimeout = 10 * time.Second

// Server serves the protocol over websocket on "/" and metrics on "/metrics"
type Server struct {
	handler  *Handler
	upgrader websocket.Upgrader
	metrics  *metrics.Metrics
	logger   *slog.Logger
}

// ServeHTTP upgrades the request and serves frames until the client disconnects
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Warn("websocket upgrade failed", "remote", r.RemoteAddr, "error", err)
		return
	}
	defer conn.Close()
	ctx, span := tracing.StartSpan(r.Context(), "protocol.session", tracing.KindServer)
	span.WithAttributes(map[string]string{"remote": r.RemoteAddr})
	err = s.serve(ctx, conn)
	tracing.EndSpan(span, err)
}

func (s *Server) serve(ctx context.Context, conn *websocket.Conn) error {
	s.logger.Info("client connected", "remote", conn.RemoteAddr().String(), "subprotocol", conn.Subprotocol())
	for {
		kind, data, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				s.logger.Info("client disconnected", "remote", conn.RemoteAddr().String())
				return nil
			}
			return err
		}
		var responses []*Message
		if kind != websocket.TextMessage {
			responses = []*Message{NewError("", errors.New("websocket message must be UTF-8 text"))}
		} else {
			msg := &Message{}
			if err = json.Unmarshal(data, msg); err != nil {
				responses = []*Message{NewError("", err)}
			} else {
				responses = s.handler.Handle(ctx, msg)
			}
		}
		for _, response := range responses {
			_ = conn.SetWriteDeadline(time.Now().Add(writeTimeout))
			if err = conn.WriteJSON(response); err != nil {
				return err
			}
		}
	}
}

// Mux returns a mux routing websocket and metrics endpoints
func (s *Server) Mux() *http.ServeMux {
	mux := http.NewServeMux()
	mux.Handle("/", s)
	if s.metrics != nil {
		mux.Handle("/metrics", s.metrics.Handler())
	}
	return mux
}

// ListenAndServe serves on addr until ctx is cancelled
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	server := &http.Server{Addr: addr, Handler: s.Mux(), ReadHeaderTimeout: writeTimeout}
	errs := make(chan error, 1)
	go func() {
		s.logger.Info("runtime listening", "addr", addr)
		errs <- server.ListenAndServe()
	}()
	select {
	case err := <-errs:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), writeTimeout)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			return err
		}
		return nil
	}
}

// NewServer creates a websocket server around handler
func NewServer(handler *Handler, opts ...ServerOption) *Server {
	ret := &Server{
		handler: handler,
		upgrader: websocket.Upgrader{
			CheckOrigin:     func(_ *http.Request) bool { return true },
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			Subprotocols:    []string{Subprotocol},
		},
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(ret)
	}
	return ret
}
