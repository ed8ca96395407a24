package protocol

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/viant/fbp/extension"
	"github.com/viant/fbp/model/types"
	"github.com/viant/structology/conv"
)

// ErrAccessDenied is returned when a request carries the wrong secret
var ErrAccessDenied = errors.New("access denied")

// Handler answers protocol requests. It owns no transport state.
type Handler struct {
	registry  *extension.Components
	runtime   Runtime
	secret    string
	converter *conv.Converter
	logger    *slog.Logger
}

// Handle returns the frames answering msg
func (h *Handler) Handle(ctx context.Context, msg *Message) []*Message {
	if msg == nil {
		return []*Message{NewError("", errors.New("empty message"))}
	}
	request := &Request{}
	if msg.Payload != nil {
		if err := h.converter.Convert(msg.Payload, request); err != nil {
			return []*Message{NewError(msg.Protocol, fmt.Errorf("invalid payload: %w", err))}
		}
	}
	if h.secret != "" && request.Secret != h.secret {
		return []*Message{NewError(msg.Protocol, ErrAccessDenied)}
	}
	h.logger.Debug("protocol request", "protocol", msg.Protocol, "command", msg.Command)
	switch msg.Protocol + ":" + msg.Command {
	case ProtocolComponent + ":" + CommandList:
		return h.listComponents()
	case ProtocolRuntime + ":" + CommandGetRuntime:
		runtime := h.runtime
		return []*Message{{Protocol: ProtocolRuntime, Command: CommandRuntime, Payload: &runtime}}
	}
	return []*Message{NewError(msg.Protocol, fmt.Errorf("unsupported command %v:%v", msg.Protocol, msg.Command))}
}

// listComponents instantiates every registered type to report its ports
func (h *Handler) listComponents() []*Message {
	names := h.registry.Names()
	result := make([]*Message, 0, len(names)+1)
	for _, name := range names {
		description, err := h.registry.Describe(name)
		if err != nil {
			result = append(result, NewError(ProtocolComponent, err))
			continue
		}
		component := &Component{Name: name, Description: description.Description, InPorts: make([]*Port, 0, len(description.InPorts))}
		for _, port := range description.InPorts {
			component.InPorts = append(component.InPorts, &Port{ID: port, Type: PortTypeAll})
		}
		component.OutPorts = []*Port{{ID: types.PortOut, Type: PortTypeAll}}
		result = append(result, &Message{Protocol: ProtocolComponent, Command: CommandComponent, Payload: component})
	}
	return append(result, &Message{Protocol: ProtocolComponent, Command: CommandComponentsReady, Payload: len(names)})
}

// NewHandler creates a handler over registry
func NewHandler(registry *extension.Components, runtime Runtime, opts ...HandlerOption) *Handler {
	options := conv.DefaultOptions()
	options.IgnoreUnmapped = true
	ret := &Handler{
		registry:  registry,
		runtime:   runtime,
		converter: conv.NewConverter(options),
		logger:    slog.Default(),
	}
	for _, opt := range opts {
		opt(ret)
	}
	return ret
}
