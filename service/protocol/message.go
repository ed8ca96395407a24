package protocol

// Protocol and command names
const (
	ProtocolComponent = "component"
	ProtocolRuntime   = "runtime"

	CommandList            = "list"
	CommandComponent       = "component"
	CommandComponentsReady = "componentsready"
	CommandGetRuntime      = "getruntime"
	CommandRuntime         = "runtime"
	CommandError           = "error"
)

// Subprotocol is the websocket subprotocol negotiated with clients
const Subprotocol = "noflo"

// PortTypeAll accepts any packet
const PortTypeAll = "all"

type (
	// Message is a protocol frame
	Message struct {
		Protocol string      `json:"protocol"`
		Command  string      `json:"command"`
		Payload  interface{} `json:"payload,omitempty"`
	}

	// Request carries the fields common to client requests
	Request struct {
		Secret string `json:"secret,omitempty"`
	}

	// Port describes a component port
	Port struct {
		ID   string `json:"id"`
		Type string `json:"type"`
	}

	// Component describes a registered component type
	Component struct {
		Name        string  `json:"name"`
		Description string  `json:"description"`
		InPorts     []*Port `json:"inPorts"`
		OutPorts    []*Port `json:"outPorts"`
	}

	// Runtime describes this runtime
	Runtime struct {
		Type         string   `json:"type"`
		Version      string   `json:"version"`
		Capabilities []string `json:"capabilities"`
		ID           string   `json:"id,omitempty"`
		Label        string   `json:"label,omitempty"`
	}

	// Error reports a failed request
	Error struct {
		Message string `json:"message"`
	}
)

// NewError creates an error frame for protocol
func NewError(protocol string, err error) *Message {
	if protocol == "" {
		protocol = ProtocolRuntime
	}
	return &Message{Protocol: protocol, Command: CommandError, Payload: &Error{Message: err.Error()}}
}
