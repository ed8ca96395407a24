// Package protocol implements the runtime side of the visual editor protocol:
// component listing and runtime introspection over a websocket session using
// the "noflo" subprotocol.
package protocol
