// Package fbp is a flow-based-programming execution engine.
//
// Programs are graphs of named processes, each an instance of a registered
// component type, wired through named ports. A Service loads graph
// descriptions (JSON, YAML or the textual .fbp dialect), builds networks from
// them and drives packet delivery; a Runtime exposes the component catalog
// over the websocket control protocol.
//
//	srv := fbp.New()
//	net, err := srv.RunGraph(ctx, "graphs/sum.fbp")
package fbp

// Version of the runtime reported over the control protocol
const Version = "0.7.0"
