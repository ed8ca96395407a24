// Package extension provides the component registry: a mapping from component
// type name to a factory producing a fresh component instance.
//
// A registry is an explicit value handed to a network at construction time;
// there is no process-wide catalog. Unknown type names surface as
// configuration errors when a network starts.
package extension
