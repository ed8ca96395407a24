// Package idgen issues opaque identifiers for network runs and runtime
// registrations. Callers must not rely on the format.
package idgen
