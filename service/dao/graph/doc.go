// Package graph loads graph descriptions from JSON, YAML or FBP dialect
// documents through afs and validates them.
package graph
