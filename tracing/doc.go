// Package tracing wraps OpenTelemetry for the engine. Network start and
// iteration spans, runtime sessions and graph loading are recorded through
// StartSpan/EndSpan; without Init spans are no-ops.
package tracing
