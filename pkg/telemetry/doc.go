// Package telemetry wires OpenTelemetry metrics and tracing into the
// execution engine. A Provider owns the instruments (task, node, agent
// iteration and tool-call counters plus latency histograms, exported in
// Prometheus format); an Observer adapts execution events from the observer
// package onto them, so runtimes stay free of any otel imports.
package telemetry
