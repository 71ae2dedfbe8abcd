package graph

import "errors"

// Sentinel errors for graph layering.
var (
	// ErrEmptyGraph is returned by Layers when the graph has no vertices.
	ErrEmptyGraph = errors.New("graph is empty")

	// ErrCycleDetected is returned when Kahn peeling cannot consume every
	// vertex; the wrapped message names one vertex stuck in the cycle.
	ErrCycleDetected = errors.New("cycle detected in graph")
)
