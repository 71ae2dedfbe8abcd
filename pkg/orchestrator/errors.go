package orchestrator

import "errors"

// ErrUnknownAgent is returned when a task's resolved executor id names an
// agent the workspace never declared.
var ErrUnknownAgent = errors.New("orchestrator: unknown agent id")

// ErrUnknownWorkflow is returned when a task's resolved executor id names a
// workflow the workspace never declared.
var ErrUnknownWorkflow = errors.New("orchestrator: unknown workflow id")

// ErrUnknownMCPCandidate is returned when the dispatcher chose an MCP
// candidate id the orchestrator was never given a ServerSpec for.
var ErrUnknownMCPCandidate = errors.New("orchestrator: unknown mcp candidate id")
