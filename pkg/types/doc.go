// Package types provides shared type definitions for the orchestration runtime.
//
// # Overview
//
// This package contains the core data structures used across the task-graph
// orchestrator, the workflow runtime, the agent runtime and the executor
// dispatcher. It serves as the foundation for avoiding circular dependencies
// between those packages while providing a consistent type system.
//
// # Two Levels
//
// Workspace holds a Task-Graph: Tasks connected by TaskConnections across
// TaskSockets. A Task may itself delegate to a Workflow, which is a
// Node-Graph: Nodes connected by Connections across NodeSockets. Both graphs
// share the same layering algorithm in pkg/graph; the Task-Graph is always
// sequential while the Node-Graph executes independent nodes within a layer
// concurrently.
//
// # Agent / Review Loop
//
// Agent, Tool, ReviewVerdict and FinalCheckVerdict describe the bounded
// generate -> review -> (refine | final-check) loop implemented in the
// agent runtime.
//
// # Design Principles
//
//   - Minimal dependencies: this package has no dependencies on sibling
//     runtime packages.
//   - Socket ids are opaque: SocketID is a plain comparable string, never a
//     computed offset.
//   - Effective configuration values always fall back from ParamValue to
//     DefaultValue via ConfigurationParameter.EffectiveValue.
package types
