// Package orchestrator implements the Task-Graph Orchestrator: it
// layers a workspace's task graph, assembles each task's predecessor
// context, drives the Executor Dispatcher, invokes the chosen runtime,
// emits progress events, and persists the execution transcript.
package orchestrator
