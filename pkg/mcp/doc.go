// Package mcp adapts github.com/mark3labs/mcp-go client transports to the
// Client interface consumed by this runtime's MCP node family and the
// tool-augmented agent runtime.
//
// Registry scopes connections to a single execution: every server is
// dialed at most once per run and released on every exit path via Close.
package mcp
