// Package agent implements the Agent Runtime: a bounded iterative
// generate -> review -> (optional final-check) -> refine loop that drives
// an LLM provider to satisfy one task.
//
// Two variants are exported. BasicRuntime is the plain refine loop:
// generate, review, stop on a complete verdict or iteration exhaustion.
// ToolRuntime layers tool-augmented reasoning and a final-check
// stage on top of it: an agent's declared Tools are attached as callable
// executors before the loop starts, and MCP connections opened to service
// them are released on every exit path.
package agent
