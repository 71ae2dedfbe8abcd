// Package dispatcher implements the Executor Dispatcher: per-task
// selection among {agent, workflow, MCP tool}, either fixed by the task's
// declared type and executorId or chosen by an LLM classifier for
// agentic tasks.
package dispatcher
