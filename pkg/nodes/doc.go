// Package nodes implements the built-in node variants: LLMChat, the
// Transcription/Vision/Audio media family, ImageInput, WebScraper, the
// MCP Discovery/ToolCall/GetPrompt family, JSONManipulator and
// WorkflowInput. Each type hydrates from a declared types.Node and its
// Deps, and is registered into a *workflow.Registry by Register.
package nodes
