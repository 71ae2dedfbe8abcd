// Package llm provides a unified interface over multiple LLM vendor back-ends.
// Node executors and the agent runtime call through Provider; they never talk
// to a vendor SDK directly.
package llm

import (
	"context"
)

// Role is the speaker of a Message.
type Role string

const (
	RoleSystem    Role = "system"
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
	RoleTool      Role = "tool"
)

// Message is one turn of a conversation passed to a Provider.
type Message struct {
	Role       Role
	Content    string
	ToolCalls  []ToolCall // set on RoleAssistant turns that requested tools
	ToolCallID string     // set on RoleTool messages: which ToolCall this answers
}

// ToolSpec describes a callable tool offered to the model for this turn.
type ToolSpec struct {
	Name        string
	Description string
	Parameters  map[string]interface{} // JSON Schema
}

// ToolCall is a single invocation the model asked the caller to perform.
type ToolCall struct {
	ID    string
	Name  string
	Input map[string]interface{}
}

// GenerateRequest is the input to Provider.GenerateText.
type GenerateRequest struct {
	Model       string
	Messages    []Message
	Tools       []ToolSpec
	MaxTokens   int
	Temperature float64
}

// GenerateResponse is the model's reply: free text, and/or tool calls the
// caller must satisfy before the conversation continues.
type GenerateResponse struct {
	Text      string
	ToolCalls []ToolCall
}

// Resolver resolves a {vendor, model} choice to a Provider. *Factory is the
// production implementation; tests substitute fakes.
type Resolver interface {
	Resolve(vendor, model string) (Provider, error)
}

// Provider is implemented by each vendor back-end (anthropic, openai, ...).
type Provider interface {
	// GenerateText sends req to the vendor and returns its reply.
	GenerateText(ctx context.Context, req GenerateRequest) (GenerateResponse, error)

	// Name identifies the provider for logging and classifier fallback
	// decisions (e.g. "anthropic", "openai").
	Name() string
}
