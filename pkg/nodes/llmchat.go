package nodes

import (
	"context"
	"fmt"

	"github.com/yesoreyeram/agentweave/pkg/llm"
	"github.com/yesoreyeram/agentweave/pkg/types"
	"github.com/yesoreyeram/agentweave/pkg/workflow"
)

// llmChatNode is a single-shot chat completion: one
// GenerateText call, no tool loop. The iterative refine loop lives in
// pkg/agent, one layer up; this node is the primitive it and plain
// workflows both build on.
type llmChatNode struct {
	baseNode
	deps *Deps
}

func newLLMChatNode(deps *Deps) workflow.Factory {
	return func(declared types.Node) (workflow.Node, error) {
		return &llmChatNode{baseNode: baseNode{declared: declared}, deps: deps}, nil
	}
}

func (n *llmChatNode) Process(ctx context.Context, in workflow.Inputs) (workflow.Outputs, error) {
	prompt, ok := firstString(in, SocketPrompt)
	if !ok || prompt == "" {
		return nil, types.ErrMissingRequiredField("prompt")
	}
	system, _ := firstString(in, SocketSystem)
	if system == "" {
		system = n.configString("systemPrompt", "")
	}

	provider := n.configString("provider", n.deps.Config.DefaultLLMProvider)
	model := n.configString("model", n.deps.Config.DefaultLLMModel)

	// Provider failures surface as an error string on the primary output,
	// not a Go error, so downstream nodes see the message as their input
	// instead of an absent value.
	p, err := n.deps.LLM.Resolve(provider, model)
	if err != nil {
		return fmt.Sprintf("Error: llm-chat: %v", err), nil
	}

	var messages []llm.Message
	if system != "" {
		messages = append(messages, llm.Message{Role: llm.RoleSystem, Content: system})
	}
	messages = append(messages, llm.Message{Role: llm.RoleUser, Content: prompt})

	resp, err := p.GenerateText(ctx, llm.GenerateRequest{
		Model:       model,
		Messages:    messages,
		MaxTokens:   n.configInt("maxTokens", 0),
		Temperature: 0,
	})
	if err != nil {
		return fmt.Sprintf("Error: llm-chat: %v", err), nil
	}
	return resp.Text, nil
}
