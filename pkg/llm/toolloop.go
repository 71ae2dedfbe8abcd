package llm

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/yesoreyeram/agentweave/pkg/types"
)

// ToolExecutor invokes a single named tool with the arguments the model
// supplied and returns its result as a string (already rendered for
// insertion back into the conversation).
type ToolExecutor func(ctx context.Context, call ToolCall) (string, error)

// ToolLoopConfig bounds a tool-call loop.
type ToolLoopConfig struct {
	MaxIterations int           // 0 uses DefaultMaxToolIterations
	ToolTimeout   time.Duration // 0 uses DefaultToolTimeout
}

// Defaults mirrored from the runtime's execution-limits configuration.
const (
	DefaultMaxToolIterations = 10
	DefaultToolTimeout       = 30 * time.Second
)

// RunToolLoop drives the generate -> tool-call -> generate cycle until the
// model replies with no further tool calls or the iteration budget is
// exhausted. Each tool call gets its own ToolTimeout; the loop as a whole
// respects ctx's deadline.
//
// A failing tool never aborts the loop: its failure is serialized as a JSON
// tool-result message ({"error": ...}) and the conversation continues, so
// the model can recover or route around a broken tool. Timeouts surface as
// {"error": "Tool execution timeout"}; unknown tool names as
// {"error": "Tool <name> not found"}.
func RunToolLoop(ctx context.Context, provider Provider, req GenerateRequest, exec ToolExecutor, cfg ToolLoopConfig) (GenerateResponse, error) {
	maxIter := cfg.MaxIterations
	if maxIter <= 0 {
		maxIter = DefaultMaxToolIterations
	}
	toolTimeout := cfg.ToolTimeout
	if toolTimeout <= 0 {
		toolTimeout = DefaultToolTimeout
	}

	messages := append([]Message(nil), req.Messages...)

	for iter := 0; iter < maxIter; iter++ {
		resp, err := provider.GenerateText(ctx, GenerateRequest{
			Model:       req.Model,
			Messages:    messages,
			Tools:       req.Tools,
			MaxTokens:   req.MaxTokens,
			Temperature: req.Temperature,
		})
		if err != nil {
			return GenerateResponse{}, err
		}
		if len(resp.ToolCalls) == 0 {
			return resp, nil
		}

		// The assistant turn must be preserved verbatim, tool calls
		// included, so each tool-result message below can reference its
		// call id.
		messages = append(messages, Message{
			Role:      RoleAssistant,
			Content:   resp.Text,
			ToolCalls: resp.ToolCalls,
		})

		for _, call := range resp.ToolCalls {
			messages = append(messages, Message{
				Role:       RoleTool,
				Content:    runTool(ctx, exec, call, toolTimeout),
				ToolCallID: call.ID,
			})
		}
	}

	return GenerateResponse{}, fmt.Errorf("%w: exceeded %d iterations", types.ErrMaxToolIterationsExceeded, maxIter)
}

// runTool executes one tool call under its own timeout and renders the
// outcome, success or failure, as the tool-result message body.
func runTool(ctx context.Context, exec ToolExecutor, call ToolCall, timeout time.Duration) string {
	if exec == nil {
		return toolErrorJSON(fmt.Sprintf("Tool %s not found", call.Name))
	}

	toolCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	result, err := exec(toolCtx, call)
	switch {
	case err == nil:
		return result
	case toolCtx.Err() != nil:
		return toolErrorJSON("Tool execution timeout")
	case errors.Is(err, types.ErrToolNotFound):
		return toolErrorJSON(fmt.Sprintf("Tool %s not found", call.Name))
	default:
		return toolErrorJSON(err.Error())
	}
}

func toolErrorJSON(msg string) string {
	b, err := json.Marshal(map[string]string{"error": msg})
	if err != nil {
		return `{"error":"tool failed"}`
	}
	return string(b)
}
