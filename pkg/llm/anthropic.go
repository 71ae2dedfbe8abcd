package llm

import (
	"context"
	"fmt"

	anthropicsdk "github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
)

// AnthropicProvider implements Provider against Anthropic's Messages API.
type AnthropicProvider struct {
	apiKey       string
	defaultModel string
}

// NewAnthropicProvider builds a Provider backed by Anthropic's Claude models.
// defaultModel is used when a request leaves GenerateRequest.Model empty.
func NewAnthropicProvider(apiKey, defaultModel string) (*AnthropicProvider, error) {
	if apiKey == "" {
		return nil, ErrMissingAPIKey
	}
	if defaultModel == "" {
		defaultModel = "claude-sonnet-4-5-20250929"
	}
	return &AnthropicProvider{apiKey: apiKey, defaultModel: defaultModel}, nil
}

// Name implements Provider.
func (p *AnthropicProvider) Name() string { return "anthropic" }

// GenerateText implements Provider.
func (p *AnthropicProvider) GenerateText(ctx context.Context, req GenerateRequest) (GenerateResponse, error) {
	if err := ctx.Err(); err != nil {
		return GenerateResponse{}, err
	}

	model := req.Model
	if model == "" {
		model = p.defaultModel
	}

	systemPrompt, turns := extractSystemPrompt(req.Messages)

	client := anthropicsdk.NewClient(option.WithAPIKey(p.apiKey))

	maxTokens := req.MaxTokens
	if maxTokens <= 0 {
		maxTokens = 4096
	}

	params := anthropicsdk.MessageNewParams{
		Model:     anthropicsdk.Model(model),
		Messages:  toAnthropicMessages(turns),
		MaxTokens: int64(maxTokens),
	}
	if systemPrompt != "" {
		params.System = []anthropicsdk.TextBlockParam{{Text: systemPrompt}}
	}
	if len(req.Tools) > 0 {
		params.Tools = toAnthropicTools(req.Tools)
	}

	resp, err := client.Messages.New(ctx, params)
	if err != nil {
		return GenerateResponse{}, fmt.Errorf("%w: anthropic: %v", ErrProviderHTTPError, err)
	}

	return fromAnthropicResponse(resp), nil
}

func extractSystemPrompt(messages []Message) (string, []Message) {
	var system string
	var rest []Message
	for _, m := range messages {
		if m.Role == RoleSystem {
			if system != "" {
				system += "\n\n"
			}
			system += m.Content
			continue
		}
		rest = append(rest, m)
	}
	return system, rest
}

func toAnthropicMessages(messages []Message) []anthropicsdk.MessageParam {
	out := make([]anthropicsdk.MessageParam, 0, len(messages))
	for _, m := range messages {
		switch m.Role {
		case RoleAssistant:
			var blocks []anthropicsdk.ContentBlockParamUnion
			if m.Content != "" {
				blocks = append(blocks, anthropicsdk.NewTextBlock(m.Content))
			}
			// A prior tool-calling turn must round-trip with its tool_use
			// blocks intact so the tool_result blocks that follow can
			// reference their ids.
			for _, tc := range m.ToolCalls {
				blocks = append(blocks, anthropicsdk.ContentBlockParamUnion{
					OfToolUse: &anthropicsdk.ToolUseBlockParam{
						ID:    tc.ID,
						Name:  tc.Name,
						Input: tc.Input,
					},
				})
			}
			out = append(out, anthropicsdk.NewAssistantMessage(blocks...))
		case RoleTool:
			// Anthropic has no tool role; tool results travel as
			// tool_result blocks inside a user message.
			out = append(out, anthropicsdk.NewUserMessage(anthropicsdk.ContentBlockParamUnion{
				OfToolResult: &anthropicsdk.ToolResultBlockParam{
					ToolUseID: m.ToolCallID,
					Content: []anthropicsdk.ToolResultBlockParamContentUnion{
						{OfText: &anthropicsdk.TextBlockParam{Text: m.Content}},
					},
				},
			}))
		default:
			out = append(out, anthropicsdk.NewUserMessage(anthropicsdk.NewTextBlock(m.Content)))
		}
	}
	return out
}

func toAnthropicTools(tools []ToolSpec) []anthropicsdk.ToolUnionParam {
	out := make([]anthropicsdk.ToolUnionParam, 0, len(tools))
	for _, t := range tools {
		var properties any
		var required []string
		if t.Parameters != nil {
			if props, ok := t.Parameters["properties"]; ok {
				properties = props
			}
			if req, ok := t.Parameters["required"].([]string); ok {
				required = req
			}
		}
		out = append(out, anthropicsdk.ToolUnionParam{
			OfTool: &anthropicsdk.ToolParam{
				Name:        t.Name,
				Description: anthropicsdk.String(t.Description),
				InputSchema: anthropicsdk.ToolInputSchemaParam{
					Properties: properties,
					Required:   required,
				},
			},
		})
	}
	return out
}

// toolInputAsMap normalizes an Anthropic tool-use input (any shape the SDK
// hands back) into a plain map for ToolCall.Input.
func toolInputAsMap(input interface{}) map[string]interface{} {
	if input == nil {
		return nil
	}
	if m, ok := input.(map[string]interface{}); ok {
		return m
	}
	return map[string]interface{}{"_raw": input}
}

func fromAnthropicResponse(resp *anthropicsdk.Message) GenerateResponse {
	var out GenerateResponse
	for _, block := range resp.Content {
		switch b := block.AsAny().(type) {
		case anthropicsdk.TextBlock:
			if out.Text != "" {
				out.Text += "\n"
			}
			out.Text += b.Text
		case anthropicsdk.ToolUseBlock:
			out.ToolCalls = append(out.ToolCalls, ToolCall{
				ID:    b.ID,
				Name:  b.Name,
				Input: toolInputAsMap(b.Input),
			})
		}
	}
	return out
}
