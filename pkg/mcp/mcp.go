// Package mcp wraps github.com/mark3labs/mcp-go's client transports behind a
// narrow Client interface used by the MCP Discovery, MCP ToolCall and MCP
// GetPrompt nodes, and by the tool-augmented agent runtime when an agent's
// Tool has Kind == types.ToolKindMCP.
package mcp

import (
	"context"
	"fmt"

	mcpclient "github.com/mark3labs/mcp-go/client"
	mcptypes "github.com/mark3labs/mcp-go/mcp"
)

// ToolDescriptor is a remote tool's name, description and JSON-Schema
// input shape, as reported by the server.
type ToolDescriptor struct {
	Name        string
	Description string
	InputSchema map[string]interface{}
}

// Client is the subset of MCP operations the runtime needs from a
// connected server.
type Client interface {
	ListTools(ctx context.Context) ([]ToolDescriptor, error)
	CallTool(ctx context.Context, name string, args map[string]interface{}) (string, error)
	GetPrompt(ctx context.Context, name string, args map[string]string) (string, error)
	Close() error
}

// clientImpl adapts mark3labs/mcp-go's MCPClient to Client.
type clientImpl struct {
	raw mcpclient.MCPClient
}

// DialStdio launches command as a subprocess and speaks MCP over its
// stdio, per the target's MCPCommand/MCPArgs configuration.
func DialStdio(ctx context.Context, command string, args []string, env []string) (Client, error) {
	c, err := mcpclient.NewStdioMCPClient(command, env, args...)
	if err != nil {
		return nil, fmt.Errorf("mcp: stdio dial %s: %w", command, err)
	}
	if err := initialize(ctx, c); err != nil {
		_ = c.Close()
		return nil, err
	}
	return &clientImpl{raw: c}, nil
}

// DialHTTP connects to a remote MCP server over streamable HTTP. It falls
// back to the SSE transport only when the streamable-HTTP client cannot be
// constructed; if the server rejects the streamable-HTTP initialize, the
// error is returned and SSE is not tried.
func DialHTTP(ctx context.Context, url string) (Client, error) {
	c, err := mcpclient.NewStreamableHttpClient(url)
	if err != nil {
		sseClient, sseErr := mcpclient.NewSSEMCPClient(url)
		if sseErr != nil {
			return nil, fmt.Errorf("mcp: http dial %s: streamable-http=%v sse=%v", url, err, sseErr)
		}
		c = sseClient
	}
	if err := initialize(ctx, c); err != nil {
		_ = c.Close()
		return nil, err
	}
	return &clientImpl{raw: c}, nil
}

func initialize(ctx context.Context, c mcpclient.MCPClient) error {
	req := mcptypes.InitializeRequest{}
	req.Params.ProtocolVersion = mcptypes.LATEST_PROTOCOL_VERSION
	req.Params.ClientInfo = mcptypes.Implementation{
		Name:    "agentweave",
		Version: "0.1.0",
	}
	_, err := c.Initialize(ctx, req)
	if err != nil {
		return fmt.Errorf("mcp: initialize: %w", err)
	}
	return nil
}

func (c *clientImpl) ListTools(ctx context.Context) ([]ToolDescriptor, error) {
	resp, err := c.raw.ListTools(ctx, mcptypes.ListToolsRequest{})
	if err != nil {
		return nil, fmt.Errorf("mcp: list tools: %w", err)
	}
	out := make([]ToolDescriptor, 0, len(resp.Tools))
	for _, t := range resp.Tools {
		schema := map[string]interface{}{
			"type":       "object",
			"properties": t.InputSchema.Properties,
			"required":   t.InputSchema.Required,
		}
		out = append(out, ToolDescriptor{
			Name:        t.Name,
			Description: t.Description,
			InputSchema: schema,
		})
	}
	return out, nil
}

func (c *clientImpl) CallTool(ctx context.Context, name string, args map[string]interface{}) (string, error) {
	req := mcptypes.CallToolRequest{}
	req.Params.Name = name
	req.Params.Arguments = args

	resp, err := c.raw.CallTool(ctx, req)
	if err != nil {
		return "", fmt.Errorf("mcp: call tool %s: %w", name, err)
	}
	if resp.IsError {
		return "", fmt.Errorf("mcp: tool %s returned an error result: %s", name, renderContent(resp.Content))
	}
	return renderContent(resp.Content), nil
}

func (c *clientImpl) GetPrompt(ctx context.Context, name string, args map[string]string) (string, error) {
	req := mcptypes.GetPromptRequest{}
	req.Params.Name = name
	req.Params.Arguments = args

	resp, err := c.raw.GetPrompt(ctx, req)
	if err != nil {
		return "", fmt.Errorf("mcp: get prompt %s: %w", name, err)
	}
	var out string
	for _, msg := range resp.Messages {
		if tc, ok := msg.Content.(mcptypes.TextContent); ok {
			if out != "" {
				out += "\n"
			}
			out += tc.Text
		}
	}
	return out, nil
}

func (c *clientImpl) Close() error {
	return c.raw.Close()
}

// renderContent flattens an MCP tool result's content blocks into plain
// text for splicing back into an agent's conversation.
func renderContent(content []mcptypes.Content) string {
	var out string
	for _, block := range content {
		if tc, ok := block.(mcptypes.TextContent); ok {
			if out != "" {
				out += "\n"
			}
			out += tc.Text
		}
	}
	return out
}
