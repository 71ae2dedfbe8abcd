package nodes

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/yesoreyeram/agentweave/pkg/mcp"
	"github.com/yesoreyeram/agentweave/pkg/types"
	"github.com/yesoreyeram/agentweave/pkg/workflow"
)

// mcpServer resolves the ServerSpec named by a node's "server" config
// parameter against deps.MCPServers.
func mcpServer(deps *Deps, name string) (mcp.ServerSpec, error) {
	spec, ok := deps.MCPServers[name]
	if !ok {
		return mcp.ServerSpec{}, fmt.Errorf("mcp: no server named %q configured", name)
	}
	return spec, nil
}

// dialAndClose connects to the node's configured server, runs fn with the
// live client, and closes the connection before returning — each MCP node
// opens, uses and closes its own transport per Process call.
func dialAndClose(ctx context.Context, deps *Deps, serverName string, fn func(mcp.Client) (workflow.Outputs, error)) (workflow.Outputs, error) {
	spec, err := mcpServer(deps, serverName)
	if err != nil {
		return fmt.Sprintf("Error: %v", err), nil
	}
	client, err := mcp.Dial(ctx, spec)
	if err != nil {
		return fmt.Sprintf("Error: %v", err), nil
	}
	defer client.Close()

	out, err := fn(client)
	if err != nil {
		return fmt.Sprintf("Error: %v", err), nil
	}
	return out, nil
}

// mcpDiscoveryNode lists the tools a named MCP server exposes.
type mcpDiscoveryNode struct {
	baseNode
	deps *Deps
}

func newMCPDiscoveryNode(deps *Deps) workflow.Factory {
	return func(declared types.Node) (workflow.Node, error) {
		return &mcpDiscoveryNode{baseNode: baseNode{declared: declared}, deps: deps}, nil
	}
}

func (n *mcpDiscoveryNode) Process(ctx context.Context, _ workflow.Inputs) (workflow.Outputs, error) {
	server, err := n.configStringRequired("server")
	if err != nil {
		return nil, fmt.Errorf("mcp-discovery: %w", err)
	}
	return dialAndClose(ctx, n.deps, server, func(client mcp.Client) (workflow.Outputs, error) {
		tools, err := client.ListTools(ctx)
		if err != nil {
			return nil, fmt.Errorf("listing tools: %w", err)
		}
		names := make([]string, 0, len(tools))
		for _, t := range tools {
			names = append(names, t.Name)
		}
		b, err := json.Marshal(map[string]interface{}{"tools": tools})
		if err != nil {
			return strings.Join(names, ", "), nil
		}
		return string(b), nil
	})
}

// mcpToolCallNode invokes a named tool on a named MCP server with a JSON
// object input.
type mcpToolCallNode struct {
	baseNode
	deps *Deps
	in   types.SocketID
}

func newMCPToolCallNode(deps *Deps) workflow.Factory {
	return func(declared types.Node) (workflow.Node, error) {
		in, _ := soleInputSocket(declared)
		if in == "" {
			in = SocketToolArgs
		}
		return &mcpToolCallNode{baseNode: baseNode{declared: declared}, deps: deps, in: in}, nil
	}
}

func (n *mcpToolCallNode) Process(ctx context.Context, in workflow.Inputs) (workflow.Outputs, error) {
	server, err := n.configStringRequired("server")
	if err != nil {
		return nil, fmt.Errorf("mcp-tool-call: %w", err)
	}
	tool, err := n.configStringRequired("tool")
	if err != nil {
		return nil, fmt.Errorf("mcp-tool-call: %w", err)
	}

	args, err := toolCallArgs(in[n.in])
	if err != nil {
		return fmt.Sprintf("Error: %v", err), nil
	}

	return dialAndClose(ctx, n.deps, server, func(client mcp.Client) (workflow.Outputs, error) {
		return client.CallTool(ctx, tool, args)
	})
}

// toolCallArgs coerces a node's raw tool-args input into the JSON object
// map the MCP client expects.
func toolCallArgs(v interface{}) (map[string]interface{}, error) {
	switch val := v.(type) {
	case nil:
		return map[string]interface{}{}, nil
	case map[string]interface{}:
		return val, nil
	case string:
		if val == "" {
			return map[string]interface{}{}, nil
		}
		var m map[string]interface{}
		if err := json.Unmarshal([]byte(val), &m); err != nil {
			return nil, fmt.Errorf("tool args must be a JSON object: %w", err)
		}
		return m, nil
	default:
		return nil, fmt.Errorf("tool args must be a JSON object, got %T", v)
	}
}

// mcpGetPromptNode retrieves a named prompt body from an MCP server.
type mcpGetPromptNode struct {
	baseNode
	deps *Deps
	in   types.SocketID
}

func newMCPGetPromptNode(deps *Deps) workflow.Factory {
	return func(declared types.Node) (workflow.Node, error) {
		in, _ := soleInputSocket(declared)
		if in == "" {
			in = SocketPromptArgs
		}
		return &mcpGetPromptNode{baseNode: baseNode{declared: declared}, deps: deps, in: in}, nil
	}
}

func (n *mcpGetPromptNode) Process(ctx context.Context, in workflow.Inputs) (workflow.Outputs, error) {
	server, err := n.configStringRequired("server")
	if err != nil {
		return nil, fmt.Errorf("mcp-get-prompt: %w", err)
	}
	prompt, err := n.configStringRequired("prompt")
	if err != nil {
		return nil, fmt.Errorf("mcp-get-prompt: %w", err)
	}

	args, err := promptArgs(in[n.in])
	if err != nil {
		return fmt.Sprintf("Error: %v", err), nil
	}

	return dialAndClose(ctx, n.deps, server, func(client mcp.Client) (workflow.Outputs, error) {
		return client.GetPrompt(ctx, prompt, args)
	})
}

func promptArgs(v interface{}) (map[string]string, error) {
	switch val := v.(type) {
	case nil:
		return map[string]string{}, nil
	case map[string]string:
		return val, nil
	case map[string]interface{}:
		out := make(map[string]string, len(val))
		for k, raw := range val {
			s, ok := raw.(string)
			if !ok {
				return nil, fmt.Errorf("prompt arg %q must be a string", k)
			}
			out[k] = s
		}
		return out, nil
	case string:
		if val == "" {
			return map[string]string{}, nil
		}
		var m map[string]string
		if err := json.Unmarshal([]byte(val), &m); err != nil {
			return nil, fmt.Errorf("prompt args must be a JSON object of strings: %w", err)
		}
		return m, nil
	default:
		return nil, fmt.Errorf("prompt args must be a JSON object, got %T", v)
	}
}
