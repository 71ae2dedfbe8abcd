package dispatcher

import (
	"context"
	"fmt"

	"github.com/yesoreyeram/agentweave/pkg/mcp"
)

// InvokeMCP dials cand's server (if not already connected in reg), calls
// its declared tool with input as the tool's sole "input" argument, and
// returns the rendered result. The caller owns reg and is responsible for
// closing it on every exit path.
func InvokeMCP(ctx context.Context, reg *mcp.Registry, cand MCPCandidate, input string) (string, error) {
	client, err := reg.Dial(ctx, cand.Server)
	if err != nil {
		return "", fmt.Errorf("dispatcher: dial mcp candidate %s: %w", cand.ID, err)
	}
	out, err := client.CallTool(ctx, cand.ToolName, map[string]interface{}{"input": input})
	if err != nil {
		return "", fmt.Errorf("dispatcher: call mcp candidate %s: %w", cand.ID, err)
	}
	return out, nil
}
