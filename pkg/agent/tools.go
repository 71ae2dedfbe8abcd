package agent

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/yesoreyeram/agentweave/pkg/llm"
	"github.com/yesoreyeram/agentweave/pkg/mcp"
	"github.com/yesoreyeram/agentweave/pkg/types"
	"github.com/yesoreyeram/agentweave/pkg/workflow"
)

// WorkflowProvider resolves a workflow id to its declaration, so a
// ToolKindWorkflow tool can be invoked without the runtime sniffing
// workflow sockets itself.
type WorkflowProvider interface {
	GetWorkflow(ctx context.Context, workflowID string) (*types.Workflow, error)
}

// workflowToolInputSchema is the fixed parameter shape offered for every
// ToolKindWorkflow tool: the called workflow receives a single string at
// its WorkflowInput node.
var workflowToolInputSchema = map[string]interface{}{
	"type": "object",
	"properties": map[string]interface{}{
		"workflowInput": map[string]interface{}{"type": "string"},
	},
	"required": []string{"workflowInput"},
}

// attachedTools is the resolution of an agent's declared Tools into
// callable LLM tool specs, plus the registry of any MCP connections opened
// to service them.
type attachedTools struct {
	specs   []llm.ToolSpec
	exec    map[string]llm.ToolExecutor
	mcpRegs *mcp.Registry
}

// attachTools resolves ag.Tools into LLM-callable specs. Only
// ToolKindWorkflow and ToolKindMCP are attached at setup time; Function and
// Basic tool kinds are left for a future runtime.
func attachTools(ctx context.Context, ag *types.Agent, wfProvider WorkflowProvider, wfRuntime *workflow.Runtime) (*attachedTools, error) {
	at := &attachedTools{
		exec:    make(map[string]llm.ToolExecutor),
		mcpRegs: mcp.NewRegistry(),
	}

	for _, tool := range ag.Tools {
		switch tool.Kind {
		case types.ToolKindWorkflow:
			at.attachWorkflowTool(tool, wfProvider, wfRuntime)
		case types.ToolKindMCP:
			if err := at.attachMCPTools(ctx, tool); err != nil {
				_ = at.mcpRegs.Close()
				return nil, err
			}
		}
	}

	return at, nil
}

func (at *attachedTools) attachWorkflowTool(tool types.Tool, wfProvider WorkflowProvider, wfRuntime *workflow.Runtime) {
	name := tool.Name
	workflowID := tool.WorkflowID

	at.specs = append(at.specs, llm.ToolSpec{
		Name:        name,
		Description: tool.Description,
		Parameters:  workflowToolInputSchema,
	})
	at.exec[name] = func(ctx context.Context, call llm.ToolCall) (string, error) {
		if wfProvider == nil || wfRuntime == nil {
			return "", fmt.Errorf("tool %q: no workflow provider or runtime configured", name)
		}
		wf, err := wfProvider.GetWorkflow(ctx, workflowID)
		if err != nil {
			return "", fmt.Errorf("tool %q: resolve workflow %s: %w", name, workflowID, err)
		}
		input, _ := call.Input["workflowInput"].(string)
		res, err := wfRuntime.Execute(ctx, wf, input)
		if err != nil {
			return "", fmt.Errorf("tool %q: run workflow %s: %w", name, workflowID, err)
		}
		return renderToolResult(res.FinalResult), nil
	}
}

func (at *attachedTools) attachMCPTools(ctx context.Context, tool types.Tool) error {
	spec := mcp.ServerSpec{
		Name:    tool.MCPServerName,
		Command: tool.MCPCommand,
		Args:    tool.MCPArgs,
		URL:     tool.MCPURL,
	}
	if spec.Name == "" {
		spec.Name = tool.Name
	}

	client, err := at.mcpRegs.Dial(ctx, spec)
	if err != nil {
		return fmt.Errorf("%w: %s: %v", types.ErrMcpConnectFailed, spec.Name, err)
	}

	descriptors, err := client.ListTools(ctx)
	if err != nil {
		return fmt.Errorf("%w: %s: %v", types.ErrMcpConnectFailed, spec.Name, err)
	}

	for _, d := range descriptors {
		d := d
		at.specs = append(at.specs, llm.ToolSpec{
			Name:        d.Name,
			Description: d.Description,
			Parameters:  d.InputSchema,
		})
		at.exec[d.Name] = func(ctx context.Context, call llm.ToolCall) (string, error) {
			out, err := client.CallTool(ctx, d.Name, call.Input)
			if err != nil {
				return "", fmt.Errorf("%w: %s: %v", types.ErrMcpCallFailed, d.Name, err)
			}
			return out, nil
		}
	}
	return nil
}

// toolExecutor adapts the attached tools into a single llm.ToolExecutor
// dispatching on call.Name, for use with llm.RunToolLoop.
func (at *attachedTools) toolExecutor() llm.ToolExecutor {
	return func(ctx context.Context, call llm.ToolCall) (string, error) {
		exec, ok := at.exec[call.Name]
		if !ok {
			return "", types.NewErrToolNotFound(call.Name)
		}
		return exec(ctx, call)
	}
}

func renderToolResult(v interface{}) string {
	if s, ok := v.(string); ok {
		return s
	}
	b, err := json.Marshal(v)
	if err != nil {
		return fmt.Sprintf("%v", v)
	}
	return string(b)
}
