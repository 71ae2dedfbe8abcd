package agent

import (
	"context"
	"testing"

	"github.com/yesoreyeram/agentweave/pkg/config"
	"github.com/yesoreyeram/agentweave/pkg/llm"
	"github.com/yesoreyeram/agentweave/pkg/protocol"
	"github.com/yesoreyeram/agentweave/pkg/types"
	"github.com/yesoreyeram/agentweave/pkg/workflow"
)

// fakeWorkflowProvider resolves a single fixed workflow regardless of id,
// so the workflow-tool executor path can be exercised without a real
// workspace lookup.
type fakeWorkflowProvider struct {
	wf *types.Workflow
}

func (p *fakeWorkflowProvider) GetWorkflow(ctx context.Context, workflowID string) (*types.Workflow, error) {
	return p.wf, nil
}

// echoToolNode is a Node that returns its sole input unchanged, used
// to give the fake workflow a trivially verifiable result.
type echoToolNode struct{}

func (echoToolNode) Declared() *types.Node { return &types.Node{} }
func (echoToolNode) Process(ctx context.Context, in workflow.Inputs) (workflow.Outputs, error) {
	return in[workflow.RootInputSocketID], nil
}

func newEchoWorkflow() (*types.Workflow, *workflow.Registry) {
	reg := workflow.NewRegistry()
	reg.MustRegister("echo", func(declared types.Node) (workflow.Node, error) {
		return echoToolNode{}, nil
	})
	wf := &types.Workflow{
		ID:   "wf-1",
		Name: "echo workflow",
		Nodes: []types.Node{
			{
				ID:       "n1",
				NodeType: "echo",
				Sockets: []types.NodeSocket{
					{ID: workflow.RootInputSocketID, Direction: types.DirectionInput, DataType: types.DataTypeString},
				},
			},
		},
	}
	return wf, reg
}

func TestToolRuntimeInvokesWorkflowTool(t *testing.T) {
	wf, reg := newEchoWorkflow()
	wfRuntime := workflow.NewRuntime(reg, protocol.NoOpSink{})
	wfProvider := &fakeWorkflowProvider{wf: wf}

	ag := testAgent()
	ag.Tools = []types.Tool{
		{Kind: types.ToolKindWorkflow, Name: "run_research", Description: "runs a sub-workflow", WorkflowID: "wf-1"},
	}

	provider := &scriptedProvider{
		responses: []llm.GenerateResponse{
			{ToolCalls: []llm.ToolCall{{ID: "call-1", Name: "run_research", Input: map[string]interface{}{"workflowInput": "dig deeper"}}}},
			{Text: "final answer using tool"},
			{Text: `{"status":"complete","overall_score":95,"feedback":{}}`},
		},
	}
	rt := NewToolRuntime(&Deps{
		LLM:    &scriptedResolver{provider: provider},
		Config: config.Default(),
	}, wfProvider, wfRuntime)

	out, err := rt.Run(context.Background(), ag, testTask(), "", types.LLMChoice{Provider: "openai", Model: "gpt-4o-mini"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out != "final answer using tool" {
		t.Fatalf("got output %q", out)
	}
	if provider.calls != 3 {
		t.Fatalf("expected 3 provider calls (tool-call turn, follow-up, review), got %d", provider.calls)
	}
}

func TestToolRuntimeFinalCheckAcceptsRevisionNeededOutput(t *testing.T) {
	provider := &scriptedProvider{
		responses: []llm.GenerateResponse{
			{Text: "borderline output"},
			{Text: `{"status":"needs_revision","overall_score":55,"feedback":{"weaknesses":["minor gaps"]}}`},
			{Text: `{"accept":true,"reason":"good enough","next_action":"deliver"}`},
		},
	}
	rt := NewToolRuntime(&Deps{
		LLM:    &scriptedResolver{provider: provider},
		Config: config.Default(),
	}, nil, nil)

	out, err := rt.Run(context.Background(), testAgent(), testTask(), "", types.LLMChoice{Provider: "openai", Model: "gpt-4o-mini"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out != "borderline output" {
		t.Fatalf("got output %q", out)
	}
	if provider.calls != 3 {
		t.Fatalf("expected 3 provider calls (generate, review, final-check), got %d", provider.calls)
	}
}

func TestToolRuntimeFinalCheckRejectsAndLoops(t *testing.T) {
	cfg := config.Default()
	cfg.DefaultMaxIterations = 2

	provider := &scriptedProvider{
		responses: []llm.GenerateResponse{
			{Text: "first draft"},
			{Text: `{"status":"needs_revision","overall_score":30,"feedback":{"weaknesses":["wrong"]}}`},
			{Text: `{"accept":false,"reason":"not good enough","next_action":"revise"}`},
			{Text: "second draft"},
			{Text: `{"status":"complete","overall_score":90,"feedback":{}}`},
		},
	}
	rt := NewToolRuntime(&Deps{
		LLM:    &scriptedResolver{provider: provider},
		Config: cfg,
	}, nil, nil)

	out, err := rt.Run(context.Background(), testAgent(), testTask(), "", types.LLMChoice{Provider: "openai", Model: "gpt-4o-mini"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out != "second draft" {
		t.Fatalf("got output %q", out)
	}
	if provider.calls != 5 {
		t.Fatalf("expected 5 provider calls, got %d", provider.calls)
	}
}
