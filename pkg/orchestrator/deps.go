package orchestrator

import (
	"context"
	"fmt"

	"github.com/yesoreyeram/agentweave/pkg/dispatcher"
	"github.com/yesoreyeram/agentweave/pkg/logging"
	"github.com/yesoreyeram/agentweave/pkg/protocol"
	"github.com/yesoreyeram/agentweave/pkg/types"
	"github.com/yesoreyeram/agentweave/pkg/workflow"
)

// AgentRuntime is the subset of agent.BasicRuntime/agent.ToolRuntime the
// orchestrator drives. Both satisfy this by their existing Run signature.
type AgentRuntime interface {
	Run(ctx context.Context, ag *types.Agent, task *types.Task, taskContext string, fallback types.LLMChoice) (string, error)
}

// WorkflowRuntime is the subset of *workflow.Runtime the orchestrator
// drives.
type WorkflowRuntime interface {
	Execute(ctx context.Context, wf *types.Workflow, rootInput string) (*workflow.Result, error)
}

// Dispatch is the subset of *dispatcher.Dispatcher the orchestrator drives.
type Dispatch interface {
	Dispatch(ctx context.Context, task *types.Task, choice types.LLMChoice, cands dispatcher.Candidates) (types.ExecutorKind, string, error)
}

func (o *Orchestrator) sink() protocol.EventSink {
	if o.Sink == nil {
		return protocol.NoOpSink{}
	}
	return o.Sink
}

func (o *Orchestrator) logger() *logging.Logger {
	if o.Logger == nil {
		return logging.New(logging.DefaultConfig())
	}
	return o.Logger
}

func (o *Orchestrator) transcriptDir() string {
	if o.TranscriptDir == "" {
		return "Output"
	}
	return o.TranscriptDir
}

// WorkspaceWorkflowProvider adapts a workspace's declared workflows to
// agent.WorkflowProvider, so a tool-augmented agent's ToolKindWorkflow
// tools can resolve a workflow id without the agent package depending on
// the orchestrator.
type WorkspaceWorkflowProvider struct {
	Workspace *types.Workspace
}

// GetWorkflow implements agent.WorkflowProvider.
func (p *WorkspaceWorkflowProvider) GetWorkflow(ctx context.Context, workflowID string) (*types.Workflow, error) {
	for i := range p.Workspace.Workflows {
		if p.Workspace.Workflows[i].ID == workflowID {
			return &p.Workspace.Workflows[i], nil
		}
	}
	return nil, fmt.Errorf("%w: %s", ErrUnknownWorkflow, workflowID)
}
