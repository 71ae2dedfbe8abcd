package agent

import (
	"context"
	"fmt"

	"github.com/yesoreyeram/agentweave/pkg/jsonverdict"
	"github.com/yesoreyeram/agentweave/pkg/llm"
	"github.com/yesoreyeram/agentweave/pkg/protocol"
	"github.com/yesoreyeram/agentweave/pkg/types"
	"github.com/yesoreyeram/agentweave/pkg/workflow"
)

// ToolRuntime layers tool-augmented generation and a final-check stage on
// top of the plain refine loop. An agent's declared Tools are
// attached once per Run call; any MCP connections opened to service them
// are released on every exit path.
type ToolRuntime struct {
	deps       *Deps
	wfProvider WorkflowProvider
	wfRuntime  *workflow.Runtime
}

// NewToolRuntime constructs a ToolRuntime. wfProvider and wfRuntime may be
// nil if ag.Tools never contains a ToolKindWorkflow entry; attachWorkflowTool
// will fail at call time otherwise.
func NewToolRuntime(deps *Deps, wfProvider WorkflowProvider, wfRuntime *workflow.Runtime) *ToolRuntime {
	return &ToolRuntime{deps: deps, wfProvider: wfProvider, wfRuntime: wfRuntime}
}

// Run executes the tool-augmented refine loop for one task bound to ag.
func (r *ToolRuntime) Run(ctx context.Context, ag *types.Agent, task *types.Task, taskContext string, fallback types.LLMChoice) (string, error) {
	choice := resolveLLM(ag, fallback)
	provider, err := r.deps.LLM.Resolve(choice.Provider, choice.Model)
	if err != nil {
		return "", fmt.Errorf("agent %s: resolve llm: %w", ag.ID, err)
	}

	tools, err := attachTools(ctx, ag, r.wfProvider, r.wfRuntime)
	if err != nil {
		return "", fmt.Errorf("agent %s: attach tools: %w", ag.ID, err)
	}
	defer tools.mcpRegs.Close()

	maxIter := r.deps.maxIterations()
	var lastOutput string
	var lastFeedback *types.ReviewFeedback

	for iter := 0; iter < maxIter; iter++ {
		genPrompt := buildGenerationPrompt(ag, task, taskContext, iter, lastOutput, lastFeedback)
		genResp, err := llm.RunToolLoop(ctx, provider, llm.GenerateRequest{
			Model:    choice.Model,
			Messages: []llm.Message{{Role: llm.RoleUser, Content: genPrompt}},
			Tools:    tools.specs,
		}, tools.toolExecutor(), r.deps.toolLoopConfig())
		if err != nil {
			return "", fmt.Errorf("agent %s: generate (iter %d): %w", ag.ID, iter, err)
		}
		lastOutput = genResp.Text

		reviewPrompt := buildReviewPrompt(task, lastOutput)
		reviewResp, err := provider.GenerateText(ctx, llm.GenerateRequest{
			Model:    choice.Model,
			Messages: []llm.Message{{Role: llm.RoleUser, Content: reviewPrompt}},
		})
		if err != nil {
			return "", fmt.Errorf("agent %s: review (iter %d): %w", ag.ID, iter, err)
		}

		var verdict types.ReviewVerdict
		if err := jsonverdict.ParseWithFallback(reviewResp.Text, reviewSchema, &verdict); err != nil {
			return "", fmt.Errorf("agent %s: %w: %v", ag.ID, types.ErrReviewParseError, err)
		}
		lastFeedback = &verdict.Feedback

		protocol.EmitConsole(ctx, r.deps.sink(), task.ID, protocol.KindInfo,
			fmt.Sprintf("agent %s iteration %d: status=%s score=%d", ag.ID, iter, verdict.Status, verdict.OverallScore), nil)
		r.deps.notifyIteration(ctx, ag, task, iter, verdict.Status)

		if verdict.Status == types.ReviewStatusComplete {
			return lastOutput, nil
		}

		accept, err := r.finalCheck(ctx, provider, choice, task, lastOutput, verdict)
		if err != nil {
			return "", err
		}
		if accept {
			return lastOutput, nil
		}
	}

	if lastOutput == "" {
		return "", ErrNoCandidateOutput
	}
	return lastOutput, nil
}

// finalCheck runs the final-check stage: one last chance to accept
// an output the reviewer flagged as needing revision.
func (r *ToolRuntime) finalCheck(ctx context.Context, provider llm.Provider, choice types.LLMChoice, task *types.Task, output string, verdict types.ReviewVerdict) (bool, error) {
	prompt := buildFinalCheckPrompt(task, output, verdict)
	resp, err := provider.GenerateText(ctx, llm.GenerateRequest{
		Model:    choice.Model,
		Messages: []llm.Message{{Role: llm.RoleUser, Content: prompt}},
	})
	if err != nil {
		return false, fmt.Errorf("final check: %w", err)
	}

	var fc types.FinalCheckVerdict
	if err := jsonverdict.ParseWithFallback(resp.Text, finalCheckSchema, &fc); err != nil {
		return false, fmt.Errorf("%w: %v", types.ErrFinalCheckParseError, err)
	}
	return fc.Accept && fc.NextAction == types.NextActionDeliver, nil
}
