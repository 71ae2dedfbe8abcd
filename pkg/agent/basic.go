package agent

import (
	"context"
	"fmt"

	"github.com/yesoreyeram/agentweave/pkg/jsonverdict"
	"github.com/yesoreyeram/agentweave/pkg/llm"
	"github.com/yesoreyeram/agentweave/pkg/protocol"
	"github.com/yesoreyeram/agentweave/pkg/types"
)

// BasicRuntime drives the plain generate -> review -> refine loop,
// with no tool attachment and no final-check stage.
type BasicRuntime struct {
	deps *Deps
}

// NewBasicRuntime constructs a BasicRuntime.
func NewBasicRuntime(deps *Deps) *BasicRuntime {
	return &BasicRuntime{deps: deps}
}

// resolveLLM picks the agent's own LLM choice if set, else the caller's
// fallback (typically the workspace default).
func resolveLLM(ag *types.Agent, fallback types.LLMChoice) types.LLMChoice {
	if ag.LLM != nil {
		return *ag.LLM
	}
	return fallback
}

// Run executes the refine loop for one task bound to ag, returning the
// final output text. taskContext is the already-concatenated predecessor
// context; fallback is the LLM choice to use when ag
// declares none of its own.
func (r *BasicRuntime) Run(ctx context.Context, ag *types.Agent, task *types.Task, taskContext string, fallback types.LLMChoice) (string, error) {
	choice := resolveLLM(ag, fallback)
	provider, err := r.deps.LLM.Resolve(choice.Provider, choice.Model)
	if err != nil {
		return "", fmt.Errorf("agent %s: resolve llm: %w", ag.ID, err)
	}

	maxIter := r.deps.maxIterations()
	var lastOutput string
	var lastFeedback *types.ReviewFeedback

	for iter := 0; iter < maxIter; iter++ {
		genPrompt := buildGenerationPrompt(ag, task, taskContext, iter, lastOutput, lastFeedback)
		genResp, err := provider.GenerateText(ctx, llm.GenerateRequest{
			Model:    choice.Model,
			Messages: []llm.Message{{Role: llm.RoleUser, Content: genPrompt}},
		})
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
	}

	// Iteration budget exhausted: return the last output rather than fail
	//.
	if lastOutput == "" {
		return "", ErrNoCandidateOutput
	}
	return lastOutput, nil
}
