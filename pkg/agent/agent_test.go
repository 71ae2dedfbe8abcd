package agent

import (
	"context"
	"errors"

	"github.com/yesoreyeram/agentweave/pkg/llm"
	"github.com/yesoreyeram/agentweave/pkg/types"
)

// scriptedProvider replays a fixed sequence of responses, one per
// GenerateText call, so a refine loop's generate/review/final-check steps
// can be driven deterministically in tests.
type scriptedProvider struct {
	responses []llm.GenerateResponse
	calls     int
	onCall    func(req llm.GenerateRequest)
}

func (p *scriptedProvider) GenerateText(ctx context.Context, req llm.GenerateRequest) (llm.GenerateResponse, error) {
	if p.onCall != nil {
		p.onCall(req)
	}
	if p.calls >= len(p.responses) {
		return llm.GenerateResponse{}, errors.New("scriptedProvider: out of responses")
	}
	resp := p.responses[p.calls]
	p.calls++
	return resp, nil
}

func (p *scriptedProvider) Name() string { return "scripted" }

// scriptedResolver always returns the same provider regardless of vendor.
type scriptedResolver struct {
	provider llm.Provider
}

func (r *scriptedResolver) Resolve(vendor, model string) (llm.Provider, error) {
	return r.provider, nil
}

func testAgent() *types.Agent {
	return &types.Agent{
		ID:   "agent-1",
		Name: "Researcher",
		Role: "research assistant",
	}
}

func testTask() *types.Task {
	return &types.Task{
		ID:    "task-1",
		Title: "Summarize the findings",
		Type:  types.TaskTypeAgentic,
	}
}
