package agent

import (
	"context"
	"errors"
	"testing"

	"github.com/yesoreyeram/agentweave/pkg/config"
	"github.com/yesoreyeram/agentweave/pkg/llm"
	"github.com/yesoreyeram/agentweave/pkg/types"
)

func TestBasicRuntimeCompletesOnFirstIteration(t *testing.T) {
	provider := &scriptedProvider{
		responses: []llm.GenerateResponse{
			{Text: "the summary"},
			{Text: `{"status":"complete","overall_score":90,"feedback":{}}`},
		},
	}
	rt := NewBasicRuntime(&Deps{
		LLM:    &scriptedResolver{provider: provider},
		Config: config.Default(),
	})

	out, err := rt.Run(context.Background(), testAgent(), testTask(), "", types.LLMChoice{Provider: "openai", Model: "gpt-4o-mini"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out != "the summary" {
		t.Fatalf("got output %q", out)
	}
	if provider.calls != 2 {
		t.Fatalf("expected 2 provider calls, got %d", provider.calls)
	}
}

func TestBasicRuntimeRefinesOnNeedsRevision(t *testing.T) {
	provider := &scriptedProvider{
		responses: []llm.GenerateResponse{
			{Text: "draft one"},
			{Text: `{"status":"needs_revision","overall_score":40,"feedback":{"weaknesses":["too short"]}}`},
			{Text: "draft two, now longer"},
			{Text: `{"status":"complete","overall_score":85,"feedback":{}}`},
		},
	}
	rt := NewBasicRuntime(&Deps{
		LLM:    &scriptedResolver{provider: provider},
		Config: config.Default(),
	})

	out, err := rt.Run(context.Background(), testAgent(), testTask(), "", types.LLMChoice{Provider: "openai", Model: "gpt-4o-mini"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out != "draft two, now longer" {
		t.Fatalf("got output %q", out)
	}
	if provider.calls != 4 {
		t.Fatalf("expected 4 provider calls, got %d", provider.calls)
	}
}

func TestBasicRuntimeReturnsLastOutputOnIterationExhaustion(t *testing.T) {
	cfg := config.Default()
	cfg.DefaultMaxIterations = 2

	responses := []llm.GenerateResponse{
		{Text: "attempt 1"},
		{Text: `{"status":"needs_revision","overall_score":10,"feedback":{}}`},
		{Text: "attempt 2"},
		{Text: `{"status":"needs_revision","overall_score":20,"feedback":{}}`},
	}
	provider := &scriptedProvider{responses: responses}
	rt := NewBasicRuntime(&Deps{
		LLM:    &scriptedResolver{provider: provider},
		Config: cfg,
	})

	out, err := rt.Run(context.Background(), testAgent(), testTask(), "", types.LLMChoice{Provider: "openai", Model: "gpt-4o-mini"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out != "attempt 2" {
		t.Fatalf("got output %q, want last attempt returned on exhaustion", out)
	}
}

func TestBasicRuntimeReviewParseErrorWraps(t *testing.T) {
	provider := &scriptedProvider{
		responses: []llm.GenerateResponse{
			{Text: "an attempt"},
			{Text: "not json at all"},
		},
	}
	rt := NewBasicRuntime(&Deps{
		LLM:    &scriptedResolver{provider: provider},
		Config: config.Default(),
	})

	_, err := rt.Run(context.Background(), testAgent(), testTask(), "", types.LLMChoice{Provider: "openai", Model: "gpt-4o-mini"})
	if err == nil {
		t.Fatal("expected an error for unparseable review response")
	}
	if !errors.Is(err, types.ErrReviewParseError) {
		t.Fatalf("expected error to wrap ErrReviewParseError, got %v", err)
	}
}
