package dispatcher

import (
	"context"
	"fmt"

	"github.com/yesoreyeram/agentweave/pkg/expression"
	"github.com/yesoreyeram/agentweave/pkg/jsonverdict"
	"github.com/yesoreyeram/agentweave/pkg/llm"
	"github.com/yesoreyeram/agentweave/pkg/logging"
	"github.com/yesoreyeram/agentweave/pkg/types"
)

// ProviderResolver resolves a {vendor, model} pair to an llm.Provider. Kept
// as its own narrow interface (rather than importing the agent package's
// identical one) so dispatcher has no dependency on agent.
type ProviderResolver interface {
	Resolve(vendor, model string) (llm.Provider, error)
}

// Dispatcher implements the Executor Dispatcher.
type Dispatcher struct {
	LLM    ProviderResolver
	Logger *logging.Logger

	// LowConfidenceGate is an optional expr-lang expression (evaluated
	// with a single "confidence" float variable) used only to decide
	// whether a low-confidence classifier choice is worth a warning log;
	// it never rejects the choice outright — confidence is clamped, not
	// floored. Empty disables the check.
	LowConfidenceGate string
}

func (d *Dispatcher) logger() *logging.Logger {
	if d.Logger == nil {
		return logging.New(logging.DefaultConfig())
	}
	return d.Logger
}

// Dispatch chooses an executor for task, per the table: workflow and
// specific-agent tasks are fixed by task.ExecutorID; agentic tasks go
// through the LLM classifier.
func (d *Dispatcher) Dispatch(ctx context.Context, task *types.Task, choice types.LLMChoice, cands Candidates) (types.ExecutorKind, string, error) {
	switch task.Type {
	case types.TaskTypeWorkflow:
		return types.ExecutorKindWorkflow, task.ExecutorID, nil
	case types.TaskTypeSpecificAgent:
		return types.ExecutorKindAgent, task.ExecutorID, nil
	case types.TaskTypeAgentic:
		return d.classify(ctx, task, choice, cands)
	default:
		return "", "", fmt.Errorf("dispatcher: unknown task type %q", task.Type)
	}
}

// classify runs the LLM classifier: build prompt, generate, parse with
// the extraction fallback, validate required fields, verify the chosen id
// exists among that type's candidates, clamp confidence.
func (d *Dispatcher) classify(ctx context.Context, task *types.Task, choice types.LLMChoice, cands Candidates) (types.ExecutorKind, string, error) {
	if cands.Empty() {
		return "", "", fmt.Errorf("%w: task %s", ErrNoExecutorAvailable, task.ID)
	}

	provider, err := d.LLM.Resolve(choice.Provider, choice.Model)
	if err != nil {
		return "", "", fmt.Errorf("dispatcher: resolve llm: %w", err)
	}

	prompt := buildClassifierPrompt(task, cands)
	resp, err := provider.GenerateText(ctx, llm.GenerateRequest{
		Model:    choice.Model,
		Messages: []llm.Message{{Role: llm.RoleUser, Content: prompt}},
	})
	if err != nil {
		return "", "", fmt.Errorf("%w: task %s: %v", ErrNoExecutorAvailable, task.ID, err)
	}

	var pick types.ClassifierChoice
	if err := jsonverdict.ParseWithFallback(resp.Text, classifierSchema, &pick); err != nil {
		return "", "", fmt.Errorf("%w: %w: task %s: %v", ErrNoExecutorAvailable, ErrClassifierParseError, task.ID, err)
	}

	if !cands.HasID(pick.Type, pick.ID) {
		return "", "", fmt.Errorf("%w: task %s chose %s %q", ErrInvalidExecutorChoice, task.ID, pick.Type, pick.ID)
	}

	pick.Confidence = clamp01(pick.Confidence)
	if ok, gateErr := d.passesConfidenceGate(pick.Confidence); gateErr == nil && !ok {
		d.logger().WithField("task_id", task.ID).WithField("confidence", pick.Confidence).
			Warnf("dispatcher: classifier chose %s %q at low confidence", pick.Type, pick.ID)
	}

	d.logger().WithField("task_id", task.ID).Debugf("dispatcher: classified as %s %q (confidence=%.2f): %s",
		pick.Type, pick.ID, pick.Confidence, pick.Reasoning)

	return pick.Type, pick.ID, nil
}

// passesConfidenceGate evaluates LowConfidenceGate, if set, against the
// clamped confidence value. A disabled gate always passes.
func (d *Dispatcher) passesConfidenceGate(confidence float64) (bool, error) {
	if d.LowConfidenceGate == "" {
		return true, nil
	}
	return expression.Evaluate(d.LowConfidenceGate, nil, &expression.Context{
		Variables: map[string]interface{}{"confidence": confidence},
	})
}

func clamp01(v float64) float64 {
	switch {
	case v < 0:
		return 0
	case v > 1:
		return 1
	default:
		return v
	}
}
