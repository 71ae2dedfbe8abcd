package agent

import (
	"context"

	"github.com/yesoreyeram/agentweave/pkg/config"
	"github.com/yesoreyeram/agentweave/pkg/llm"
	"github.com/yesoreyeram/agentweave/pkg/logging"
	"github.com/yesoreyeram/agentweave/pkg/observer"
	"github.com/yesoreyeram/agentweave/pkg/protocol"
	"github.com/yesoreyeram/agentweave/pkg/types"
)

// ProviderResolver resolves a {vendor, model} pair to an llm.Provider.
// *llm.Factory satisfies this; tests substitute a fake.
type ProviderResolver interface {
	Resolve(vendor, model string) (llm.Provider, error)
}

// Deps bundles the shared collaborators both runtime variants need.
type Deps struct {
	LLM       ProviderResolver
	Config    *config.Config
	Sink      protocol.EventSink
	Observers *observer.Manager
	Logger    *logging.Logger
}

// notifyIteration reports one completed refine-loop round, carrying the
// reviewer's status so telemetry can split converged from revised rounds.
func (d *Deps) notifyIteration(ctx context.Context, ag *types.Agent, task *types.Task, iter int, status types.ReviewStatus) {
	d.Observers.Notify(ctx, observer.Event{
		Type:        observer.EventAgentIteration,
		ExecutionID: types.GetExecutionID(ctx),
		TaskID:      task.ID,
		AgentID:     ag.ID,
		Iteration:   iter,
		Metadata:    map[string]interface{}{"status": string(status)},
	})
}

func (d *Deps) sink() protocol.EventSink {
	if d.Sink == nil {
		return protocol.NoOpSink{}
	}
	return d.Sink
}

func (d *Deps) maxIterations() int {
	if d.Config == nil || d.Config.DefaultMaxIterations <= 0 {
		return 5
	}
	return d.Config.DefaultMaxIterations
}

func (d *Deps) toolLoopConfig() llm.ToolLoopConfig {
	cfg := llm.ToolLoopConfig{}
	if d.Config != nil {
		cfg.MaxIterations = d.Config.MaxToolIterations
		cfg.ToolTimeout = d.Config.ToolCallTimeout
	}
	return cfg
}

func (d *Deps) logf(format string, args ...interface{}) {
	if d.Logger == nil {
		return
	}
	d.Logger.Debugf(format, args...)
}
