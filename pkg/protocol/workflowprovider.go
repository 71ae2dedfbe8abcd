package protocol

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/yesoreyeram/agentweave/pkg/types"
)

// RemoteWorkflowProvider resolves a workflow id by asking the connected
// client for it: it sends a run_workflow frame and awaits the correlated
// workflow_json reply. It satisfies the same GetWorkflow contract as the
// orchestrator's in-process workspace lookup, so the caller chooses at
// wiring time whether workflow-typed tools resolve locally or over the
// client connection — there is no runtime feature-sniffing.
type RemoteWorkflowProvider struct {
	Sink       EventSink
	Correlator *Correlator
}

// GetWorkflow requests workflowID from the client and blocks until the
// reply arrives, ctx is cancelled, or the correlator's timeout elapses.
func (p *RemoteWorkflowProvider) GetWorkflow(ctx context.Context, workflowID string) (*types.Workflow, error) {
	requestID := uuid.NewString()
	reply, err := p.Correlator.Await(ctx, p.Sink, requestID, RunWorkflowRequest{WorkflowID: workflowID})
	if err != nil {
		return nil, err
	}
	if reply.Workflow == nil {
		return nil, fmt.Errorf("%w: workflow_json reply for %s carried no workflow", types.ErrMalformedFrame, workflowID)
	}
	return reply.Workflow, nil
}
