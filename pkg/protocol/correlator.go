package protocol

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/yesoreyeram/agentweave/pkg/types"
)

// RequestTimeout bounds how long the runtime waits for a workflow_json
// reply correlated to a run_workflow request.
const RequestTimeout = 60 * time.Second

// Correlator matches a run_workflow request sent to the client with the
// workflow_json reply that eventually arrives, keyed by requestId. Exactly
// one waiter may be registered per request id at a time.
type Correlator struct {
	mu      sync.Mutex
	waiters map[string]chan WorkflowJSONReply
}

// NewCorrelator creates an empty Correlator.
func NewCorrelator() *Correlator {
	return &Correlator{waiters: make(map[string]chan WorkflowJSONReply)}
}

// Await registers a one-shot listener for requestID, sends the run_workflow
// frame via sink, and blocks until either the matching workflow_json reply
// arrives (delivered through Resolve), ctx is cancelled, or RequestTimeout
// elapses.
func (c *Correlator) Await(ctx context.Context, sink EventSink, requestID string, req RunWorkflowRequest) (WorkflowJSONReply, error) {
	ch := make(chan WorkflowJSONReply, 1)

	c.mu.Lock()
	if _, exists := c.waiters[requestID]; exists {
		c.mu.Unlock()
		return WorkflowJSONReply{}, fmt.Errorf("request id %q already awaited", requestID)
	}
	c.waiters[requestID] = ch
	c.mu.Unlock()

	defer func() {
		c.mu.Lock()
		delete(c.waiters, requestID)
		c.mu.Unlock()
	}()

	if sink != nil {
		sink.Emit(ctx, Frame{
			Type:      FrameRunWorkflow,
			Timestamp: time.Now(),
			RequestID: requestID,
			Data:      req,
		})
	}

	timer := time.NewTimer(RequestTimeout)
	defer timer.Stop()

	select {
	case reply := <-ch:
		return reply, nil
	case <-ctx.Done():
		return WorkflowJSONReply{}, ctx.Err()
	case <-timer.C:
		return WorkflowJSONReply{}, fmt.Errorf("%w: no workflow_json reply for request %s within %s", types.ErrRequestTimeout, requestID, RequestTimeout)
	}
}

// Resolve delivers a workflow_json reply to the waiter registered for its
// requestId, if any. Returns false if no waiter is currently registered
// (the reply arrived too late, or was never requested).
func (c *Correlator) Resolve(requestID string, reply WorkflowJSONReply) bool {
	c.mu.Lock()
	ch, exists := c.waiters[requestID]
	c.mu.Unlock()
	if !exists {
		return false
	}
	select {
	case ch <- reply:
		return true
	default:
		return false
	}
}
