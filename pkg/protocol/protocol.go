// Package protocol implements the bidirectional frame stream of the client
// protocol (event/control plane) described in the engine's external
// interfaces: console events, workflow_output notifications, and the
// run_workflow/workflow_json request correlation.
package protocol

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/yesoreyeram/agentweave/pkg/types"
)

// FrameType names a known frame shape on the stream.
type FrameType string

const (
	FrameRunWorkspace FrameType = "run_workspace"
	FrameMessage      FrameType = "message"
	FrameWorkflowOut  FrameType = "workflow_output"
	FrameRunWorkflow  FrameType = "run_workflow"
	FrameWorkflowJSON FrameType = "workflow_json"
)

// Frame is the envelope every message on the stream is wrapped in.
type Frame struct {
	Type      FrameType   `json:"type"`
	Data      interface{} `json:"data"`
	Timestamp time.Time   `json:"timestamp"`
	ID        string      `json:"id,omitempty"`
	RequestID string      `json:"requestId,omitempty"`
}

// DecodeFrame parses one wire frame. Input that is not a JSON object or
// lacks a type is rejected with types.ErrMalformedFrame.
func DecodeFrame(data []byte) (Frame, error) {
	var f Frame
	if err := json.Unmarshal(data, &f); err != nil {
		return Frame{}, fmt.Errorf("%w: %v", types.ErrMalformedFrame, err)
	}
	if f.Type == "" {
		return Frame{}, fmt.Errorf("%w: missing frame type", types.ErrMalformedFrame)
	}
	return f, nil
}

// EncodeFrame renders f for the wire, stamping the timestamp if unset.
func EncodeFrame(f Frame) ([]byte, error) {
	if f.Timestamp.IsZero() {
		f.Timestamp = time.Now()
	}
	return json.Marshal(f)
}

// ConsoleEventKind classifies a ConsoleEvent for client-side rendering.
type ConsoleEventKind string

const (
	KindSystem  ConsoleEventKind = "system"
	KindInfo    ConsoleEventKind = "info"
	KindSuccess ConsoleEventKind = "success"
	KindError   ConsoleEventKind = "error"
)

// ConsoleEvent is the payload of a "message" frame.
type ConsoleEvent struct {
	ID        string           `json:"id"`
	Timestamp time.Time        `json:"timestamp"`
	Kind      ConsoleEventKind `json:"kind"`
	Message   string           `json:"message"`
	Results   interface{}      `json:"results,omitempty"`
}

// WorkflowOutputEvent is the payload of a "workflow_output" frame, emitted
// once per completed node during workflow execution.
type WorkflowOutputEvent struct {
	ID        string           `json:"id"`
	Timestamp time.Time        `json:"timestamp"`
	Kind      ConsoleEventKind `json:"kind"`
	Node      string           `json:"node"`
	Details   interface{}      `json:"details"`
}

// RunWorkflowRequest is the payload of a client→runtime "run_workflow" frame.
type RunWorkflowRequest struct {
	WorkflowID string `json:"workflowId"`
}

// WorkflowJSONReply is the payload of a runtime→client "workflow_json" frame.
type WorkflowJSONReply struct {
	WorkflowID string          `json:"workflowId"`
	Workflow   *types.Workflow `json:"workflow"`
}

// EventSink receives frames emitted by runtimes. Implementations MUST NOT
// block the caller for longer than it takes to hand the frame off -
// emission is always best-effort with respect to the producer's progress.
type EventSink interface {
	Emit(ctx context.Context, frame Frame)
}

// NoOpSink discards every frame. Useful as a zero-value default.
type NoOpSink struct{}

// Emit implements EventSink.
func (NoOpSink) Emit(ctx context.Context, frame Frame) {}

// EmitConsole is a convenience wrapper that builds and emits a "message"
// frame carrying a ConsoleEvent.
func EmitConsole(ctx context.Context, sink EventSink, id string, kind ConsoleEventKind, message string, results interface{}) {
	if sink == nil {
		return
	}
	now := time.Now()
	sink.Emit(ctx, Frame{
		Type:      FrameMessage,
		Timestamp: now,
		ID:        id,
		Data: ConsoleEvent{
			ID:        id,
			Timestamp: now,
			Kind:      kind,
			Message:   message,
			Results:   results,
		},
	})
}

// EmitWorkflowOutput is a convenience wrapper that builds and emits a
// "workflow_output" frame for a single completed node.
func EmitWorkflowOutput(ctx context.Context, sink EventSink, id string, node string, details interface{}) {
	if sink == nil {
		return
	}
	now := time.Now()
	sink.Emit(ctx, Frame{
		Type:      FrameWorkflowOut,
		Timestamp: now,
		ID:        id,
		Data: WorkflowOutputEvent{
			ID:        id,
			Timestamp: now,
			Kind:      KindInfo,
			Node:      node,
			Details:   details,
		},
	})
}
