package telemetry

import (
	"context"
	"sync"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/yesoreyeram/agentweave/pkg/observer"
)

// Observer bridges execution events onto the telemetry Provider: task and
// node start/end pairs become spans plus duration metrics, agent iterations
// and tool calls become counters. Register it on the composition root's
// observer.Manager; it needs no other wiring.
//
// Events for one Observer instance may arrive concurrently (the manager
// fans out on goroutines), so all span/start-time bookkeeping is locked.
type Observer struct {
	provider *Provider

	mu         sync.Mutex
	spans      map[string]trace.Span
	startTimes map[string]time.Time
}

// NewObserver creates a telemetry Observer recording through provider.
func NewObserver(provider *Provider) *Observer {
	return &Observer{
		provider:   provider,
		spans:      make(map[string]trace.Span),
		startTimes: make(map[string]time.Time),
	}
}

// OnEvent implements observer.Observer.
func (o *Observer) OnEvent(ctx context.Context, event observer.Event) {
	switch event.Type {
	case observer.EventTaskStart:
		o.begin(ctx, "task."+event.TaskID, "task.execute", event.Timestamp,
			attribute.String("task.id", event.TaskID),
			attribute.String("execution.id", event.ExecutionID))

	case observer.EventTaskSuccess, observer.EventTaskFailure:
		success := event.Type == observer.EventTaskSuccess
		duration := o.end("task."+event.TaskID, event.Error)
		o.provider.RecordTaskExecution(ctx, event.TaskID, duration, success)

	case observer.EventNodeStart:
		o.begin(ctx, "node."+event.NodeID, "node.execute", event.Timestamp,
			attribute.String("node.id", event.NodeID),
			attribute.String("node.type", event.NodeType),
			attribute.String("execution.id", event.ExecutionID))

	case observer.EventNodeSuccess, observer.EventNodeFailure:
		success := event.Type == observer.EventNodeSuccess
		duration := o.end("node."+event.NodeID, event.Error)
		o.provider.RecordNodeExecution(ctx, event.NodeID, event.NodeType, duration, success)

	case observer.EventAgentIteration:
		status, _ := event.Metadata["status"].(string)
		o.provider.RecordAgentIteration(ctx, event.AgentID, status)

	case observer.EventToolCall:
		name, _ := event.Metadata["tool"].(string)
		o.provider.RecordToolCall(ctx, name, event.ElapsedTime, event.Error == nil)
	}
}

func (o *Observer) begin(ctx context.Context, key, spanName string, start time.Time, attrs ...attribute.KeyValue) {
	o.mu.Lock()
	defer o.mu.Unlock()

	o.startTimes[key] = start
	if o.provider.Tracer() == nil {
		return
	}
	_, span := o.provider.Tracer().Start(ctx, spanName, trace.WithAttributes(attrs...))
	o.spans[key] = span
}

func (o *Observer) end(key string, err error) time.Duration {
	o.mu.Lock()
	defer o.mu.Unlock()

	var duration time.Duration
	if start, ok := o.startTimes[key]; ok {
		duration = time.Since(start)
		delete(o.startTimes, key)
	}

	if span, ok := o.spans[key]; ok {
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		} else {
			span.SetStatus(codes.Ok, "")
		}
		span.End()
		delete(o.spans, key)
	}
	return duration
}
