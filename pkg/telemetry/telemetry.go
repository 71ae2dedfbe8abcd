package telemetry

import (
	"context"
	"fmt"
	"time"

	promclient "github.com/prometheus/client_golang/prometheus"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/prometheus"
	"go.opentelemetry.io/otel/metric"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/resource"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"
	"go.opentelemetry.io/otel/trace"
)

const serviceName = "agentweave"

// Config holds telemetry configuration.
type Config struct {
	ServiceName    string
	ServiceVersion string
	Environment    string
	EnableTracing  bool
	EnableMetrics  bool
}

// DefaultConfig enables both metrics and tracing under the module's default
// service identity.
func DefaultConfig() Config {
	return Config{
		ServiceName:    serviceName,
		ServiceVersion: "0.1.0",
		Environment:    "development",
		EnableTracing:  true,
		EnableMetrics:  true,
	}
}

// Provider owns the OpenTelemetry meter/tracer setup and the instruments
// recorded across a workspace execution: task throughput and latency, node
// throughput and latency, agent refine-loop iterations, and tool calls.
// Metrics are exported in Prometheus format via the otel prometheus reader.
type Provider struct {
	meterProvider  *sdkmetric.MeterProvider
	tracerProvider trace.TracerProvider
	meter          metric.Meter
	tracer         trace.Tracer
	registry       *promclient.Registry

	taskExecutions  metric.Int64Counter
	taskFailures    metric.Int64Counter
	taskDuration    metric.Float64Histogram
	nodeExecutions  metric.Int64Counter
	nodeFailures    metric.Int64Counter
	nodeDuration    metric.Float64Histogram
	agentIterations metric.Int64Counter
	toolCalls       metric.Int64Counter
	toolDuration    metric.Float64Histogram
}

// NewProvider initializes OpenTelemetry with cfg and returns a Provider
// ready to record. With metrics enabled, the Prometheus exporter is
// registered as the global meter provider's reader.
func NewProvider(ctx context.Context, cfg Config) (*Provider, error) {
	p := &Provider{}

	res, err := resource.New(ctx,
		resource.WithAttributes(
			semconv.ServiceName(cfg.ServiceName),
			semconv.ServiceVersion(cfg.ServiceVersion),
			attribute.String("environment", cfg.Environment),
		),
	)
	if err != nil {
		return nil, fmt.Errorf("telemetry: creating resource: %w", err)
	}

	if cfg.EnableMetrics {
		if err := p.initMetrics(res); err != nil {
			return nil, err
		}
	}
	if cfg.EnableTracing {
		p.tracerProvider = otel.GetTracerProvider()
		p.tracer = p.tracerProvider.Tracer(serviceName)
	}
	return p, nil
}

func (p *Provider) initMetrics(res *resource.Resource) error {
	// Each Provider gets its own prometheus registry so two providers in
	// one process never fight over collector registration.
	p.registry = promclient.NewRegistry()
	exporter, err := prometheus.New(prometheus.WithRegisterer(p.registry))
	if err != nil {
		return fmt.Errorf("telemetry: creating prometheus exporter: %w", err)
	}

	p.meterProvider = sdkmetric.NewMeterProvider(
		sdkmetric.WithResource(res),
		sdkmetric.WithReader(exporter),
	)
	otel.SetMeterProvider(p.meterProvider)
	p.meter = p.meterProvider.Meter(serviceName)

	return p.createInstruments()
}

func (p *Provider) createInstruments() error {
	var err error

	if p.taskExecutions, err = p.meter.Int64Counter("task.executions.total",
		metric.WithDescription("Total task executions")); err != nil {
		return err
	}
	if p.taskFailures, err = p.meter.Int64Counter("task.executions.failure.total",
		metric.WithDescription("Total failed task executions")); err != nil {
		return err
	}
	if p.taskDuration, err = p.meter.Float64Histogram("task.execution.duration",
		metric.WithDescription("Task execution duration"), metric.WithUnit("ms")); err != nil {
		return err
	}
	if p.nodeExecutions, err = p.meter.Int64Counter("node.executions.total",
		metric.WithDescription("Total workflow node executions")); err != nil {
		return err
	}
	if p.nodeFailures, err = p.meter.Int64Counter("node.executions.failure.total",
		metric.WithDescription("Total failed workflow node executions")); err != nil {
		return err
	}
	if p.nodeDuration, err = p.meter.Float64Histogram("node.execution.duration",
		metric.WithDescription("Workflow node execution duration"), metric.WithUnit("ms")); err != nil {
		return err
	}
	if p.agentIterations, err = p.meter.Int64Counter("agent.iterations.total",
		metric.WithDescription("Total agent refine-loop iterations")); err != nil {
		return err
	}
	if p.toolCalls, err = p.meter.Int64Counter("tool.calls.total",
		metric.WithDescription("Total tool invocations inside agent tool-call loops")); err != nil {
		return err
	}
	if p.toolDuration, err = p.meter.Float64Histogram("tool.call.duration",
		metric.WithDescription("Tool invocation duration"), metric.WithUnit("ms")); err != nil {
		return err
	}
	return nil
}

// Tracer returns the tracer for creating spans; nil when tracing is off.
func (p *Provider) Tracer() trace.Tracer { return p.tracer }

// PrometheusRegistry returns the registry the metrics exporter writes to,
// for serving with promhttp; nil when metrics are off.
func (p *Provider) PrometheusRegistry() *promclient.Registry { return p.registry }

// RecordTaskExecution records one finished task.
func (p *Provider) RecordTaskExecution(ctx context.Context, taskID string, duration time.Duration, success bool) {
	if p.meter == nil {
		return
	}
	attrs := metric.WithAttributes(attribute.String("task.id", taskID))
	p.taskExecutions.Add(ctx, 1, attrs)
	p.taskDuration.Record(ctx, float64(duration.Milliseconds()), attrs)
	if !success {
		p.taskFailures.Add(ctx, 1, attrs)
	}
}

// RecordNodeExecution records one finished workflow node.
func (p *Provider) RecordNodeExecution(ctx context.Context, nodeID, nodeType string, duration time.Duration, success bool) {
	if p.meter == nil {
		return
	}
	attrs := metric.WithAttributes(
		attribute.String("node.id", nodeID),
		attribute.String("node.type", nodeType),
	)
	p.nodeExecutions.Add(ctx, 1, attrs)
	p.nodeDuration.Record(ctx, float64(duration.Milliseconds()), attrs)
	if !success {
		p.nodeFailures.Add(ctx, 1, attrs)
	}
}

// RecordAgentIteration records one completed refine-loop iteration with the
// reviewer's status for that round.
func (p *Provider) RecordAgentIteration(ctx context.Context, agentID, status string) {
	if p.meter == nil {
		return
	}
	p.agentIterations.Add(ctx, 1, metric.WithAttributes(
		attribute.String("agent.id", agentID),
		attribute.String("review.status", status),
	))
}

// RecordToolCall records one tool invocation inside an agent's tool loop.
func (p *Provider) RecordToolCall(ctx context.Context, toolName string, duration time.Duration, success bool) {
	if p.meter == nil {
		return
	}
	attrs := metric.WithAttributes(
		attribute.String("tool.name", toolName),
		attribute.Bool("tool.success", success),
	)
	p.toolCalls.Add(ctx, 1, attrs)
	p.toolDuration.Record(ctx, float64(duration.Milliseconds()), attrs)
}

// Shutdown flushes and stops the meter provider.
func (p *Provider) Shutdown(ctx context.Context) error {
	if p.meterProvider == nil {
		return nil
	}
	if err := p.meterProvider.Shutdown(ctx); err != nil {
		return fmt.Errorf("telemetry: shutting down meter provider: %w", err)
	}
	return nil
}
