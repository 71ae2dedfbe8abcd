// Command demo-workspace runs one workspace through the full execution
// stack: task-graph orchestration, LLM-classified dispatch, the agent
// refine loop and the workflow runtime, with telemetry and structured
// logging wired the way a host process would wire them.
//
// With no arguments it runs a built-in demo workspace (a workflow task
// feeding an agent task). Pass a path to a workspace JSON file to run that
// instead. API keys come from OPENAI_API_KEY / ANTHROPIC_API_KEY.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"

	"github.com/yesoreyeram/agentweave/pkg/agent"
	"github.com/yesoreyeram/agentweave/pkg/config"
	"github.com/yesoreyeram/agentweave/pkg/dispatcher"
	"github.com/yesoreyeram/agentweave/pkg/httpclient"
	"github.com/yesoreyeram/agentweave/pkg/llm"
	"github.com/yesoreyeram/agentweave/pkg/logging"
	"github.com/yesoreyeram/agentweave/pkg/nodes"
	"github.com/yesoreyeram/agentweave/pkg/observer"
	"github.com/yesoreyeram/agentweave/pkg/orchestrator"
	"github.com/yesoreyeram/agentweave/pkg/protocol"
	"github.com/yesoreyeram/agentweave/pkg/telemetry"
	"github.com/yesoreyeram/agentweave/pkg/types"
	"github.com/yesoreyeram/agentweave/pkg/workflow"
)

func main() {
	logLevel := flag.String("log-level", "info", "minimum log level (debug, info, warn, error)")
	transcriptDir := flag.String("transcript-dir", "Output", "directory for execution transcripts")
	flag.Parse()

	logger := logging.New(logging.Config{Level: *logLevel, Pretty: true})

	ws, err := loadWorkspace(flag.Arg(0))
	if err != nil {
		logger.WithError(err).Error("loading workspace")
		os.Exit(1)
	}

	ctx := context.Background()

	telemetryProvider, err := telemetry.NewProvider(ctx, telemetry.DefaultConfig())
	if err != nil {
		logger.WithError(err).Error("initializing telemetry")
		os.Exit(1)
	}
	defer telemetryProvider.Shutdown(ctx)

	observers := observer.NewManager(
		telemetry.NewObserver(telemetryProvider),
		observer.NewLoggingObserver(logger),
	)

	cfg := config.Development()
	factory := llm.NewFactory(llm.Credentials{
		AnthropicAPIKey: os.Getenv("ANTHROPIC_API_KEY"),
		OpenAIAPIKey:    os.Getenv("OPENAI_API_KEY"),
	}, cfg.DefaultLLMProvider, cfg.DefaultLLMModel)

	httpClients := httpclient.NewRegistry()
	builder := httpclient.NewBuilder(*cfg)
	defaultClient, err := builder.Build(&httpclient.ClientConfig{
		Name:            "default",
		Timeout:         cfg.HTTPTimeout,
		MaxRedirects:    cfg.MaxHTTPRedirects,
		MaxResponseSize: cfg.MaxResponseSize,
		FollowRedirects: true,
	})
	if err != nil {
		logger.WithError(err).Error("building default http client")
		os.Exit(1)
	}
	if err := httpClients.Register("default", defaultClient); err != nil {
		logger.WithError(err).Error("registering default http client")
		os.Exit(1)
	}

	registry := workflow.NewRegistry()
	nodes.Register(registry, &nodes.Deps{
		LLM:           factory,
		HTTPClients:   httpClients,
		ResponseCache: httpclient.NewResponseCache(),
		Config:        cfg,
	})

	sink := protocol.NewConsoleSink(logger)
	wfRuntime := workflow.NewRuntime(registry, sink).WithObservers(observers)

	agentDeps := &agent.Deps{
		LLM:       factory,
		Config:    cfg,
		Sink:      sink,
		Observers: observers,
		Logger:    logger,
	}
	wfProvider := &orchestrator.WorkspaceWorkflowProvider{Workspace: ws}

	o := &orchestrator.Orchestrator{
		Workspace:     ws,
		Agent:         agent.NewToolRuntime(agentDeps, wfProvider, wfRuntime),
		Workflow:      wfRuntime,
		Dispatcher:    &dispatcher.Dispatcher{LLM: factory, Logger: logger, LowConfidenceGate: "confidence >= 0.5"},
		Sink:          sink,
		Observers:     observers,
		Logger:        logger,
		TranscriptDir: *transcriptDir,
	}

	execCtx, cancel := context.WithTimeout(ctx, cfg.MaxExecutionTime)
	defer cancel()

	result, err := o.Execute(execCtx)
	if err != nil {
		logger.WithError(err).Error("workspace execution failed")
		os.Exit(1)
	}

	fmt.Println("=================================================")
	fmt.Printf("Workspace %q finished (execution %s)\n", ws.Name, result.ExecutionID)
	fmt.Println("=================================================")
	for _, layer := range result.Layers {
		for _, taskID := range layer {
			fmt.Printf("  %s: %s\n", taskID, result.Outputs[taskID])
		}
	}
	fmt.Printf("\nFinal result: %s\n", result.FinalResult)
	if result.TranscriptPath != "" {
		fmt.Printf("Transcript: %s\n", result.TranscriptPath)
	}
}

func loadWorkspace(path string) (*types.Workspace, error) {
	if path == "" {
		return demoWorkspace(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	var ws types.Workspace
	if err := json.Unmarshal(data, &ws); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	return &ws, nil
}

// demoWorkspace is a two-task graph: a workflow task summarizes a scraped
// page, and a specific-agent task turns the summary into a short report.
func demoWorkspace() *types.Workspace {
	return &types.Workspace{
		ID:         "ws-demo",
		Name:       "demo",
		DefaultLLM: types.LLMChoice{Provider: "openai", Model: "gpt-4o-mini"},
		Agents: []types.Agent{
			{
				ID:        "a-writer",
				Name:      "Report Writer",
				Role:      "technical writer",
				Objective: "turn raw research notes into a crisp report",
				Background: "You have spent years editing engineering design documents " +
					"and know how to keep a summary short without losing substance.",
				Capabilities: "summarization, structuring, plain-language rewriting",
			},
		},
		Workflows: []types.Workflow{
			{
				ID:   "wf-research",
				Name: "research",
				Nodes: []types.Node{
					{
						ID:       "n-input",
						NodeType: workflow.NodeTypeWorkflowInput,
						Title:    "Input",
						Sockets: []types.NodeSocket{
							{ID: "input", Direction: types.DirectionInput, DataType: types.DataTypeString},
							{ID: "n-input-out", Direction: types.DirectionOutput, DataType: types.DataTypeString},
						},
					},
					{
						ID:       "n-summarize",
						NodeType: workflow.NodeTypeLLMChat,
						Title:    "Summarize",
						Sockets: []types.NodeSocket{
							{ID: "prompt", Direction: types.DirectionInput, DataType: types.DataTypeString},
							{ID: "n-summarize-out", Direction: types.DirectionOutput, DataType: types.DataTypeString},
						},
						Config: []types.ConfigurationParameter{
							{Name: "systemPrompt", ValueSource: types.ValueSourceDefault,
								DefaultValue: "Summarize the given text in three sentences."},
						},
					},
				},
				Connections: []types.Connection{
					{FromSocketID: "n-input-out", ToSocketID: "prompt"},
				},
			},
		},
		Tasks: []types.Task{
			{
				ID:          "t-research",
				Title:       "Research",
				Description: "Summarize the provided material",
				Type:        types.TaskTypeWorkflow,
				ExecutorID:  "wf-research",
				Sockets: []types.TaskSocket{
					{ID: "t-research-out", Direction: types.DirectionOutput},
				},
			},
			{
				ID:             "t-report",
				Title:          "Write report",
				Description:    "Write a short report from the research summary",
				ExpectedOutput: "A report of at most five paragraphs with a one-line conclusion.",
				Type:           types.TaskTypeSpecificAgent,
				ExecutorID:     "a-writer",
				Sockets: []types.TaskSocket{
					{ID: "t-report-in", Direction: types.DirectionInput},
				},
			},
		},
		Connections: []types.TaskConnection{
			{FromSocketID: "t-research-out", ToSocketID: "t-report-in"},
		},
	}
}
