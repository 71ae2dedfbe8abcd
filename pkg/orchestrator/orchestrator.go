package orchestrator

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/yesoreyeram/agentweave/pkg/dispatcher"
	"github.com/yesoreyeram/agentweave/pkg/graph"
	"github.com/yesoreyeram/agentweave/pkg/logging"
	"github.com/yesoreyeram/agentweave/pkg/mcp"
	"github.com/yesoreyeram/agentweave/pkg/observer"
	"github.com/yesoreyeram/agentweave/pkg/protocol"
	"github.com/yesoreyeram/agentweave/pkg/textnorm"
	"github.com/yesoreyeram/agentweave/pkg/types"
)

// maxTaskContextRunes bounds the comma-space-joined predecessor context
// handed to a task's executor, so a long fan-in chain can't
// grow a downstream agent/workflow prompt without limit.
const maxTaskContextRunes = 50000

// Orchestrator drives one workspace's task graph to completion.
type Orchestrator struct {
	Workspace *types.Workspace

	Agent      AgentRuntime
	Workflow   WorkflowRuntime
	Dispatcher Dispatch

	// MCPCandidates extends the classifier's candidate set with any
	// MCP-typed executors the deployment wants agentic tasks to be able
	// to pick directly.
	MCPCandidates []dispatcher.MCPCandidate

	Sink protocol.EventSink

	// Observers, when set, receives workspace and task lifecycle events;
	// telemetry and operational logging hang off it without the client
	// protocol sink knowing about either.
	Observers *observer.Manager

	Logger        *logging.Logger
	TranscriptDir string
}

// Result is the outcome of one Orchestrator.Execute call.
type Result struct {
	ExecutionID    string
	Layers         [][]string
	Outputs        map[string]string
	FinalResult    string
	TranscriptPath string
}

// Execute layers ws's task graph, then runs each task in flattened layer
// order: assembling predecessor context, dispatching an executor,
// invoking it, and emitting the dispatch/start/success/failure event
// sequence. A failing task never halts the orchestrator; its output is
// recorded as an error string and downstream tasks run with that string as
// context.
func (o *Orchestrator) Execute(ctx context.Context) (*Result, error) {
	ws := o.Workspace

	execID := types.GenerateExecutionID()
	o.Logger = o.logger().WithExecutionID(execID)
	ctx = context.WithValue(ctx, types.ContextKeyExecutionID, execID)
	ctx = context.WithValue(ctx, types.ContextKeyWorkspaceID, ws.ID)

	socketToTask := make(map[types.SocketID]string)
	for i := range ws.Tasks {
		for _, s := range ws.Tasks[i].Sockets {
			socketToTask[s.ID] = ws.Tasks[i].ID
		}
	}

	vertices := make([]string, 0, len(ws.Tasks))
	taskByID := make(map[string]*types.Task, len(ws.Tasks))
	for i := range ws.Tasks {
		vertices = append(vertices, ws.Tasks[i].ID)
		taskByID[ws.Tasks[i].ID] = &ws.Tasks[i]
	}

	edges, predsOf, err := o.buildEdges(ws, socketToTask)
	if err != nil {
		return nil, err
	}

	g := graph.New(vertices, edges)
	layers, err := g.Layers()
	if err != nil {
		return nil, err
	}

	cands := dispatcher.CandidatesFromWorkspace(ws)
	cands.MCP = append(cands.MCP, o.MCPCandidates...)

	mcpReg := mcp.NewRegistry()
	defer mcpReg.Close()

	result := &Result{ExecutionID: execID, Layers: layers, Outputs: make(map[string]string, len(ws.Tasks))}
	executionOrder := make([]string, 0, len(ws.Tasks))

	protocol.EmitConsole(ctx, o.sink(), ws.ID, protocol.KindSystem,
		fmt.Sprintf("workspace %s: starting execution", ws.Name), nil)
	o.Observers.Notify(ctx, observer.Event{
		Type: observer.EventWorkspaceStart, ExecutionID: execID, WorkspaceID: ws.ID,
	})

	for _, layer := range layers {
		for _, taskID := range layer {
			task := taskByID[taskID]
			executionOrder = append(executionOrder, taskID)
			output := o.runTask(ctx, task, predsOf[taskID], result.Outputs, cands, mcpReg)
			result.Outputs[taskID] = output
		}
	}

	result.FinalResult = o.finalResult(layers, result.Outputs)
	protocol.EmitConsole(ctx, o.sink(), ws.ID, protocol.KindSuccess,
		fmt.Sprintf("workspace %s: execution complete", ws.Name), result.FinalResult)
	o.Observers.Notify(ctx, observer.Event{
		Type: observer.EventWorkspaceEnd, ExecutionID: execID, WorkspaceID: ws.ID,
		Result: result.FinalResult,
	})

	path, err := writeTranscript(o.transcriptDir(), ws, executionOrder, result.Outputs)
	if err != nil {
		o.logger().WithError(err).Warnf("orchestrator: failed to persist transcript for workspace %s", ws.Name)
	} else {
		result.TranscriptPath = path
	}

	return result, nil
}

// buildEdges resolves every TaskConnection to a task-level graph edge, and
// records each task's direct predecessors in first-declared-connection
// order. The layering contract leaves predecessor ordering unspecified,
// so the orchestrator supplies its own.
func (o *Orchestrator) buildEdges(ws *types.Workspace, socketToTask map[types.SocketID]string) ([]graph.Edge, map[string][]string, error) {
	edges := make([]graph.Edge, 0, len(ws.Connections))
	predsOf := make(map[string][]string)
	seen := make(map[string]map[string]bool)

	for _, c := range ws.Connections {
		fromTask, ok := socketToTask[c.FromSocketID]
		if !ok {
			return nil, nil, types.NewErrSocketNotResolved(c.FromSocketID)
		}
		toTask, ok := socketToTask[c.ToSocketID]
		if !ok {
			return nil, nil, types.NewErrSocketNotResolved(c.ToSocketID)
		}
		edges = append(edges, graph.Edge{From: fromTask, To: toTask})

		if seen[toTask] == nil {
			seen[toTask] = make(map[string]bool)
		}
		if !seen[toTask][fromTask] {
			seen[toTask][fromTask] = true
			predsOf[toTask] = append(predsOf[toTask], fromTask)
		}
	}
	return edges, predsOf, nil
}

// runTask assembles task's context, dispatches and invokes its executor,
// and emits the full dispatch/start/success-or-failure event sequence. It
// never returns an error: failures are folded into the returned output
// string.
func (o *Orchestrator) runTask(ctx context.Context, task *types.Task, preds []string, outputs map[string]string, cands dispatcher.Candidates, mcpReg *mcp.Registry) string {
	values := make([]interface{}, 0, len(preds))
	for _, p := range preds {
		values = append(values, outputs[p])
	}
	taskContext := textnorm.Truncate(types.JoinContext(values), maxTaskContextRunes)

	fallback := o.Workspace.DefaultLLM
	kind, execID, err := o.Dispatcher.Dispatch(ctx, task, fallback, cands)
	if task.Type == types.TaskTypeAgentic {
		if err != nil {
			protocol.EmitConsole(ctx, o.sink(), task.ID, protocol.KindError,
				fmt.Sprintf("task %s: dispatch failed: %v", task.ID, err), nil)
		} else {
			protocol.EmitConsole(ctx, o.sink(), task.ID, protocol.KindInfo,
				fmt.Sprintf("task %s: dispatched to %s %q", task.ID, textnorm.Title(string(kind)), execID), nil)
		}
	}
	if err != nil {
		protocol.EmitConsole(ctx, o.sink(), task.ID, protocol.KindError,
			fmt.Sprintf("task %s: failed", task.ID), nil)
		return fmt.Sprintf("Error: %v", err)
	}

	protocol.EmitConsole(ctx, o.sink(), task.ID, protocol.KindInfo,
		fmt.Sprintf("task %s: starting", task.ID), nil)
	o.Observers.Notify(ctx, observer.Event{
		Type: observer.EventTaskStart, ExecutionID: types.GetExecutionID(ctx),
		WorkspaceID: o.Workspace.ID, TaskID: task.ID,
	})
	started := time.Now()

	output, err := o.invoke(ctx, kind, execID, task, taskContext, fallback, mcpReg)
	if err != nil {
		protocol.EmitConsole(ctx, o.sink(), task.ID, protocol.KindError,
			fmt.Sprintf("task %s: failed: %v", task.ID, err), nil)
		o.Observers.Notify(ctx, observer.Event{
			Type: observer.EventTaskFailure, ExecutionID: types.GetExecutionID(ctx),
			WorkspaceID: o.Workspace.ID, TaskID: task.ID,
			ElapsedTime: time.Since(started), Error: err,
		})
		return fmt.Sprintf("Error: %v", err)
	}

	protocol.EmitConsole(ctx, o.sink(), task.ID, protocol.KindSuccess,
		fmt.Sprintf("task %s: completed", task.ID), output)
	o.Observers.Notify(ctx, observer.Event{
		Type: observer.EventTaskSuccess, ExecutionID: types.GetExecutionID(ctx),
		WorkspaceID: o.Workspace.ID, TaskID: task.ID,
		ElapsedTime: time.Since(started),
	})
	return output
}

// invoke runs the chosen executor and returns its output as a string.
func (o *Orchestrator) invoke(ctx context.Context, kind types.ExecutorKind, execID string, task *types.Task, taskContext string, fallback types.LLMChoice, mcpReg *mcp.Registry) (string, error) {
	switch kind {
	case types.ExecutorKindAgent:
		ag, ok := o.findAgent(execID)
		if !ok {
			return "", fmt.Errorf("%w: %s", ErrUnknownAgent, execID)
		}
		return o.Agent.Run(ctx, ag, task, taskContext, fallback)

	case types.ExecutorKindWorkflow:
		wf, ok := o.findWorkflow(execID)
		if !ok {
			return "", fmt.Errorf("%w: %s", ErrUnknownWorkflow, execID)
		}
		res, err := o.Workflow.Execute(ctx, wf, taskContext)
		if err != nil {
			return "", err
		}
		return types.StringifyForContext(res.FinalResult), nil

	case types.ExecutorKindMCP:
		for _, c := range o.MCPCandidates {
			if c.ID == execID {
				return dispatcher.InvokeMCP(ctx, mcpReg, c, taskContext)
			}
		}
		return "", fmt.Errorf("%w: %s", ErrUnknownMCPCandidate, execID)

	default:
		return "", fmt.Errorf("orchestrator: unknown executor kind %q", kind)
	}
}

func (o *Orchestrator) findAgent(id string) (*types.Agent, bool) {
	for i := range o.Workspace.Agents {
		if o.Workspace.Agents[i].ID == id {
			return &o.Workspace.Agents[i], true
		}
	}
	return nil, false
}

func (o *Orchestrator) findWorkflow(id string) (*types.Workflow, bool) {
	for i := range o.Workspace.Workflows {
		if o.Workspace.Workflows[i].ID == id {
			return &o.Workspace.Workflows[i], true
		}
	}
	return nil, false
}

// finalResult is "results[lastLayerFirstTask.id] ?? serialize(results)"
//.
func (o *Orchestrator) finalResult(layers [][]string, outputs map[string]string) string {
	if len(layers) > 0 {
		last := layers[len(layers)-1]
		if len(last) > 0 {
			if out, ok := outputs[last[0]]; ok {
				return out
			}
		}
	}
	b, err := json.Marshal(outputs)
	if err != nil {
		return fmt.Sprintf("%v", outputs)
	}
	return string(b)
}
