package orchestrator

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/yesoreyeram/agentweave/pkg/dispatcher"
	"github.com/yesoreyeram/agentweave/pkg/types"
	"github.com/yesoreyeram/agentweave/pkg/workflow"
)

// fakeAgentRuntime replays a fixed output (or error) per agent id, and
// records the context it was invoked with for assertions.
type fakeAgentRuntime struct {
	outputs map[string]string
	errs    map[string]error
	seen    map[string]string
}

func (f *fakeAgentRuntime) Run(ctx context.Context, ag *types.Agent, task *types.Task, taskContext string, fallback types.LLMChoice) (string, error) {
	if f.seen == nil {
		f.seen = make(map[string]string)
	}
	f.seen[task.ID] = taskContext
	if err, ok := f.errs[ag.ID]; ok {
		return "", err
	}
	return f.outputs[ag.ID], nil
}

type fakeWorkflowRuntime struct {
	outputs map[string]string
}

func (f *fakeWorkflowRuntime) Execute(ctx context.Context, wf *types.Workflow, rootInput string) (*workflow.Result, error) {
	return &workflow.Result{FinalResult: f.outputs[wf.ID]}, nil
}

func taskSockets(prefix string, inputs, outputs int) []types.TaskSocket {
	var sockets []types.TaskSocket
	for i := 0; i < inputs; i++ {
		sockets = append(sockets, types.TaskSocket{ID: types.SocketID(prefix + "-in-" + string(rune('a'+i))), Direction: types.DirectionInput})
	}
	for i := 0; i < outputs; i++ {
		sockets = append(sockets, types.TaskSocket{ID: types.SocketID(prefix + "-out"), Direction: types.DirectionOutput})
	}
	return sockets
}

// TestExecute_TaskGraphContextAssembly: t1->t2, t1->t3, {t2,t3}->t4. t4's context must be the comma-space join of t2 and
// t3's outputs in that order.
func TestExecute_TaskGraphContextAssembly(t *testing.T) {
	ws := &types.Workspace{
		ID:   "ws1",
		Name: "example-3",
		Agents: []types.Agent{
			{ID: "a1"}, {ID: "a2"}, {ID: "a3"}, {ID: "a4"},
		},
		Tasks: []types.Task{
			{ID: "t1", Type: types.TaskTypeSpecificAgent, ExecutorID: "a1", Sockets: taskSockets("t1", 0, 1)},
			{ID: "t2", Type: types.TaskTypeSpecificAgent, ExecutorID: "a2", Sockets: taskSockets("t2", 1, 1)},
			{ID: "t3", Type: types.TaskTypeSpecificAgent, ExecutorID: "a3", Sockets: taskSockets("t3", 1, 1)},
			{ID: "t4", Type: types.TaskTypeSpecificAgent, ExecutorID: "a4", Sockets: taskSockets("t4", 2, 1)},
		},
		Connections: []types.TaskConnection{
			{FromSocketID: "t1-out", ToSocketID: "t2-in-a"},
			{FromSocketID: "t1-out", ToSocketID: "t3-in-a"},
			{FromSocketID: "t2-out", ToSocketID: "t4-in-a"},
			{FromSocketID: "t3-out", ToSocketID: "t4-in-b"},
		},
	}

	agentRT := &fakeAgentRuntime{outputs: map[string]string{
		"a1": "one", "a2": "two", "a3": "three", "a4": "four",
	}}
	o := &Orchestrator{
		Workspace:     ws,
		Agent:         agentRT,
		Workflow:      &fakeWorkflowRuntime{},
		Dispatcher:    &dispatcher.Dispatcher{},
		TranscriptDir: t.TempDir(),
	}

	result, err := o.Execute(context.Background())
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}

	wantLayers := [][]string{{"t1"}, {"t2", "t3"}, {"t4"}}
	if len(result.Layers) != len(wantLayers) {
		t.Fatalf("got %d layers, want %d: %v", len(result.Layers), len(wantLayers), result.Layers)
	}

	if got := agentRT.seen["t4"]; got != "two, three" {
		t.Fatalf("t4 context = %q, want %q", got, "two, three")
	}
	if result.FinalResult != "four" {
		t.Fatalf("FinalResult = %q, want %q", result.FinalResult, "four")
	}
	if result.TranscriptPath == "" {
		t.Fatal("expected a transcript path to be recorded")
	}
	data, err := os.ReadFile(result.TranscriptPath)
	if err != nil {
		t.Fatalf("reading transcript: %v", err)
	}
	if !strings.Contains(string(data), "example-3") || !strings.Contains(string(data), "four") {
		t.Fatalf("transcript missing expected content: %s", data)
	}
}

// TestExecute_FailedTaskDoesNotHaltOrchestrator: a failing predecessor's error
// string becomes its successor's context, and execution proceeds.
func TestExecute_FailedTaskDoesNotHaltOrchestrator(t *testing.T) {
	ws := &types.Workspace{
		ID:   "ws2",
		Name: "diamond-failure",
		Agents: []types.Agent{
			{ID: "a1"}, {ID: "b1"}, {ID: "c1"}, {ID: "d1"},
		},
		Tasks: []types.Task{
			{ID: "A", Type: types.TaskTypeSpecificAgent, ExecutorID: "a1", Sockets: taskSockets("A", 0, 1)},
			{ID: "B", Type: types.TaskTypeSpecificAgent, ExecutorID: "b1", Sockets: taskSockets("B", 1, 1)},
			{ID: "C", Type: types.TaskTypeSpecificAgent, ExecutorID: "c1", Sockets: taskSockets("C", 1, 1)},
			{ID: "D", Type: types.TaskTypeSpecificAgent, ExecutorID: "d1", Sockets: taskSockets("D", 2, 1)},
		},
		Connections: []types.TaskConnection{
			{FromSocketID: "A-out", ToSocketID: "B-in-a"},
			{FromSocketID: "A-out", ToSocketID: "C-in-a"},
			{FromSocketID: "B-out", ToSocketID: "D-in-a"},
			{FromSocketID: "C-out", ToSocketID: "D-in-b"},
		},
	}

	agentRT := &fakeAgentRuntime{
		outputs: map[string]string{"a1": "start", "c1": "Cout", "d1": "done"},
		errs:    map[string]error{"b1": errors.New("boom")},
	}
	o := &Orchestrator{
		Workspace:     ws,
		Agent:         agentRT,
		Workflow:      &fakeWorkflowRuntime{},
		Dispatcher:    &dispatcher.Dispatcher{},
		TranscriptDir: t.TempDir(),
	}

	result, err := o.Execute(context.Background())
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if result.Outputs["B"] != "Error: boom" {
		t.Fatalf("B output = %q, want an error string", result.Outputs["B"])
	}
	if got := agentRT.seen["D"]; got != "Error: boom, Cout" {
		t.Fatalf("D context = %q, want %q", got, "Error: boom, Cout")
	}
	if result.Outputs["D"] != "done" {
		t.Fatalf("D output = %q, want %q (D itself must still run)", result.Outputs["D"], "done")
	}
}

func TestExecute_WorkflowTask(t *testing.T) {
	ws := &types.Workspace{
		ID:        "ws3",
		Name:      "wf-task",
		Workflows: []types.Workflow{{ID: "wf1"}},
		Tasks: []types.Task{
			{ID: "t1", Type: types.TaskTypeWorkflow, ExecutorID: "wf1", Sockets: taskSockets("t1", 0, 1)},
		},
	}
	o := &Orchestrator{
		Workspace:     ws,
		Agent:         &fakeAgentRuntime{},
		Workflow:      &fakeWorkflowRuntime{outputs: map[string]string{"wf1": "scraped"}},
		Dispatcher:    &dispatcher.Dispatcher{},
		TranscriptDir: t.TempDir(),
	}
	result, err := o.Execute(context.Background())
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if result.Outputs["t1"] != "scraped" {
		t.Fatalf("t1 output = %q, want %q", result.Outputs["t1"], "scraped")
	}
}

func TestSanitizeForFilename(t *testing.T) {
	got := sanitizeForFilename("../../etc/passwd")
	if strings.Contains(got, "..") || strings.ContainsAny(got, "/\\") {
		t.Fatalf("sanitizeForFilename(%q) = %q still contains path separators", "../../etc/passwd", got)
	}
}

func TestWriteTranscript_CreatesOutputDir(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "Output")
	ws := &types.Workspace{Name: "test-ws"}
	path, err := writeTranscript(dir, ws, []string{"t1"}, map[string]string{"t1": "hi"})
	if err != nil {
		t.Fatalf("writeTranscript: %v", err)
	}
	if _, err := os.Stat(path); err != nil {
		t.Fatalf("transcript file not written: %v", err)
	}
}
