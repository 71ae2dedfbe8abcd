package workflow

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/yesoreyeram/agentweave/pkg/graph"
	"github.com/yesoreyeram/agentweave/pkg/observer"
	"github.com/yesoreyeram/agentweave/pkg/protocol"
	"github.com/yesoreyeram/agentweave/pkg/types"
)

// Result is the outcome of one Runtime.Execute call.
type Result struct {
	Layers         [][]string
	PerNodeResults map[string]Outputs
	// NodeErrors records, per node id, the error produced by a failed
	// Process call. A node present here has an absent entry in
	// PerNodeResults.
	NodeErrors  map[string]error
	FinalResult interface{}
}

// Runtime hydrates and executes a Workflow against a node registry.
type Runtime struct {
	registry  *Registry
	sink      protocol.EventSink
	observers *observer.Manager
}

// NewRuntime creates a Runtime backed by registry. A nil sink is replaced
// with protocol.NoOpSink.
func NewRuntime(registry *Registry, sink protocol.EventSink) *Runtime {
	if sink == nil {
		sink = protocol.NoOpSink{}
	}
	return &Runtime{registry: registry, sink: sink}
}

// WithObservers attaches an observer manager notified of node start,
// success and failure. Returns rt for chaining at composition-root time.
func (rt *Runtime) WithObservers(m *observer.Manager) *Runtime {
	rt.observers = m
	return rt
}

// hydrated pairs a runtime Node with its declaration, and marks the
// WorkflowInput node so the input assembly rule can special-case it.
type hydrated struct {
	node        Node
	declared    *types.Node
	isRootInput bool
}

// Execute runs wf to completion. rootInput is injected at every
// WorkflowInput node's RootInputSocketID input.
func (rt *Runtime) Execute(ctx context.Context, wf *types.Workflow, rootInput string) (*Result, error) {
	nodesByID := make(map[string]*hydrated, len(wf.Nodes))
	vertices := make([]string, 0, len(wf.Nodes))

	for i := range wf.Nodes {
		declared := &wf.Nodes[i]
		factory, ok := rt.registry.Lookup(declared.NodeType)
		if !ok {
			return nil, types.NewErrUnknownNodeType(declared.NodeType)
		}
		node, err := factory(*declared)
		if err != nil {
			return nil, fmt.Errorf("hydrating node %s: %w", declared.ID, err)
		}
		nodesByID[declared.ID] = &hydrated{
			node:        node,
			declared:    declared,
			isRootInput: declared.NodeType == NodeTypeWorkflowInput,
		}
		vertices = append(vertices, declared.ID)
	}

	socketToNode, inputSockets := rt.buildSocketTables(wf, nodesByID)
	edgeTo := make(map[types.SocketID]types.SocketID, len(wf.Connections))
	for _, c := range wf.Connections {
		edgeTo[c.ToSocketID] = c.FromSocketID
	}

	var edges []graph.Edge
	for _, c := range wf.Connections {
		fromNode, okFrom := socketToNode[c.FromSocketID]
		toNode, okTo := socketToNode[c.ToSocketID]
		if !okFrom {
			return nil, types.NewErrSocketNotResolved(c.FromSocketID)
		}
		if !okTo {
			return nil, types.NewErrSocketNotResolved(c.ToSocketID)
		}
		edges = append(edges, graph.Edge{From: fromNode, To: toNode})
	}

	g := graph.New(vertices, edges)
	layers, err := g.Layers()
	if err != nil {
		return nil, err
	}

	result := &Result{
		Layers:         layers,
		PerNodeResults: make(map[string]Outputs, len(vertices)),
		NodeErrors:     make(map[string]error),
	}

	var resultsMu sync.Mutex
	for _, layer := range layers {
		var wg sync.WaitGroup
		for _, nodeID := range layer {
			nodeID := nodeID
			wg.Add(1)
			go func() {
				defer wg.Done()
				h := nodesByID[nodeID]
				in := rt.assembleInputs(h, inputSockets[nodeID], edgeTo, socketToNode, result, &resultsMu, rootInput)

				rt.notify(ctx, wf, h, observer.EventNodeStart, nil)
				started := time.Now()

				out, err := h.node.Process(ctx, in)

				resultsMu.Lock()
				defer resultsMu.Unlock()
				if err != nil {
					result.NodeErrors[nodeID] = err
					protocol.EmitConsole(ctx, rt.sink, nodeID, protocol.KindError, fmt.Sprintf("node %s failed: %v", nodeID, err), nil)
					rt.notifyDone(ctx, wf, h, observer.EventNodeFailure, started, err)
					return
				}
				result.PerNodeResults[nodeID] = out
				protocol.EmitWorkflowOutput(ctx, rt.sink, nodeID, h.declared.Title, out)
				rt.notifyDone(ctx, wf, h, observer.EventNodeSuccess, started, nil)
			}()
		}
		wg.Wait()
	}

	result.FinalResult = rt.finalResult(layers, result)
	return result, nil
}

func (rt *Runtime) notify(ctx context.Context, wf *types.Workflow, h *hydrated, t observer.EventType, err error) {
	rt.observers.Notify(ctx, observer.Event{
		Type:        t,
		ExecutionID: types.GetExecutionID(ctx),
		WorkflowID:  wf.ID,
		NodeID:      h.declared.ID,
		NodeType:    h.declared.NodeType,
		Error:       err,
	})
}

func (rt *Runtime) notifyDone(ctx context.Context, wf *types.Workflow, h *hydrated, t observer.EventType, started time.Time, err error) {
	rt.observers.Notify(ctx, observer.Event{
		Type:        t,
		ExecutionID: types.GetExecutionID(ctx),
		WorkflowID:  wf.ID,
		NodeID:      h.declared.ID,
		NodeType:    h.declared.NodeType,
		ElapsedTime: time.Since(started),
		Error:       err,
	})
}

// buildSocketTables constructs socketToNode and inputSockets.
func (rt *Runtime) buildSocketTables(wf *types.Workflow, nodesByID map[string]*hydrated) (map[types.SocketID]string, map[string][]types.SocketID) {
	socketToNode := make(map[types.SocketID]string)
	inputSockets := make(map[string][]types.SocketID)
	for _, n := range wf.Nodes {
		for _, s := range n.Sockets {
			socketToNode[s.ID] = n.ID
			if s.Direction == types.DirectionInput {
				inputSockets[n.ID] = append(inputSockets[n.ID], s.ID)
			}
		}
	}
	return socketToNode, inputSockets
}

// assembleInputs implements "Per-node input assembly" for one node.
func (rt *Runtime) assembleInputs(
	h *hydrated,
	sockets []types.SocketID,
	edgeTo map[types.SocketID]types.SocketID,
	socketToNode map[types.SocketID]string,
	result *Result,
	resultsMu *sync.Mutex,
	rootInput string,
) Inputs {
	in := make(Inputs, len(sockets))
	if h.isRootInput {
		in[RootInputSocketID] = rootInput
	}
	for _, s := range sockets {
		if h.isRootInput && s == RootInputSocketID {
			continue
		}
		src, hasEdge := edgeTo[s]
		if !hasEdge {
			continue // absent; node must tolerate it
		}
		srcNode, ok := socketToNode[src]
		if !ok {
			continue
		}
		resultsMu.Lock()
		srcOut, ready := result.PerNodeResults[srcNode]
		resultsMu.Unlock()
		if !ready {
			continue // predecessor failed or has not run yet
		}
		if multi, isMulti := srcOut.(map[types.SocketID]interface{}); isMulti {
			in[s] = multi[src]
		} else {
			in[s] = srcOut
		}
	}
	return in
}

// finalResult is "the output of the first node in the last executed
// layer".
func (rt *Runtime) finalResult(layers [][]string, result *Result) interface{} {
	if len(layers) == 0 {
		return nil
	}
	last := layers[len(layers)-1]
	if len(last) == 0 {
		return nil
	}
	return result.PerNodeResults[last[0]]
}
