// Package workflow implements the Workflow Runtime: node hydration
// from a registry, routing-table construction, layer-parallel execution
// over the node DAG, and best-effort workflow_output event emission.
package workflow

import (
	"context"

	"github.com/yesoreyeram/agentweave/pkg/types"
)

// RootInputSocketID is the conventional socket key a WorkflowInput node
// publishes the runtime's root-input string under.
const RootInputSocketID = "input"

// Inputs maps an input socket id to the value resolved for it by the
// routing tables. A socket absent from the map means the input was not
// wired and the node must tolerate its absence.
type Inputs map[types.SocketID]interface{}

// Outputs is either a single value (single-output node) or a
// map[types.SocketID]interface{} keyed by output socket id (multi-output
// node). Downstream consumers disambiguate per step 2.
type Outputs = interface{}

// Node is the runtime contract every node type variant implements:
// polymorphic over process(context) plus configuration-parameter access.
// GetConfigParameter/SetConfigParameter are inherited from the embedded
// declared types.Node rather than re-declared per implementation.
type Node interface {
	Declared() *types.Node
	Process(ctx context.Context, in Inputs) (Outputs, error)
}

// Factory constructs a runtime Node from its declared definition. The
// factory receives the whole declaration (sockets, configuration parameters
// and nodeValue); the runtime applies nothing on top of the Node it returns.
type Factory func(declared types.Node) (Node, error)
