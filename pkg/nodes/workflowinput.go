package nodes

import (
	"context"

	"github.com/yesoreyeram/agentweave/pkg/types"
	"github.com/yesoreyeram/agentweave/pkg/workflow"
)

// workflowInputNode republishes the runtime's root input string. The
// Runtime injects it at workflow.RootInputSocketID regardless of what this
// node's Process does, so Process only needs to read it back out.
type workflowInputNode struct{ baseNode }

func newWorkflowInputNode(declared types.Node) (workflow.Node, error) {
	return &workflowInputNode{baseNode{declared: declared}}, nil
}

func (n *workflowInputNode) Process(_ context.Context, in workflow.Inputs) (workflow.Outputs, error) {
	return in[workflow.RootInputSocketID], nil
}
