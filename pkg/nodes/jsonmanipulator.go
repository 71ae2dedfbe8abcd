package nodes

import (
	"context"
	"fmt"
	"reflect"

	"github.com/yesoreyeram/agentweave/pkg/expression"
	"github.com/yesoreyeram/agentweave/pkg/types"
	"github.com/yesoreyeram/agentweave/pkg/workflow"
)

// jsonManipulatorNode runs one of extract/filter/transform/count over its
// input value using an expr-lang expression.
type jsonManipulatorNode struct {
	baseNode
	in types.SocketID
}

func newJSONManipulatorNode(declared types.Node) (workflow.Node, error) {
	in, err := soleInputSocket(declared)
	if err != nil {
		return nil, err
	}
	return &jsonManipulatorNode{baseNode: baseNode{declared: declared}, in: in}, nil
}

func (n *jsonManipulatorNode) Process(_ context.Context, in workflow.Inputs) (workflow.Outputs, error) {
	mode := n.configString("mode", "extract")
	expr, err := n.configStringRequired("expression")
	if err != nil {
		return nil, fmt.Errorf("json-manipulator: %w", err)
	}
	input := in[n.in]

	switch mode {
	case "count":
		return countElements(input), nil

	case "filter":
		items, ok := toSlice(input)
		if !ok {
			return nil, fmt.Errorf("json-manipulator: filter mode requires an array input, got %T", input)
		}
		out := make([]interface{}, 0, len(items))
		for _, item := range items {
			keep, err := expression.Evaluate(expr, item, nil)
			if err != nil {
				return nil, fmt.Errorf("json-manipulator: evaluating filter expression: %w", err)
			}
			if keep {
				out = append(out, item)
			}
		}
		return out, nil

	case "transform":
		if items, ok := toSlice(input); ok {
			out := make([]interface{}, 0, len(items))
			for _, item := range items {
				v, err := expression.EvaluateExpression(expr, item, nil)
				if err != nil {
					return nil, fmt.Errorf("json-manipulator: evaluating transform expression: %w", err)
				}
				out = append(out, v)
			}
			return out, nil
		}
		v, err := expression.EvaluateExpression(expr, input, nil)
		if err != nil {
			return nil, fmt.Errorf("json-manipulator: evaluating transform expression: %w", err)
		}
		return v, nil

	case "extract":
		v, err := expression.EvaluateExpression(expr, input, nil)
		if err != nil {
			return nil, fmt.Errorf("json-manipulator: evaluating extract expression: %w", err)
		}
		return v, nil

	default:
		return nil, fmt.Errorf("json-manipulator: unsupported mode %q (use extract, filter, transform or count)", mode)
	}
}

// toSlice reports whether v is an array-shaped value and returns it as
// []interface{}, accepting both the generic JSON-decode shape and a
// directly constructed Go slice.
func toSlice(v interface{}) ([]interface{}, bool) {
	switch s := v.(type) {
	case []interface{}:
		return s, true
	default:
		rv := reflect.ValueOf(v)
		if rv.Kind() != reflect.Slice && rv.Kind() != reflect.Array {
			return nil, false
		}
		out := make([]interface{}, rv.Len())
		for i := range out {
			out[i] = rv.Index(i).Interface()
		}
		return out, true
	}
}

// countElements returns the element count of an array-shaped value, the
// key count of an object-shaped value, or 1 for a scalar/nil.
func countElements(v interface{}) int {
	switch val := v.(type) {
	case []interface{}:
		return len(val)
	case map[string]interface{}:
		return len(val)
	case nil:
		return 0
	default:
		return 1
	}
}
