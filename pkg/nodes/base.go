package nodes

import (
	"fmt"

	"github.com/yesoreyeram/agentweave/pkg/types"
)

// baseNode gives every concrete node its Declared() implementation and a
// handful of typed config-parameter accessors. Embed it rather than
// re-declaring types.Node bookkeeping per node type.
type baseNode struct {
	declared types.Node
}

func (b *baseNode) Declared() *types.Node { return &b.declared }

func (b *baseNode) configString(name, def string) string {
	v, ok := b.declared.GetConfigParameter(name)
	if !ok {
		return def
	}
	s, ok := v.(string)
	if !ok || s == "" {
		return def
	}
	return s
}

func (b *baseNode) configStringRequired(name string) (string, error) {
	v, ok := b.declared.GetConfigParameter(name)
	if !ok {
		return "", types.ErrMissingRequiredField(name)
	}
	s, ok := v.(string)
	if !ok || s == "" {
		return "", types.ErrMissingRequiredField(name)
	}
	return s, nil
}

func (b *baseNode) configInt(name string, def int) int {
	v, ok := b.declared.GetConfigParameter(name)
	if !ok {
		return def
	}
	switch n := v.(type) {
	case int:
		return n
	case int64:
		return int(n)
	case float64:
		return int(n)
	default:
		return def
	}
}

// soleInputSocket returns the first declared input socket id, for node
// types that take one input. It errors only when the node declares no input
// socket; extra input sockets are not rejected.
func soleInputSocket(n types.Node) (types.SocketID, error) {
	for _, s := range n.Sockets {
		if s.Direction == types.DirectionInput {
			return s.ID, nil
		}
	}
	return "", fmt.Errorf("node %s (%s): no declared input socket", n.ID, n.NodeType)
}

// firstString returns the value wired to socket as a string, and false when
// the socket is absent or its value is not a string.
func firstString(in map[types.SocketID]interface{}, socket types.SocketID) (string, bool) {
	v, ok := in[socket]
	if !ok {
		return "", false
	}
	s, ok := v.(string)
	return s, ok
}
