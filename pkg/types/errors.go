package types

import (
	"errors"
	"fmt"
)

// Sentinel errors shared across package boundaries: a producer in one
// package wraps these with fmt.Errorf("...: %w", ...) and a consumer in
// another checks them with errors.Is. Errors private to a single package
// live in that package's errors.go instead.
var (
	// Structural errors
	ErrSocketNotResolved = errors.New("socket id does not resolve to any vertex")
	ErrUnknownNodeType   = errors.New("unknown node type")

	// Tool-loop errors
	ErrMaxToolIterationsExceeded = errors.New("maximum tool-call iterations exceeded")
	ErrToolNotFound              = errors.New("tool not found")

	// Agent errors
	ErrReviewParseError     = errors.New("could not parse reviewer verdict")
	ErrFinalCheckParseError = errors.New("could not parse final-check verdict")

	// MCP errors
	ErrMcpConnectFailed = errors.New("mcp client failed to connect")
	ErrMcpCallFailed    = errors.New("mcp tool call failed")

	// Client-protocol errors
	ErrRequestTimeout = errors.New("request timed out awaiting reply")
	ErrMalformedFrame = errors.New("malformed protocol frame")
)

// ErrMissingRequiredField reports that a required field was empty or unset.
func ErrMissingRequiredField(fieldName string) error {
	return fmt.Errorf("missing required field: %s", fieldName)
}

// NewErrUnknownNodeType wraps ErrUnknownNodeType with the offending type name.
func NewErrUnknownNodeType(nodeType string) error {
	return fmt.Errorf("%w: %s", ErrUnknownNodeType, nodeType)
}

// NewErrSocketNotResolved wraps ErrSocketNotResolved with the offending socket id.
func NewErrSocketNotResolved(id SocketID) error {
	return fmt.Errorf("%w: %s", ErrSocketNotResolved, id)
}

// NewErrToolNotFound wraps ErrToolNotFound with the requested tool name.
func NewErrToolNotFound(name string) error {
	return fmt.Errorf("%w: %s", ErrToolNotFound, name)
}
