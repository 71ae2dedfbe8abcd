package mcp

import "errors"

// ErrNoTransport is returned when a ServerSpec specifies neither a stdio
// command nor an HTTP url.
var ErrNoTransport = errors.New("mcp: server spec has no transport configured")
