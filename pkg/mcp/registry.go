package mcp

import (
	"context"
	"fmt"
	"sync"
)

// ServerSpec names the transport for one MCP server a workflow or agent
// may connect to.
type ServerSpec struct {
	Name    string
	Command string   // stdio transport when set
	Args    []string
	Env     []string
	URL     string // streamable-HTTP/SSE transport when set, instead of Command
}

// Registry owns one Client per server name for the lifetime of a single
// execution. Every Dial call is idempotent: a second request for the same
// server name returns the already-connected Client. Close releases every
// connection the registry opened, on every exit path (success, node
// failure, or context cancellation).
type Registry struct {
	mu      sync.Mutex
	clients map[string]Client
}

// NewRegistry returns an empty per-run Registry.
func NewRegistry() *Registry {
	return &Registry{clients: make(map[string]Client)}
}

// Dial connects to spec.Name if not already connected, and returns its
// Client.
func (r *Registry) Dial(ctx context.Context, spec ServerSpec) (Client, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if c, ok := r.clients[spec.Name]; ok {
		return c, nil
	}

	c, err := Dial(ctx, spec)
	if err != nil {
		return nil, err
	}

	r.clients[spec.Name] = c
	return c, nil
}

// Dial connects to spec using whichever transport it names (stdio when
// Command is set, streamable-HTTP/SSE when URL is set), independent of any
// Registry. MCP nodes that open, use and close their own connection per
// Process call use this directly instead of sharing a Registry.
func Dial(ctx context.Context, spec ServerSpec) (Client, error) {
	switch {
	case spec.URL != "":
		return DialHTTP(ctx, spec.URL)
	case spec.Command != "":
		return DialStdio(ctx, spec.Command, spec.Args, spec.Env)
	default:
		return nil, fmt.Errorf("%w: %q", ErrNoTransport, spec.Name)
	}
}

// Get returns an already-dialed client by server name.
func (r *Registry) Get(name string) (Client, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.clients[name]
	return c, ok
}

// Close releases every connection the registry opened. Safe to call
// multiple times and from a deferred statement regardless of how the
// enclosing execution exited.
func (r *Registry) Close() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	var firstErr error
	for name, c := range r.clients {
		if err := c.Close(); err != nil && firstErr == nil {
			firstErr = fmt.Errorf("mcp: closing %q: %w", name, err)
		}
	}
	r.clients = make(map[string]Client)
	return firstErr
}
