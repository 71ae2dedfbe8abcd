package nodes

import (
	"github.com/yesoreyeram/agentweave/pkg/config"
	"github.com/yesoreyeram/agentweave/pkg/httpclient"
	"github.com/yesoreyeram/agentweave/pkg/llm"
	"github.com/yesoreyeram/agentweave/pkg/mcp"
)

// Deps bundles the shared collaborators node factories close over. One Deps
// is built per execution and threaded through Register; individual node
// instances never reach past it for a vendor SDK or transport directly.
type Deps struct {
	LLM llm.Resolver

	// HTTPClients resolves a named, pre-configured client for the
	// WebScraper node.
	HTTPClients *httpclient.Registry

	// ResponseCache dedupes WebScraper fetches within one execution.
	ResponseCache *httpclient.ResponseCache

	// MCPServers names the transport for each MCP server a workflow's
	// mcp-discovery/mcp-tool-call/mcp-get-prompt nodes may address by
	// name, via their "server" config parameter. Unlike the agent
	// runtime's mcp.Registry, these nodes dial, use and close their own
	// Client per Process call rather than sharing one.
	MCPServers map[string]mcp.ServerSpec

	Config *config.Config
}
