package nodes

import "github.com/yesoreyeram/agentweave/pkg/types"

// Canonical socket ids the built-in node types expect a workflow author to
// wire. These are fixed per node type rather than left to the caller, so a
// declared workflow can address an input by name without knowing the node's
// internals.
const (
	SocketPrompt   types.SocketID = "prompt"
	SocketSystem   types.SocketID = "system"
	SocketResponse types.SocketID = "response"

	SocketMediaURL  types.SocketID = "media_url"
	SocketMediaData types.SocketID = "media_data"

	SocketImageSource types.SocketID = "image_source"
	SocketImageData   types.SocketID = "image_data"
	SocketImageInfo   types.SocketID = "image_info"

	SocketURL     types.SocketID = "url"
	SocketContent types.SocketID = "content"

	SocketToolArgs   types.SocketID = "tool_args"
	SocketToolResult types.SocketID = "tool_result"

	SocketPromptArgs types.SocketID = "prompt_args"
)
