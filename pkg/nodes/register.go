package nodes

import "github.com/yesoreyeram/agentweave/pkg/workflow"

// Register installs every built-in node type into reg, closing each
// factory over deps. Call once per workflow.Registry at composition-root
// time, before any workspace is hydrated.
func Register(reg *workflow.Registry, deps *Deps) {
	reg.MustRegister(workflow.NodeTypeLLMChat, newLLMChatNode(deps))
	reg.MustRegister(workflow.NodeTypeTranscription, newMediaNode(deps, mediaKindTranscription))
	reg.MustRegister(workflow.NodeTypeVision, newMediaNode(deps, mediaKindVision))
	reg.MustRegister(workflow.NodeTypeAudio, newMediaNode(deps, mediaKindAudio))
	reg.MustRegister(workflow.NodeTypeImageInput, newImageInputNode(deps))
	reg.MustRegister(workflow.NodeTypeWebScraper, newWebScraperNode(deps))
	reg.MustRegister(workflow.NodeTypeMCPDiscovery, newMCPDiscoveryNode(deps))
	reg.MustRegister(workflow.NodeTypeMCPToolCall, newMCPToolCallNode(deps))
	reg.MustRegister(workflow.NodeTypeMCPGetPrompt, newMCPGetPromptNode(deps))
	reg.MustRegister(workflow.NodeTypeJSONManipulator, newJSONManipulatorNode)
	reg.MustRegister(workflow.NodeTypeWorkflowInput, newWorkflowInputNode)
}
