package workflow

// Node type registry keys for the built-in node variants. Concrete
// factories for these live in pkg/nodes; the constants are declared here
// so the runtime can special-case WorkflowInput without importing
// pkg/nodes (which itself imports this package).
const (
	NodeTypeLLMChat         = "llm-chat"
	NodeTypeTranscription   = "transcription"
	NodeTypeVision          = "vision"
	NodeTypeAudio           = "audio"
	NodeTypeImageInput      = "image-input"
	NodeTypeWebScraper      = "web-scraper"
	NodeTypeMCPDiscovery    = "mcp-discovery"
	NodeTypeMCPToolCall     = "mcp-tool-call"
	NodeTypeMCPGetPrompt    = "mcp-get-prompt"
	NodeTypeJSONManipulator = "json-manipulator"
	NodeTypeWorkflowInput   = "workflow-input"
)
