// Package types provides shared type definitions for the orchestration runtime.
// All core data structures used across packages are defined here to avoid
// circular dependencies between the task-graph, workflow-graph, agent and
// dispatcher packages.
package types

import (
	"context"
)

// ============================================================================
// Context Keys
// ============================================================================

// contextKey is used for context keys to avoid collisions
type contextKey string

const (
	// ContextKeyExecutionID is the context key for the unique execution ID
	ContextKeyExecutionID contextKey = "execution_id"

	// ContextKeyWorkspaceID is the context key for the workspace ID
	ContextKeyWorkspaceID contextKey = "workspace_id"

	// ContextKeyTaskID is the context key for the currently executing task ID
	ContextKeyTaskID contextKey = "task_id"
)

// GetExecutionID extracts the execution ID from context.
// Returns empty string if not found in context.
func GetExecutionID(ctx context.Context) string {
	if id, ok := ctx.Value(ContextKeyExecutionID).(string); ok {
		return id
	}
	return ""
}

// GetWorkspaceID extracts the workspace ID from context.
// Returns empty string if not found in context.
func GetWorkspaceID(ctx context.Context) string {
	if id, ok := ctx.Value(ContextKeyWorkspaceID).(string); ok {
		return id
	}
	return ""
}

// ============================================================================
// Direction / Socket primitives
// ============================================================================

// Direction is the role a socket plays on its owning task or node.
type Direction string

const (
	DirectionInput  Direction = "input"
	DirectionOutput Direction = "output"
)

// SocketID is an opaque, caller-assigned identifier for a task or node
// socket. Ids only need to be unique within their owning graph (workspace
// for task sockets, workflow for node sockets); this runtime never
// computes or assumes any particular id scheme and treats them as plain
// comparable strings.
type SocketID string

// NodeDataType is the declared type carried by a node socket.
type NodeDataType string

const (
	DataTypeString    NodeDataType = "string"
	DataTypeNumber    NodeDataType = "number"
	DataTypeBoolean   NodeDataType = "boolean"
	DataTypeJSON      NodeDataType = "json"
	DataTypeEmbedding NodeDataType = "embedding"
	DataTypeURL       NodeDataType = "url"
	DataTypeUnknown   NodeDataType = "unknown"
)

// ============================================================================
// Workspace / Task graph
// ============================================================================

// LLMChoice selects a concrete LLM backend and model.
type LLMChoice struct {
	Provider string `json:"provider"`
	Model    string `json:"model"`
}

// Workspace is the root execution request: a task graph plus the agents and
// workflows its tasks may dispatch to.
type Workspace struct {
	ID                string           `json:"id"`
	Name              string           `json:"name"`
	DefaultLLM        LLMChoice        `json:"default_llm"`
	DefaultCredential string           `json:"default_credential,omitempty"`
	Agents            []Agent          `json:"agents"`
	Tasks             []Task           `json:"tasks"`
	Connections       []TaskConnection `json:"connections"`
	Workflows         []Workflow       `json:"workflows"`
}

// TaskType selects how a task is executed.
type TaskType string

const (
	TaskTypeAgentic       TaskType = "agentic"
	TaskTypeSpecificAgent TaskType = "specific-agent"
	TaskTypeWorkflow      TaskType = "workflow"
)

// TaskSocket is a named input or output port on a task.
type TaskSocket struct {
	ID        SocketID  `json:"id"`
	Direction Direction `json:"direction"`
}

// Task is a unit of work in the workspace's task graph.
type Task struct {
	ID             string       `json:"id"`
	Title          string       `json:"title"`
	Description    string       `json:"description"`
	ExpectedOutput string       `json:"expected_output,omitempty"`
	Type           TaskType     `json:"type"`
	ExecutorID     string       `json:"executor_id,omitempty"`
	Sockets        []TaskSocket `json:"sockets"`
}

// TaskConnection is a directed edge between two task sockets.
type TaskConnection struct {
	FromSocketID SocketID `json:"from_socket_id"`
	ToSocketID   SocketID `json:"to_socket_id"`
}

// ============================================================================
// Agent / Tool
// ============================================================================

// ToolKind tags the variant of a Tool.
type ToolKind string

const (
	ToolKindFunction ToolKind = "function"
	ToolKindWorkflow ToolKind = "workflow"
	ToolKindMCP      ToolKind = "mcp"
	ToolKindBasic    ToolKind = "basic"
)

// Tool describes a capability an agent may invoke during its refine loop.
// Kind selects which of the variant-specific fields apply.
type Tool struct {
	Kind        ToolKind               `json:"kind"`
	Name        string                 `json:"name"`
	Description string                 `json:"description"`
	Parameters  map[string]interface{} `json:"parameters,omitempty"`

	// WorkflowID is set when Kind == ToolKindWorkflow.
	WorkflowID string `json:"workflow_id,omitempty"`

	// MCP transport selection, set when Kind == ToolKindMCP. Exactly one
	// of (MCPCommand) or (MCPURL) is populated: stdio vs streamable-HTTP.
	MCPServerName string   `json:"mcp_server_name,omitempty"`
	MCPCommand    string   `json:"mcp_command,omitempty"`
	MCPArgs       []string `json:"mcp_args,omitempty"`
	MCPURL        string   `json:"mcp_url,omitempty"`
}

// Agent is an LLM-driven identity that can be bound to a task.
type Agent struct {
	ID           string     `json:"id"`
	Name         string     `json:"name"`
	Role         string     `json:"role"`
	Objective    string     `json:"objective"`
	Background   string     `json:"background"`
	Capabilities string     `json:"capabilities"`
	Tools        []Tool     `json:"tools,omitempty"`
	LLM          *LLMChoice `json:"llm,omitempty"`
	Credential   *string    `json:"credential,omitempty"`
}

// ============================================================================
// Workflow graph
// ============================================================================

// Position is the node's canvas coordinates. The runtime never reads it;
// it is carried through only because client UIs round-trip it.
type Position struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// NodeSocket is a named, typed port on a workflow node.
type NodeSocket struct {
	ID        SocketID     `json:"id"`
	Direction Direction    `json:"direction"`
	DataType  NodeDataType `json:"data_type"`
}

// ValueSource records where a ConfigurationParameter's effective value
// ultimately comes from.
type ValueSource string

const (
	ValueSourceUserInput    ValueSource = "UserInput"
	ValueSourceEnv          ValueSource = "Env"
	ValueSourceDefault      ValueSource = "Default"
	ValueSourceRuntimeVault ValueSource = "RuntimeVault"
)

// ConfigurationParameter is a single named, typed configuration knob on a
// node. Effective value is ParamValue if non-nil, else DefaultValue.
type ConfigurationParameter struct {
	Name         string        `json:"name"`
	Type         string        `json:"type"`
	DefaultValue interface{}   `json:"default_value,omitempty"`
	ValueSource  ValueSource   `json:"value_source"`
	ParamValue   interface{}   `json:"param_value,omitempty"`
	SourceList   []interface{} `json:"source_list,omitempty"`
}

// EffectiveValue returns ParamValue if set, otherwise DefaultValue.
func (c ConfigurationParameter) EffectiveValue() interface{} {
	if c.ParamValue != nil {
		return c.ParamValue
	}
	return c.DefaultValue
}

// Node is a vertex in a workflow graph. NodeType is a registry key
// resolved by the node registry at hydration time; it decides which
// concrete NodeExecutor processes this node.
type Node struct {
	ID       string                   `json:"id"`
	NodeType string                   `json:"node_type"`
	Title    string                   `json:"title"`
	Position Position                 `json:"position"`
	Sockets  []NodeSocket             `json:"sockets"`
	Config   []ConfigurationParameter `json:"config"`
	// NodeValue is an opaque literal the node may consult directly
	// (e.g. a constant injected by WorkflowInput's caller). Most nodes
	// read their configuration instead.
	NodeValue interface{} `json:"node_value,omitempty"`
}

// GetConfigParameter returns a configuration parameter's effective value
// by name, and whether it was found.
func (n *Node) GetConfigParameter(name string) (interface{}, bool) {
	for i := range n.Config {
		if n.Config[i].Name == name {
			return n.Config[i].EffectiveValue(), true
		}
	}
	return nil, false
}

// SetConfigParameter overwrites (or appends) a configuration parameter's
// ParamValue by name.
func (n *Node) SetConfigParameter(name string, value interface{}) {
	for i := range n.Config {
		if n.Config[i].Name == name {
			n.Config[i].ParamValue = value
			return
		}
	}
	n.Config = append(n.Config, ConfigurationParameter{
		Name:        name,
		ValueSource: ValueSourceUserInput,
		ParamValue:  value,
	})
}

// Connection is a directed edge between two node sockets within one workflow.
type Connection struct {
	FromSocketID SocketID `json:"from_socket_id"`
	ToSocketID   SocketID `json:"to_socket_id"`
}

// Workflow is a DAG of nodes executed by the Workflow Runtime.
type Workflow struct {
	ID          string       `json:"id"`
	Name        string       `json:"name"`
	Nodes       []Node       `json:"nodes"`
	Connections []Connection `json:"connections"`
}

// ============================================================================
// Review / final-check verdicts
// ============================================================================

// ReviewStatus is the reviewer's verdict on whether an agent's output is
// ready to deliver.
type ReviewStatus string

const (
	ReviewStatusComplete      ReviewStatus = "complete"
	ReviewStatusNeedsRevision ReviewStatus = "needs_revision"
	ReviewStatusInadequate    ReviewStatus = "inadequate"
)

// ReviewFeedback is the structured critique attached to a ReviewVerdict.
type ReviewFeedback struct {
	Strengths   []string `json:"strengths,omitempty"`
	Weaknesses  []string `json:"weaknesses,omitempty"`
	Missing     []string `json:"missing,omitempty"`
	Suggestions []string `json:"suggestions,omitempty"`
}

// ReviewVerdict is the reviewer stage's structured judgement of an agent's
// generated output.
type ReviewVerdict struct {
	Valid        bool           `json:"valid"`
	Complete     bool           `json:"complete"`
	Accuracy     int            `json:"accuracy"`
	Clarity      int            `json:"clarity"`
	OverallScore int            `json:"overall_score"`
	Feedback     ReviewFeedback `json:"feedback"`
	Status       ReviewStatus   `json:"status"`
}

// NextAction is the final-check stage's disposition of a revised output.
type NextAction string

const (
	NextActionDeliver NextAction = "deliver"
	NextActionRevise  NextAction = "revise"
)

// FinalCheckVerdict is the tool-augmented agent's last-chance gate before
// looping again on reviewer feedback.
type FinalCheckVerdict struct {
	Accept     bool       `json:"accept"`
	Reason     string     `json:"reason"`
	NextAction NextAction `json:"next_action"`
}

// ============================================================================
// Classifier output (Executor Dispatcher)
// ============================================================================

// ExecutorKind is what kind of executor the dispatcher chose for an
// agentic task.
type ExecutorKind string

const (
	ExecutorKindAgent    ExecutorKind = "agent"
	ExecutorKindWorkflow ExecutorKind = "workflow"
	ExecutorKindMCP      ExecutorKind = "mcp"
)

// ClassifierChoice is the LLM classifier's structured reply when the
// Executor Dispatcher must choose among candidate executors for an
// agentic task.
type ClassifierChoice struct {
	Type       ExecutorKind `json:"type"`
	ID         string       `json:"id"`
	Confidence float64      `json:"confidence"`
	Reasoning  string       `json:"reasoning"`
}
