package dispatcher

import (
	"github.com/yesoreyeram/agentweave/pkg/mcp"
	"github.com/yesoreyeram/agentweave/pkg/types"
)

// AgentCandidate is one agent the classifier may route an agentic task to.
type AgentCandidate struct {
	ID      string
	Profile string
}

// WorkflowCandidate is one workflow the classifier may route an agentic
// task to.
type WorkflowCandidate struct {
	ID      string
	Profile string
}

// MCPCandidate is a single named remote tool the classifier may route an
// agentic task to directly, bypassing both the agent and workflow
// runtimes. The data model has no first-class "workspace MCP executor"
// list; callers that want "mcp" classifier candidates assemble them
// out-of-band (e.g. from a fixed operational server roster) and pass them
// alongside CandidatesFromWorkspace's agent/workflow candidates.
type MCPCandidate struct {
	ID       string
	Profile  string
	Server   mcp.ServerSpec
	ToolName string
}

// Candidates is the full set of executors the classifier may choose among
// for one agentic task.
type Candidates struct {
	Agents    []AgentCandidate
	Workflows []WorkflowCandidate
	MCP       []MCPCandidate
}

// Empty reports whether there is nothing at all for the classifier to
// choose from.
func (c Candidates) Empty() bool {
	return len(c.Agents) == 0 && len(c.Workflows) == 0 && len(c.MCP) == 0
}

// HasID reports whether a candidate of the given kind with the given id
// exists, satisfying step 3 ("verify id exists among the candidates
// of the chosen type").
func (c Candidates) HasID(kind types.ExecutorKind, id string) bool {
	switch kind {
	case types.ExecutorKindAgent:
		for _, a := range c.Agents {
			if a.ID == id {
				return true
			}
		}
	case types.ExecutorKindWorkflow:
		for _, w := range c.Workflows {
			if w.ID == id {
				return true
			}
		}
	case types.ExecutorKindMCP:
		for _, m := range c.MCP {
			if m.ID == id {
				return true
			}
		}
	}
	return false
}

// CandidatesFromWorkspace builds the agent and workflow candidate lists
// from a workspace's declared agents and workflows. MCP candidates, which
// have no workspace-level declaration, are left empty; pass them in
// separately via Candidates.MCP when the deployment has a fixed server
// roster the classifier should be allowed to pick directly.
func CandidatesFromWorkspace(ws *types.Workspace) Candidates {
	cands := Candidates{
		Agents:    make([]AgentCandidate, 0, len(ws.Agents)),
		Workflows: make([]WorkflowCandidate, 0, len(ws.Workflows)),
	}
	for _, a := range ws.Agents {
		cands.Agents = append(cands.Agents, AgentCandidate{
			ID:      a.ID,
			Profile: agentProfile(a),
		})
	}
	for _, w := range ws.Workflows {
		cands.Workflows = append(cands.Workflows, WorkflowCandidate{
			ID:      w.ID,
			Profile: workflowProfile(w),
		})
	}
	return cands
}

func agentProfile(a types.Agent) string {
	profile := a.Role
	if a.Objective != "" {
		if profile != "" {
			profile += ": "
		}
		profile += a.Objective
	}
	if profile == "" {
		profile = a.Name
	}
	return profile
}

func workflowProfile(w types.Workflow) string {
	if w.Name != "" {
		return w.Name
	}
	return w.ID
}
