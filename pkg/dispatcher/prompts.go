package dispatcher

import (
	"fmt"
	"strings"

	"github.com/yesoreyeram/agentweave/pkg/types"
)

// buildClassifierPrompt builds the classifier prompt: every candidate
// executor named with its id and a short profile, the task, and a strict
// JSON reply shape.
func buildClassifierPrompt(task *types.Task, cands Candidates) string {
	var b strings.Builder
	b.WriteString("Choose the best executor for the following task from the candidates listed below.\n\n")
	fmt.Fprintf(&b, "Task: %s\n", task.Title)
	if task.Description != "" {
		fmt.Fprintf(&b, "Description: %s\n", task.Description)
	}
	if task.ExpectedOutput != "" {
		fmt.Fprintf(&b, "Expected output: %s\n", task.ExpectedOutput)
	}

	b.WriteString("\nCandidate agents:\n")
	if len(cands.Agents) == 0 {
		b.WriteString("  (none)\n")
	}
	for _, a := range cands.Agents {
		fmt.Fprintf(&b, "  - id=%q profile=%q\n", a.ID, a.Profile)
	}

	b.WriteString("\nCandidate workflows:\n")
	if len(cands.Workflows) == 0 {
		b.WriteString("  (none)\n")
	}
	for _, w := range cands.Workflows {
		fmt.Fprintf(&b, "  - id=%q profile=%q\n", w.ID, w.Profile)
	}

	b.WriteString("\nCandidate MCP tools:\n")
	if len(cands.MCP) == 0 {
		b.WriteString("  (none)\n")
	}
	for _, m := range cands.MCP {
		fmt.Fprintf(&b, "  - id=%q profile=%q\n", m.ID, m.Profile)
	}

	b.WriteString("\nReply with ONLY a JSON object of this exact shape, no prose:\n")
	b.WriteString(`{"type": "agent" | "workflow" | "mcp", "id": string, "confidence": 0.0-1.0, "reasoning": string}`)
	return b.String()
}
