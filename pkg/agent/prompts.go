package agent

import (
	"fmt"
	"strings"

	"github.com/yesoreyeram/agentweave/pkg/types"
)

// buildGenerationPrompt builds the generate-step prompt.
// iter 0 carries the agent's identity, the task and its context; iter > 0
// additionally carries the previous output and the previous reviewer
// feedback with an instruction to address every weakness while keeping
// every strength.
func buildGenerationPrompt(ag *types.Agent, task *types.Task, taskContext string, iter int, lastOutput string, lastFeedback *types.ReviewFeedback) string {
	var b strings.Builder

	fmt.Fprintf(&b, "You are %s, acting as %s.\n", ag.Name, ag.Role)
	if ag.Objective != "" {
		fmt.Fprintf(&b, "Objective: %s\n", ag.Objective)
	}
	if ag.Background != "" {
		fmt.Fprintf(&b, "Background: %s\n", ag.Background)
	}
	if ag.Capabilities != "" {
		fmt.Fprintf(&b, "Capabilities: %s\n", ag.Capabilities)
	}

	fmt.Fprintf(&b, "\nTask: %s\n", task.Title)
	if task.Description != "" {
		fmt.Fprintf(&b, "Description: %s\n", task.Description)
	}
	if taskContext != "" {
		fmt.Fprintf(&b, "\nContext from prior tasks:\n%s\n", taskContext)
	}
	if task.ExpectedOutput != "" {
		fmt.Fprintf(&b, "\nExpected output format: %s\n", task.ExpectedOutput)
	}

	if iter > 0 {
		fmt.Fprintf(&b, "\nYour previous attempt:\n%s\n", lastOutput)
		if lastFeedback != nil {
			b.WriteString("\nReviewer feedback on that attempt:\n")
			writeFeedbackList(&b, "Strengths", lastFeedback.Strengths)
			writeFeedbackList(&b, "Weaknesses", lastFeedback.Weaknesses)
			writeFeedbackList(&b, "Missing", lastFeedback.Missing)
			writeFeedbackList(&b, "Suggestions", lastFeedback.Suggestions)
		}
		b.WriteString("\nAddress every weakness, keep every strength, and meet the expected output format.\n")
	}

	return b.String()
}

func writeFeedbackList(b *strings.Builder, label string, items []string) {
	if len(items) == 0 {
		return
	}
	fmt.Fprintf(b, "%s:\n", label)
	for _, item := range items {
		fmt.Fprintf(b, "  - %s\n", item)
	}
}

// buildReviewPrompt builds the reviewer-step prompt: a
// strict request for a JSON ReviewVerdict.
func buildReviewPrompt(task *types.Task, output string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Review the following output against this task.\n\nTask: %s\n", task.Title)
	if task.Description != "" {
		fmt.Fprintf(&b, "Description: %s\n", task.Description)
	}
	if task.ExpectedOutput != "" {
		fmt.Fprintf(&b, "Expected output format: %s\n", task.ExpectedOutput)
	}
	fmt.Fprintf(&b, "\nOutput to review:\n%s\n", output)
	b.WriteString("\nReply with ONLY a JSON object of this exact shape, no prose:\n")
	b.WriteString(`{"valid": bool, "complete": bool, "accuracy": 0-100, "clarity": 0-100, "overall_score": 0-100, ` +
		`"feedback": {"strengths": [string], "weaknesses": [string], "missing": [string], "suggestions": [string]}, ` +
		`"status": "complete" | "needs_revision" | "inadequate"}`)
	return b.String()
}

// buildFinalCheckPrompt builds the final-check prompt: one last
// chance to accept a needs_revision/inadequate output before looping
// again on reviewer feedback.
func buildFinalCheckPrompt(task *types.Task, output string, verdict types.ReviewVerdict) string {
	var b strings.Builder
	fmt.Fprintf(&b, "A reviewer scored the following output for task %q as %q (overall score %d/100).\n",
		task.Title, verdict.Status, verdict.OverallScore)
	fmt.Fprintf(&b, "\nOutput:\n%s\n", output)
	b.WriteString("\nReviewer feedback:\n")
	writeFeedbackList(&b, "Weaknesses", verdict.Feedback.Weaknesses)
	writeFeedbackList(&b, "Missing", verdict.Feedback.Missing)
	b.WriteString("\nDecide whether this output is good enough to deliver as-is despite the reviewer's concerns, " +
		"or whether it genuinely needs another revision pass. Reply with ONLY a JSON object of this exact shape, no prose:\n")
	b.WriteString(`{"accept": bool, "reason": string, "next_action": "deliver" | "revise"}`)
	return b.String()
}
