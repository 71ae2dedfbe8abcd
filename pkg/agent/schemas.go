package agent

import "github.com/yesoreyeram/agentweave/pkg/jsonverdict"

// reviewSchema pins the shape of a ReviewVerdict reply before the
// balanced-brace extraction fallback runs, so a superficially-valid but
// wrongly-shaped JSON blob (e.g. {"ok": true}) is rejected rather than
// silently accepted with zero-valued fields.
var reviewSchema = jsonverdict.MustCompileSchema(`{
	"type": "object",
	"properties": {
		"valid": {"type": "boolean"},
		"complete": {"type": "boolean"},
		"accuracy": {"type": "number"},
		"clarity": {"type": "number"},
		"overall_score": {"type": "number"},
		"feedback": {
			"type": "object",
			"properties": {
				"strengths": {"type": "array", "items": {"type": "string"}},
				"weaknesses": {"type": "array", "items": {"type": "string"}},
				"missing": {"type": "array", "items": {"type": "string"}},
				"suggestions": {"type": "array", "items": {"type": "string"}}
			}
		},
		"status": {"type": "string", "enum": ["complete", "needs_revision", "inadequate"]}
	},
	"required": ["status"]
}`)

// finalCheckSchema pins the shape of a FinalCheckVerdict reply.
var finalCheckSchema = jsonverdict.MustCompileSchema(`{
	"type": "object",
	"properties": {
		"accept": {"type": "boolean"},
		"reason": {"type": "string"},
		"next_action": {"type": "string", "enum": ["deliver", "revise"]}
	},
	"required": ["accept", "next_action"]
}`)
