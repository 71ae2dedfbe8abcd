package dispatcher

import "github.com/yesoreyeram/agentweave/pkg/jsonverdict"

// classifierSchema pins the shape of a ClassifierChoice reply: a
// superficially valid but wrongly-shaped blob is rejected before
// confidence clamping and candidate-id validation ever run.
var classifierSchema = jsonverdict.MustCompileSchema(`{
	"type": "object",
	"properties": {
		"type": {"type": "string", "enum": ["agent", "workflow", "mcp"]},
		"id": {"type": "string"},
		"confidence": {"type": "number"},
		"reasoning": {"type": "string"}
	},
	"required": ["type", "id", "confidence"]
}`)
