package types

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// GenerateExecutionID creates a unique execution identifier used to
// correlate one Orchestrator.Execute call's logs and transcript.
func GenerateExecutionID() string {
	return uuid.NewString()
}

// StringifyForContext renders a predecessor task's output as a string
// suitable for splicing into a downstream task's prompt context: strings
// pass through unchanged, everything else is JSON-encoded.
func StringifyForContext(value interface{}) string {
	if value == nil {
		return ""
	}
	if s, ok := value.(string); ok {
		return s
	}
	b, err := json.Marshal(value)
	if err != nil {
		return fmt.Sprintf("%v", value)
	}
	return string(b)
}

// JoinContext concatenates a task's predecessor outputs, in the order
// given, into the comma-space separated context string described for task
// context assembly.
func JoinContext(values []interface{}) string {
	parts := make([]string, 0, len(values))
	for _, v := range values {
		parts = append(parts, StringifyForContext(v))
	}
	return strings.Join(parts, ", ")
}
