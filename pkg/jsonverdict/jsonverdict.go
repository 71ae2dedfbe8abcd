// Package jsonverdict parses the strict-JSON replies the agent runtime and
// executor dispatcher ask an LLM for (ReviewVerdict, FinalCheckVerdict,
// ClassifierChoice): validate against a fixed JSON Schema, with a fallback
// that extracts the first balanced "{...}" substring when the model wraps
// its JSON in prose. The extracted object is validated with gojsonschema
// before the strict unmarshal into the caller's struct runs.
package jsonverdict

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/xeipuuv/gojsonschema"
)

// Schema is a compiled JSON Schema checked against a candidate verdict
// before it is unmarshaled into a typed struct.
type Schema struct {
	loader gojsonschema.JSONLoader
}

// MustCompileSchema parses schemaJSON into a Schema. Panics on malformed
// schema text: schemas are fixed program constants, not user input.
func MustCompileSchema(schemaJSON string) *Schema {
	if !json.Valid([]byte(schemaJSON)) {
		panic(fmt.Sprintf("jsonverdict: invalid schema literal: %s", schemaJSON))
	}
	return &Schema{loader: gojsonschema.NewStringLoader(schemaJSON)}
}

// Validate checks candidate (a raw JSON document) against the schema.
func (s *Schema) Validate(candidate string) error {
	result, err := gojsonschema.Validate(s.loader, gojsonschema.NewStringLoader(candidate))
	if err != nil {
		return fmt.Errorf("jsonverdict: schema validation: %w", err)
	}
	if result.Valid() {
		return nil
	}
	msgs := make([]string, 0, len(result.Errors()))
	for _, e := range result.Errors() {
		msgs = append(msgs, e.String())
	}
	return fmt.Errorf("jsonverdict: %s", strings.Join(msgs, "; "))
}

// ExtractBalancedObject returns the first balanced "{...}" substring of s.
// If s already parses as a JSON object on its own, it is returned
// unchanged. This is the "Review JSON parse fallback": generators
// sometimes wrap their JSON reply in prose ("Here's my verdict: {...}").
func ExtractBalancedObject(s string) (string, bool) {
	trimmed := strings.TrimSpace(s)
	if json.Valid([]byte(trimmed)) && strings.HasPrefix(trimmed, "{") {
		return trimmed, true
	}

	start := strings.IndexByte(s, '{')
	if start < 0 {
		return "", false
	}
	depth := 0
	inString := false
	escaped := false
	for i := start; i < len(s); i++ {
		c := s[i]
		if inString {
			switch {
			case escaped:
				escaped = false
			case c == '\\':
				escaped = true
			case c == '"':
				inString = false
			}
			continue
		}
		switch c {
		case '"':
			inString = true
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return s[start : i+1], true
			}
		}
	}
	return "", false
}

// ParseWithFallback extracts a JSON object from raw per
// ExtractBalancedObject, optionally validates it against schema, and
// unmarshals it into out. Returns an error (wrap with the caller's own
// sentinel, e.g. ErrReviewParseError) when no JSON object can be found,
// schema validation fails, or unmarshaling fails.
func ParseWithFallback(raw string, schema *Schema, out interface{}) error {
	candidate, ok := ExtractBalancedObject(raw)
	if !ok {
		return fmt.Errorf("jsonverdict: no JSON object found in response")
	}
	if schema != nil {
		if err := schema.Validate(candidate); err != nil {
			return err
		}
	}
	if err := json.Unmarshal([]byte(candidate), out); err != nil {
		return fmt.Errorf("jsonverdict: unmarshal: %w", err)
	}
	return nil
}
