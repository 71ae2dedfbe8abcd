package jsonverdict

import (
	"testing"
)

func TestExtractBalancedObject(t *testing.T) {
	tests := []struct {
		name    string
		in      string
		want    string
		wantOk  bool
	}{
		{
			name:   "bare object",
			in:     `{"status":"complete"}`,
			want:   `{"status":"complete"}`,
			wantOk: true,
		},
		{
			name:   "wrapped in prose",
			in:     "Here's my verdict:\n\n{\"status\":\"complete\"}\n\nHope that helps!",
			want:   `{"status":"complete"}`,
			wantOk: true,
		},
		{
			name:   "nested braces",
			in:     `prefix {"a":{"b":1},"c":2} suffix`,
			want:   `{"a":{"b":1},"c":2}`,
			wantOk: true,
		},
		{
			name:   "brace inside string literal",
			in:     `{"note":"a { b"}`,
			want:   `{"note":"a { b"}`,
			wantOk: true,
		},
		{
			name:   "no object",
			in:     "no json here",
			wantOk: false,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, ok := ExtractBalancedObject(tc.in)
			if ok != tc.wantOk {
				t.Fatalf("ok = %v, want %v", ok, tc.wantOk)
			}
			if ok && got != tc.want {
				t.Fatalf("got %q, want %q", got, tc.want)
			}
		})
	}
}

func TestParseWithFallbackNoObject(t *testing.T) {
	var out map[string]interface{}
	if err := ParseWithFallback("not json", nil, &out); err == nil {
		t.Fatal("expected error for input with no JSON object")
	}
}

func TestParseWithFallbackSchemaValidation(t *testing.T) {
	schema := MustCompileSchema(`{
		"type": "object",
		"properties": {"status": {"type": "string"}},
		"required": ["status"]
	}`)

	var out struct {
		Status string `json:"status"`
	}
	if err := ParseWithFallback(`prose {"status":"complete"} more prose`, schema, &out); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out.Status != "complete" {
		t.Fatalf("got status %q", out.Status)
	}

	if err := ParseWithFallback(`{"other":1}`, schema, &out); err == nil {
		t.Fatal("expected schema validation error for missing required field")
	}
}
