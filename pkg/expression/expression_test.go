package expression

import (
	"errors"
	"testing"
)

func TestEvaluate(t *testing.T) {
	tests := []struct {
		name  string
		expr  string
		input interface{}
		ctx   *Context
		want  bool
	}{
		{"bare greater-than", ">100", 150.0, nil, true},
		{"bare greater-than false", ">100", 50.0, nil, false},
		{"bare equality", "==5", 5.0, nil, true},
		{"item field comparison", "item.age > 21", map[string]interface{}{"age": 30.0}, nil, true},
		{"input alias", "input.age > 21", map[string]interface{}{"age": 30.0}, nil, true},
		{"boolean operators", "item.a && !item.b", map[string]interface{}{"a": true, "b": false}, nil, true},
		{"string contains", `contains(item.name, "go")`, map[string]interface{}{"name": "golang"}, nil, true},
		{"startsWith", `startsWith(item, "err")`, "error: boom", nil, true},
		{"length shorthand", "item.tags.length >= 2", map[string]interface{}{"tags": []interface{}{"a", "b"}}, nil, true},
		{"context variable", "confidence < 0.5", nil, &Context{Variables: map[string]interface{}{"confidence": 0.3}}, true},
		{"context variable false", "confidence < 0.5", nil, &Context{Variables: map[string]interface{}{"confidence": 0.9}}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Evaluate(tt.expr, tt.input, tt.ctx)
			if err != nil {
				t.Fatalf("Evaluate(%q) error = %v", tt.expr, err)
			}
			if got != tt.want {
				t.Errorf("Evaluate(%q) = %v, want %v", tt.expr, got, tt.want)
			}
		})
	}
}

func TestEvaluate_NonBooleanResult(t *testing.T) {
	_, err := Evaluate("item.age", map[string]interface{}{"age": 30.0}, nil)
	if !errors.Is(err, ErrNotBoolean) {
		t.Fatalf("Evaluate() error = %v, want ErrNotBoolean", err)
	}
}

func TestEvaluate_CompileError(t *testing.T) {
	_, err := Evaluate("item >", nil, nil)
	if !errors.Is(err, ErrCompileFailed) {
		t.Fatalf("Evaluate() error = %v, want ErrCompileFailed", err)
	}
}

func TestEvaluateExpression(t *testing.T) {
	doc := map[string]interface{}{
		"users": []interface{}{
			map[string]interface{}{"name": "ada", "age": 36.0},
			map[string]interface{}{"name": "grace", "age": 45.0},
		},
		"scores": []interface{}{1.0, 2.0, 3.0},
	}

	tests := []struct {
		name string
		expr string
		want interface{}
	}{
		{"field extraction", `input.users[0].name`, "ada"},
		{"arithmetic", `input.scores[2] * 2`, 6.0},
		{"sum helper", `sum(input.scores)`, 6.0},
		{"avg helper", `avg(input.scores)`, 2.0},
		{"upper helper", `upper(input.users[1].name)`, "GRACE"},
		{"ternary", `input.scores[0] > 0 ? "pos" : "neg"`, "pos"},
		{"coalesce", `coalesce(nil, "fallback")`, "fallback"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := EvaluateExpression(tt.expr, doc, nil)
			if err != nil {
				t.Fatalf("EvaluateExpression(%q) error = %v", tt.expr, err)
			}
			if got != tt.want {
				t.Errorf("EvaluateExpression(%q) = %v (%T), want %v", tt.expr, got, got, tt.want)
			}
		})
	}
}

func TestEvaluateExpression_MapClosureRewrite(t *testing.T) {
	doc := []interface{}{
		map[string]interface{}{"v": 1.0},
		map[string]interface{}{"v": 2.0},
	}
	got, err := EvaluateExpression("map(input, item.v * 10)", doc, nil)
	if err != nil {
		t.Fatalf("EvaluateExpression() error = %v", err)
	}
	arr, ok := got.([]interface{})
	if !ok || len(arr) != 2 {
		t.Fatalf("EvaluateExpression() = %v (%T), want 2-element slice", got, got)
	}
	if arr[0] != 10.0 || arr[1] != 20.0 {
		t.Errorf("mapped values = %v, want [10 20]", arr)
	}
}

func TestRewriteSurfaceSyntax(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{">100", "input > 100"},
		{"  <= 5", "input <= 5"},
		{"items.length", "len(items)"},
		{"item.tags.length > 1", "len(item.tags) > 1"},
		{"map(users, item.age)", "map(users, {#.age})"},
		{"item.age > 21", "item.age > 21"},
	}
	for _, tt := range tests {
		if got := rewriteSurfaceSyntax(tt.in); got != tt.want {
			t.Errorf("rewriteSurfaceSyntax(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
