package expression

import (
	"fmt"
	"math"
	"strings"
	"sync"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"
)

// engine compiles and caches expr-lang programs. Programs are compiled
// without a static environment so one cached program serves every input
// shape the same expression is applied to.
type engine struct {
	mu    sync.Mutex
	cache map[string]*vm.Program
}

func newEngine() *engine {
	return &engine{cache: make(map[string]*vm.Program)}
}

func (e *engine) evalBool(expression string, input interface{}, ctx *Context) (bool, error) {
	out, err := e.run(expression, input, ctx)
	if err != nil {
		return false, err
	}
	b, ok := out.(bool)
	if !ok {
		return false, fmt.Errorf("%w: expression returned %T, want bool", ErrNotBoolean, out)
	}
	return b, nil
}

func (e *engine) evalValue(expression string, input interface{}, ctx *Context) (interface{}, error) {
	return e.run(expression, input, ctx)
}

func (e *engine) run(expression string, input interface{}, ctx *Context) (interface{}, error) {
	program, err := e.compile(rewriteSurfaceSyntax(expression))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCompileFailed, err)
	}

	out, err := expr.Run(program, e.environment(input, ctx))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrEvalFailed, err)
	}
	return out, nil
}

func (e *engine) compile(expression string) (*vm.Program, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if p, ok := e.cache[expression]; ok {
		return p, nil
	}
	p, err := expr.Compile(expression)
	if err != nil {
		return nil, err
	}
	e.cache[expression] = p
	return p, nil
}

func (e *engine) environment(input interface{}, ctx *Context) map[string]interface{} {
	env := map[string]interface{}{
		"contains":   strings.Contains,
		"startsWith": strings.HasPrefix,
		"endsWith":   strings.HasSuffix,
		"upper":      strings.ToUpper,
		"lower":      strings.ToLower,
		"trim":       strings.TrimSpace,
		"split":      strings.Split,
		"replace":    strings.ReplaceAll,
		"join":       joinAny,
		"first":      firstOf,
		"last":       lastOf,
		"flatten":    flatten,
		"unique":     unique,
		"sum":        sumOf,
		"avg":        avgOf,
		"round":      math.Round,
		"floor":      math.Floor,
		"ceil":       math.Ceil,
		"abs":        math.Abs,
		"isNull":     func(v interface{}) bool { return v == nil },
		"coalesce":   coalesce,
	}

	if ctx != nil {
		for k, v := range ctx.Variables {
			env[k] = v
		}
	}
	if input != nil {
		if _, taken := env["item"]; !taken {
			env["item"] = input
		}
		if _, taken := env["input"]; !taken {
			env["input"] = input
		}
	}
	return env
}

func joinAny(arr []interface{}, sep string) string {
	parts := make([]string, len(arr))
	for i, v := range arr {
		parts[i] = fmt.Sprintf("%v", v)
	}
	return strings.Join(parts, sep)
}

func firstOf(arr []interface{}) interface{} {
	if len(arr) == 0 {
		return nil
	}
	return arr[0]
}

func lastOf(arr []interface{}) interface{} {
	if len(arr) == 0 {
		return nil
	}
	return arr[len(arr)-1]
}

func flatten(arr []interface{}) []interface{} {
	out := make([]interface{}, 0, len(arr))
	var rec func([]interface{})
	rec = func(items []interface{}) {
		for _, item := range items {
			if sub, ok := item.([]interface{}); ok {
				rec(sub)
			} else {
				out = append(out, item)
			}
		}
	}
	rec(arr)
	return out
}

func unique(arr []interface{}) []interface{} {
	seen := make(map[string]bool, len(arr))
	out := make([]interface{}, 0, len(arr))
	for _, item := range arr {
		key := fmt.Sprintf("%v", item)
		if !seen[key] {
			seen[key] = true
			out = append(out, item)
		}
	}
	return out
}

func sumOf(arr []interface{}) float64 {
	var total float64
	for _, v := range arr {
		if n, ok := asFloat(v); ok {
			total += n
		}
	}
	return total
}

func avgOf(arr []interface{}) float64 {
	if len(arr) == 0 {
		return 0
	}
	return sumOf(arr) / float64(len(arr))
}

func coalesce(args ...interface{}) interface{} {
	for _, a := range args {
		if a != nil {
			return a
		}
	}
	return nil
}

func asFloat(v interface{}) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	case int32:
		return float64(n), true
	default:
		return 0, false
	}
}
