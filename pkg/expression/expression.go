// Package expression evaluates small expr-lang expressions against a JSON
// value. The JSONManipulator node uses it for its extract, filter and
// transform modes; the executor dispatcher uses it for its optional
// low-confidence gate.
//
// The evaluated value is bound as both "item" and "input", so a filter can
// read naturally over array elements ("item.age > 21") and a transform over
// a whole document ("input.users"). Bare comparison shorthand is accepted
// for filters: ">100" means "input > 100".
package expression

import (
	"sync"
)

// Context carries named values an expression may reference in addition to
// its input, e.g. the dispatcher binds {"confidence": 0.42}.
type Context struct {
	Variables map[string]interface{}
}

var (
	globalEngine *engine
	engineOnce   sync.Once
)

func getEngine() *engine {
	engineOnce.Do(func() {
		globalEngine = newEngine()
	})
	return globalEngine
}

// Evaluate evaluates expr against input and returns its boolean result. A
// non-boolean result is an error: callers use this for filter predicates
// and gates, where silently truthy values would hide typos.
func Evaluate(expr string, input interface{}, ctx *Context) (bool, error) {
	return getEngine().evalBool(expr, input, ctx)
}

// EvaluateExpression evaluates expr against input and returns its value,
// whatever type it produced. Used by extract and transform modes.
func EvaluateExpression(expr string, input interface{}, ctx *Context) (interface{}, error) {
	return getEngine().evalValue(expr, input, ctx)
}
