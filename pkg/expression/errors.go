package expression

import "errors"

var (
	// ErrCompileFailed wraps an expr-lang compilation failure.
	ErrCompileFailed = errors.New("expression compilation failed")

	// ErrEvalFailed wraps an expr-lang runtime failure.
	ErrEvalFailed = errors.New("expression evaluation failed")

	// ErrNotBoolean is returned by Evaluate when the expression produced a
	// non-boolean value.
	ErrNotBoolean = errors.New("expression did not produce a boolean")
)
