package expression

import (
	"regexp"
	"strings"
)

var (
	bareComparisonRE = regexp.MustCompile(`^(==|!=|>=|<=|>|<)\s*`)
	lengthPropertyRE = regexp.MustCompile(`(\w+(?:\.\w+|\[\d+\])*?)\.length\b`)
	mapCallRE        = regexp.MustCompile(`map\s*\(\s*([^,]+),\s*(.+?)\s*\)`)
	itemFieldRE      = regexp.MustCompile(`\bitem\.`)
	itemWordRE       = regexp.MustCompile(`\bitem\b`)
)

// rewriteSurfaceSyntax converts this package's surface conveniences to
// expr-lang's native syntax before compilation:
//
//	">100"                  -> "input > 100"
//	"items.length > 3"      -> "len(items) > 3"
//	"map(users, item.age)"  -> "map(users, {#.age})"
func rewriteSurfaceSyntax(expression string) string {
	expression = strings.TrimSpace(expression)

	if bareComparisonRE.MatchString(expression) {
		expression = bareComparisonRE.ReplaceAllString(expression, "input $1 ")
	}

	expression = lengthPropertyRE.ReplaceAllString(expression, "len($1)")

	return rewriteMapCalls(expression)
}

// rewriteMapCalls converts map() calls written with a named item variable
// into expr-lang's closure syntax, one call at a time in a single pass, so
// an already rewritten call is never matched again.
func rewriteMapCalls(expression string) string {
	return mapCallRE.ReplaceAllStringFunc(expression, func(match string) string {
		m := mapCallRE.FindStringSubmatch(match)
		closure := itemFieldRE.ReplaceAllString(strings.TrimSpace(m[2]), "#.")
		closure = itemWordRE.ReplaceAllString(closure, "#")
		return "map(" + strings.TrimSpace(m[1]) + ", {" + closure + "})"
	})
}
