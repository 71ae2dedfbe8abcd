// Package textnorm provides the Unicode-safe string trimming used when
// assembling task context strings and summarizing scraped page text
// (the WebScraper node), so neither operation splits a multi-byte rune or
// leaves mixed normalization forms in a string two nodes later compare.
package textnorm

import (
	"strings"
	"unicode/utf8"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/unicode/norm"
)

// Normalize returns s in Unicode NFC form.
func Normalize(s string) string {
	return norm.NFC.String(s)
}

var titleCaser = cases.Title(language.English)

// Title title-cases s per English casing rules. Used for rendering an
// ExecutorKind in dispatch-decision console events.
func Title(s string) string {
	return titleCaser.String(s)
}

// Truncate returns the first maxRunes runes of s (after NFC normalization),
// appending an ellipsis if truncation occurred. maxRunes <= 0 means no
// limit.
func Truncate(s string, maxRunes int) string {
	s = Normalize(s)
	if maxRunes <= 0 || utf8.RuneCountInString(s) <= maxRunes {
		return s
	}
	var b strings.Builder
	count := 0
	for _, r := range s {
		if count >= maxRunes {
			break
		}
		b.WriteRune(r)
		count++
	}
	return b.String() + "…"
}
