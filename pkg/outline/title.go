package outline

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

func isSeparator(r rune) bool {
	return r == ' ' || r == '-' || r == '_'
}

// TitleCase turns a file or directory base name into a heading label.
// Runs of spaces, hyphens and underscores collapse to a single space and the
// first letter of every word is upper-cased; the rest of each word is kept.
//
//	"dynamic_programming" -> "Dynamic Programming"
//	"segment--tree"       -> "Segment Tree"
func TitleCase(name string) string {
	words := strings.FieldsFunc(name, isSeparator)
	// A cases.Caser is not safe for concurrent use.
	return cases.Title(language.Und, cases.NoLower).String(strings.Join(words, " "))
}
