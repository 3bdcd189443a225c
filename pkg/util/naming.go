package util

import "strings"

// CamelJoin concatenates a verb and a resource name into a single camel-case
// identifier: CamelJoin("update", "book") == "updateBook". Resource names in
// snake_case or kebab-case are folded into camel case segment by segment, so
// CamelJoin("update", "book_review") == "updateBookReview".
func CamelJoin(verb, name string) string {
	var b strings.Builder
	b.WriteString(strings.ToLower(verb))
	for _, seg := range splitWords(name) {
		b.WriteString(capitalize(seg))
	}
	return b.String()
}

// splitWords splits a name on underscore, hyphen and space separators,
// dropping empty segments.
func splitWords(name string) []string {
	return strings.FieldsFunc(name, func(r rune) bool {
		return r == '_' || r == '-' || r == ' '
	})
}

// capitalize upper-cases the first byte of an ASCII word, leaving the rest
// untouched. Resource names are ASCII identifiers so no unicode handling is
// needed here.
func capitalize(s string) string {
	if s == "" {
		return s
	}
	if s[0] >= 'a' && s[0] <= 'z' {
		return string(s[0]-'a'+'A') + s[1:]
	}
	return s
}
