// Package sanitize neutralizes untrusted form input before it reaches
// storage or an HTML response.
//
// The filter is a coarse block-list, not an HTML parser, and it is one layer
// of defense: storage paths must still use parameterized queries. Clean is
// meant to run exactly once at the trust boundary; feeding already-escaped
// text back through it will escape the entities a second time.
package sanitize

import (
	"html"
	"regexp"
	"strings"
)

// tagPattern matches any tag-shaped substring (<...>), including multi-line ones.
var tagPattern = regexp.MustCompile(`(?s)<[^>]*>`)

// sqlMeta removes characters with special meaning in SQL text contexts.
var sqlMeta = strings.NewReplacer(
	"'", "",
	`"`, "",
	";", "",
	"--", "",
)

// Clean strips tag-shaped substrings, HTML-escapes what remains so surviving
// fragments render as inert text, removes SQL metacharacters, and trims
// surrounding whitespace. It is pure and total: any input, including the
// empty string, yields a string.
func Clean(raw string) string {
	if raw == "" {
		return ""
	}
	s := tagPattern.ReplaceAllString(raw, "")
	s = html.EscapeString(s)
	s = sqlMeta.Replace(s)
	return strings.TrimSpace(s)
}
