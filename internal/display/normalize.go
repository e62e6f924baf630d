package display

import (
	"html"
	"regexp"
)

var (
	// lineBreakRe matches <br>, <br/>, <BR />.
	lineBreakRe = regexp.MustCompile(`(?i)<br\s*/?>`)
	// tagRe matches any remaining markup tag.
	tagRe = regexp.MustCompile(`</?[^>]+>`)
)

// Normalize converts slide markup to display text: line breaks become
// newlines, other tags are stripped and entities decoded.
func Normalize(markup string) string {
	s := lineBreakRe.ReplaceAllString(markup, "\n")
	s = tagRe.ReplaceAllString(s, "")
	return html.UnescapeString(s)
}
