package editor

import (
	"regexp"
	"strings"
)

var tagPattern = regexp.MustCompile(`<[^>]*>`)

// PlainText strips all tags, normalizes non-breaking-space entities to
// plain spaces, and trims. Display helper and the basis of IsEmpty.
func PlainText(html string) string {
	text := tagPattern.ReplaceAllString(html, "")
	text = strings.ReplaceAll(text, "&nbsp;", " ")
	return strings.TrimSpace(text)
}

// IsEmpty reports whether html carries no visible text. Used to show
// placeholder text and to gate draft save and export. It never blocks raw
// typing.
func IsEmpty(html string) bool {
	return PlainText(html) == ""
}
