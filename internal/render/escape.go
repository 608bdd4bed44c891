// Package render produces static HTML views of a board and of a single
// issue. Templates are plain strings with {{NAME}} placeholders filled by
// string substitution; everything user-controlled passes through EscapeHTML
// first.
package render

import "strings"

// EscapeHTML escapes the five HTML-significant characters. Ampersand goes
// first so already-escaped entities aren't double-escaped into garbage.
func EscapeHTML(text string) string {
	text = strings.ReplaceAll(text, "&", "&amp;")
	text = strings.ReplaceAll(text, "<", "&lt;")
	text = strings.ReplaceAll(text, ">", "&gt;")
	text = strings.ReplaceAll(text, `"`, "&quot;")
	text = strings.ReplaceAll(text, "'", "&#039;")
	return text
}
