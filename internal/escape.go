package internal

import "strings"

// Escape converts raw text into HTML-entity-safe text. Every Node
// title and inline preview passes through here at construction time;
// nothing else may put text into those fields.
func Escape(s string) string {
	s = strings.ReplaceAll(s, "&", "&amp;")
	s = strings.ReplaceAll(s, "<", "&lt;")
	s = strings.ReplaceAll(s, ">", "&gt;")
	return strings.ReplaceAll(s, "\n", "<br>")
}

// Unescape reverses entity escaping for &, < and >. Capture records
// are stored entity-escaped so they survive embedding in the host
// document; this undoes that before JSON parsing.
func Unescape(s string) string {
	s = strings.ReplaceAll(s, "&lt;", "<")
	s = strings.ReplaceAll(s, "&gt;", ">")
	return strings.ReplaceAll(s, "&amp;", "&")
}

// Display converts escaped node text back to plain text for terminal
// and markdown output.
func Display(s string) string {
	return Unescape(strings.ReplaceAll(s, "<br>", "\n"))
}
