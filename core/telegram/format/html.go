package format

import "strings"

// Telegram's HTML parse mode only requires these three to be escaped.
var htmlEscaper = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
)

// EscapeHTML makes arbitrary text safe inside a ModeHTML message.
func EscapeHTML(text string) string {
	return htmlEscaper.Replace(text)
}

// Bold wraps escaped text in <b> tags.
func Bold(text string) string {
	return "<b>" + EscapeHTML(text) + "</b>"
}

// Link renders an anchor with an escaped label.
func Link(href, label string) string {
	return "<a href='" + strings.ReplaceAll(EscapeHTML(href), "'", "&#39;") + "'>" + EscapeHTML(label) + "</a>"
}
