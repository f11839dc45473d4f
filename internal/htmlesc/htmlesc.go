// Package htmlesc escapes text and attribute values for HTML output.
package htmlesc

import "strings"

// needsText reports whether s contains a character escaped by Text.
func needsText(s string) bool {
	return strings.ContainsAny(s, `&<>"'`)
}

// Text escapes s for safe inclusion in HTML content.
func Text(s string) string {
	if !needsText(s) {
		return s
	}

	var buf strings.Builder
	buf.Grow(len(s) + 8)

	for _, r := range s {
		switch r {
		case '&':
			buf.WriteString("&amp;")
		case '<':
			buf.WriteString("&lt;")
		case '>':
			buf.WriteString("&gt;")
		case '"':
			buf.WriteString("&quot;")
		case '\'':
			buf.WriteString("&#39;")
		default:
			buf.WriteRune(r)
		}
	}

	return buf.String()
}

// Attr escapes s for safe inclusion in a double quoted attribute value.
// In addition to the text entities it escapes whitespace that could break
// attribute parsing.
func Attr(s string) string {
	if !needsText(s) && !strings.ContainsAny(s, "\n\r\t") {
		return s
	}

	var buf strings.Builder
	buf.Grow(len(s) + 8)

	for _, r := range s {
		switch r {
		case '&':
			buf.WriteString("&amp;")
		case '<':
			buf.WriteString("&lt;")
		case '>':
			buf.WriteString("&gt;")
		case '"':
			buf.WriteString("&quot;")
		case '\'':
			buf.WriteString("&#39;")
		case '\n':
			buf.WriteString("&#10;")
		case '\r':
			buf.WriteString("&#13;")
		case '\t':
			buf.WriteString("&#9;")
		default:
			buf.WriteRune(r)
		}
	}

	return buf.String()
}
