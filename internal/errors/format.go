package errors

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
)

// Style selects how errors are reported.
type Style string

const (
	StylePretty  Style = "pretty"  // multi-line, colored terminal output
	StyleCompact Style = "compact" // one line
	StyleJSON    Style = "json"    // one JSON object per line
)

// Styles lists the supported styles.
var Styles = []Style{StylePretty, StyleCompact, StyleJSON}

// ParseStyle returns the style named s. The empty name is StylePretty.
func ParseStyle(s string) (Style, error) {
	if s == "" {
		return StylePretty, nil
	}
	for _, st := range Styles {
		if strings.EqualFold(s, string(st)) {
			return st, nil
		}
	}
	return "", New("E174").
		WithDetailf("%q", s).
		WithSuggestion("Use one of: pretty, compact, json")
}

const (
	ansiReset  = "\033[0m"
	ansiRed    = "\033[31m"
	ansiYellow = "\033[33m"
	ansiBlue   = "\033[34m"
	ansiCyan   = "\033[36m"
	ansiGray   = "\033[90m"
	ansiBold   = "\033[1m"
)

var colorEnabled = true

// DisableColors disables ANSI color output.
func DisableColors() { colorEnabled = false }

// EnableColors enables ANSI color output.
func EnableColors() { colorEnabled = true }

func paint(text string, codes ...string) string {
	if !colorEnabled || text == "" {
		return text
	}
	return strings.Join(codes, "") + text + ansiReset
}

// Format renders the error for a terminal: a header line followed by
// indented detail, explanation, hint, example and documentation blocks.
func (e *DomError) Format() string {
	var b strings.Builder

	label := "ERROR: "
	if e.Code != "" {
		label = "ERROR " + e.Code + ": "
	}
	fmt.Fprintf(&b, "\n%s%s\n\n", paint(label, ansiRed, ansiBold), paint(e.Message, ansiBold))

	block := func(lines ...string) {
		for _, line := range lines {
			b.WriteString("  " + line + "\n")
		}
		b.WriteString("\n")
	}
	if e.Detail != "" {
		block(paint(e.Detail, ansiYellow))
	}
	if e.Wrapped != nil {
		block(paint("Cause: ", ansiGray) + e.Wrapped.Error())
	}
	if e.Explanation != "" {
		block(wrapText(e.Explanation, 70)...)
	}
	if e.Suggestion != "" {
		block(paint("Hint: ", ansiCyan) + e.Suggestion)
	}
	if e.Example != "" {
		lines := []string{paint("Example:", ansiCyan)}
		for _, line := range strings.Split(e.Example, "\n") {
			lines = append(lines, "  "+line)
		}
		block(lines...)
	}
	if e.DocURL != "" {
		b.WriteString("  " + paint("Learn more: ", ansiGray) + paint(e.DocURL, ansiBlue) + "\n")
	}
	return b.String()
}

// FormatCompact renders the error on one line: code, message, detail in
// parentheses and the wrapped cause.
func (e *DomError) FormatCompact() string {
	msg := e.Message
	if e.Code != "" {
		msg = e.Code + ": " + msg
	}
	if e.Detail != "" {
		msg += " (" + e.Detail + ")"
	}
	if e.Wrapped != nil {
		msg += ": " + e.Wrapped.Error()
	}
	return msg
}

type jsonError struct {
	Code       string   `json:"code,omitempty"`
	Category   Category `json:"category,omitempty"`
	Message    string   `json:"message"`
	Detail     string   `json:"detail,omitempty"`
	Cause      string   `json:"cause,omitempty"`
	Suggestion string   `json:"suggestion,omitempty"`
	DocURL     string   `json:"docUrl,omitempty"`
}

// FormatJSON renders the error as a single JSON object.
func (e *DomError) FormatJSON() string {
	v := jsonError{
		Code:       e.Code,
		Category:   e.Category,
		Message:    e.Message,
		Detail:     e.Detail,
		Suggestion: e.Suggestion,
		DocURL:     e.DocURL,
	}
	if e.Wrapped != nil {
		v.Cause = e.Wrapped.Error()
	}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return fmt.Sprintf(`{"message":%q}`, e.Error())
	}
	return strings.TrimSuffix(buf.String(), "\n")
}

// Fprint writes err to w in the given style. Errors that are not a
// DomError are reported with their message only.
func Fprint(w io.Writer, err error, style Style) {
	if err == nil {
		return
	}
	de, ok := err.(*DomError)
	if !ok {
		de = &DomError{Message: err.Error()}
	}
	switch style {
	case StyleCompact:
		fmt.Fprintln(w, de.FormatCompact())
	case StyleJSON:
		fmt.Fprintln(w, de.FormatJSON())
	default:
		fmt.Fprint(w, de.Format())
	}
}

// PrintError prints err to stderr in the pretty style.
func PrintError(err error) {
	Fprint(os.Stderr, err, StylePretty)
}

// wrapText splits text into lines of at most width bytes, breaking
// between words. Longer words get a line of their own.
func wrapText(text string, width int) []string {
	var lines []string
	line := ""
	for _, word := range strings.Fields(text) {
		switch {
		case line == "":
			line = word
		case len(line)+1+len(word) > width:
			lines = append(lines, line)
			line = word
		default:
			line += " " + word
		}
	}
	if line != "" {
		lines = append(lines, line)
	}
	return lines
}
