package display

import (
	"fmt"
	"strings"

	"github.com/reqpeek/reqpeek/internal/capture"
)

// indentStep is the indentation emitted per nesting level by FormatHTML.
const indentStep = "  "

// FormatMessage composes the record as HTTP/1.1 wire text: the request line,
// one line per header in stored order, and, when the body formats to text,
// a blank line followed by the formatted body.
func FormatMessage(record *capture.Record) string {
	var builder strings.Builder

	builder.WriteString(record.Method)
	builder.WriteString(" ")
	builder.WriteString(record.URL)
	builder.WriteString(" HTTP/1.1")

	for _, header := range record.Headers {
		builder.WriteString("\n")
		builder.WriteString(header.Name)
		builder.WriteString(": ")
		builder.WriteString(header.Value)
	}

	if body := FormatBody(record.Body); body != "" {
		builder.WriteString("\n\n")
		builder.WriteString(body)
	}

	return builder.String()
}

// FormatBody renders a captured body as display text.
// An absent or empty body yields ""; a string bounded by '<'...'>' after
// trimming is re-indented as HTML; form data becomes one "key: value" line
// per field in iteration order; anything else falls back to its default
// string conversion.
func FormatBody(body any) string {
	switch value := body.(type) {
	case nil:
		return ""
	case string:
		if value == "" {
			return ""
		}

		trimmed := strings.TrimSpace(value)
		if strings.HasPrefix(trimmed, "<") && strings.HasSuffix(trimmed, ">") {
			return FormatHTML(trimmed)
		}

		return value
	case capture.FormData:
		if len(value) == 0 {
			return ""
		}

		lines := make([]string, 0, len(value))
		for _, field := range value {
			lines = append(lines, field.Key+": "+field.Value)
		}

		return strings.Join(lines, "\n")
	default:
		return fmt.Sprintf("%v", value)
	}
}

// FormatHTML re-indents markup line by line. It is a heuristic, not a parser:
// it does not validate nesting and can mis-indent malformed or unusual markup
// (multi-line tags, comments, raw-text elements like script or style).
//
// Algorithm: break between every adjacent ">" "<" pair, then walk the lines
// keeping an indent counter. A line starting with "</" dedents before it is
// emitted (floored at zero); a line that opens a tag without closing one on
// the same line indents after it is emitted.
func FormatHTML(input string) string {
	withBreaks := strings.ReplaceAll(input, "><", ">\n<")

	var (
		lines  = strings.Split(withBreaks, "\n")
		output = make([]string, 0, len(lines))
		indent = 0
	)

	for _, line := range lines {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		if strings.HasPrefix(line, "</") {
			if indent > 0 {
				indent--
			}

			output = append(output, strings.Repeat(indentStep, indent)+line)

			continue
		}

		output = append(output, strings.Repeat(indentStep, indent)+line)

		if strings.HasPrefix(line, "<") &&
			!strings.HasSuffix(line, "/>") &&
			!strings.Contains(line, "</") {
			indent++
		}
	}

	return strings.Join(output, "\n")
}
