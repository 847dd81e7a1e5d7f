package report

import "strings"

// The PDF output renders a small markdown subset: #-style headings plus
// **bold** and *italic* inline markers. Everything else passes through
// as body text with the markers removed.

type SpanStyle string

const (
	StylePlain  SpanStyle = ""
	StyleBold   SpanStyle = "B"
	StyleItalic SpanStyle = "I"
)

type Span struct {
	Text  string
	Style SpanStyle
}

// ParseLine splits one markdown line into a heading level (0 for body
// text) and styled inline spans.
func ParseLine(line string) (level int, spans []Span) {
	trimmed := strings.TrimLeft(line, " ")
	for level < 6 && level < len(trimmed) && trimmed[level] == '#' {
		level++
	}
	if level > 0 {
		rest := strings.TrimLeft(trimmed[level:], " ")
		return level, parseInline(rest)
	}
	return 0, parseInline(line)
}

func parseInline(text string) []Span {
	var spans []Span
	for i, part := range strings.Split(text, "**") {
		if part == "" {
			continue
		}
		if i%2 == 1 {
			// Inside a ** pair.
			spans = append(spans, Span{Text: part, Style: StyleBold})
			continue
		}
		for j, sub := range strings.Split(part, "*") {
			if sub == "" {
				continue
			}
			style := StylePlain
			if j%2 == 1 {
				style = StyleItalic
			}
			spans = append(spans, Span{Text: sub, Style: style})
		}
	}
	return spans
}

// Plain strips all markdown markers, returning text suitable for plain
// output.
func Plain(markdown string) string {
	var b strings.Builder
	for _, line := range strings.Split(markdown, "\n") {
		_, spans := ParseLine(line)
		for _, s := range spans {
			b.WriteString(s.Text)
		}
		b.WriteString("\n")
	}
	return strings.TrimRight(b.String(), "\n")
}
