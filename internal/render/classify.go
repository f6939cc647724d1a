// Package render turns optimized CV text into downloadable documents.
package render

import (
	"strings"
	"unicode"
)

// Kind is the layout role of one line of CV text
type Kind int

const (
	Paragraph Kind = iota
	Heading1
	Heading2
	Bullet
)

func (k Kind) String() string {
	switch k {
	case Heading1:
		return "heading1"
	case Heading2:
		return "heading2"
	case Bullet:
		return "bullet"
	default:
		return "paragraph"
	}
}

// Line is a classified, non-empty line
type Line struct {
	Kind Kind
	Text string
}

// Classify trims every line, drops empty ones and assigns each a Kind.
// Language markers such as "=== SVENSKA CV ===" become Heading1 with the
// equals signs removed, "- " and "* " lines become bullets, and uppercase
// lines or lines ending in ':' become Heading2.
func Classify(text string) []Line {
	var lines []Line
	for _, raw := range splitLines(text) {
		line := strings.TrimSpace(raw)
		if line == "" {
			continue
		}
		lines = append(lines, classifyLine(line))
	}
	return lines
}

func classifyLine(line string) Line {
	switch {
	case strings.HasPrefix(line, "=== ") && strings.HasSuffix(line, " ==="):
		return Line{Kind: Heading1, Text: strings.TrimSpace(strings.ReplaceAll(line, "=", ""))}
	case strings.HasPrefix(line, "- ") || strings.HasPrefix(line, "* "):
		return Line{Kind: Bullet, Text: line[2:]}
	case isUpper(line) || strings.HasSuffix(line, ":"):
		return Line{Kind: Heading2, Text: line}
	default:
		return Line{Kind: Paragraph, Text: line}
	}
}

// isUpper reports whether s has at least one cased letter and no lowercase
// or titlecase letters.
func isUpper(s string) bool {
	cased := false
	for _, r := range s {
		switch {
		case unicode.IsLower(r), unicode.IsTitle(r):
			return false
		case unicode.IsUpper(r):
			cased = true
		}
	}
	return cased
}

// splitLines splits on \n, \r\n and \r. A trailing line break does not
// produce an extra empty line.
func splitLines(text string) []string {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = strings.ReplaceAll(text, "\r", "\n")
	if text == "" {
		return nil
	}

	lines := strings.Split(text, "\n")
	if lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	return lines
}
