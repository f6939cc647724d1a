package render

import (
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/go-pdf/fpdf"
)

// Page layout in points
const (
	pdfMargin     = 15 * 72 / 25.4
	pdfLineHeight = 12.0
	pdfFontSize   = 10.0
	pdfMaxChars   = 95
)

// PDF writes text as an A4 document with the same line classification as
// DOCX, greedily wrapped at pdfMaxChars characters per line.
func PDF(w io.Writer, text string) error {
	doc := buildPDF(text)
	if err := doc.Output(w); err != nil {
		return fmt.Errorf("failed to write pdf: %w", err)
	}
	return nil
}

type pdfLine struct {
	text string
	kind Kind
}

func buildPDF(text string) *fpdf.Fpdf {
	doc := fpdf.New("P", "pt", "A4", "")
	doc.SetAutoPageBreak(false, 0)
	doc.SetTitle("Optimerat CV", true)
	doc.SetCreator("cvoptimizer", true)
	translate := doc.UnicodeTranslatorFromDescriptor("")

	_, pageHeight := doc.GetPageSize()
	bottom := pageHeight - pdfMargin

	doc.AddPage()
	y := pdfMargin
	for _, line := range layoutPDF(text) {
		if y > bottom {
			doc.AddPage()
			y = pdfMargin
		}
		setPDFFont(doc, line.kind)
		doc.Text(pdfMargin, y, translate(line.text))
		y += pdfLineHeight
	}

	return doc
}

func setPDFFont(doc *fpdf.Fpdf, kind Kind) {
	switch kind {
	case Heading1:
		doc.SetFont("Helvetica", "B", pdfFontSize+2)
	case Heading2:
		doc.SetFont("Helvetica", "B", pdfFontSize)
	default:
		doc.SetFont("Helvetica", "", pdfFontSize)
	}
}

// layoutPDF wraps every classified line. Markers and bullet prefixes are
// already stripped; the kind picks the font.
func layoutPDF(text string) []pdfLine {
	var out []pdfLine
	for _, line := range Classify(text) {
		for _, wrapped := range wrapWords(line.Text, pdfMaxChars) {
			out = append(out, pdfLine{text: wrapped, kind: line.Kind})
		}
	}
	return out
}

// wrapWords packs words into lines of at most maxChars characters. A word
// longer than maxChars gets a line of its own.
func wrapWords(line string, maxChars int) []string {
	var (
		lines   []string
		current string
	)
	for _, word := range strings.Fields(line) {
		candidate := word
		if current != "" {
			candidate = current + " " + word
		}
		if utf8.RuneCountInString(candidate) <= maxChars {
			current = candidate
			continue
		}
		if current != "" {
			lines = append(lines, current)
		}
		current = word
	}
	if current != "" {
		lines = append(lines, current)
	}
	return lines
}
