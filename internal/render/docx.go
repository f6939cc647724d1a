package render

import (
	"bytes"
	_ "embed"
	"encoding/xml"
	"fmt"
	"io"
	"strings"

	"github.com/nguyenthenguyen/docx"
)

//go:embed template.docx
var docxTemplate []byte

// contentPlaceholder is the single paragraph in template.docx that is
// replaced by the generated body.
const contentPlaceholder = "<w:p><w:r><w:t>{{CONTENT}}</w:t></w:r></w:p>"

var docxStyles = map[Kind]string{
	Heading1: "Heading1",
	Heading2: "Heading2",
	Bullet:   "ListBullet",
}

// DOCX writes text as a Word document with heading and bullet styles
func DOCX(w io.Writer, text string) error {
	template, err := docx.ReadDocxFromMemory(bytes.NewReader(docxTemplate), int64(len(docxTemplate)))
	if err != nil {
		return fmt.Errorf("failed to open docx template: %w", err)
	}
	defer template.Close()

	doc := template.Editable()
	content := doc.GetContent()
	if !strings.Contains(content, contentPlaceholder) {
		return fmt.Errorf("docx template has no content placeholder")
	}

	body, err := docxBody(Classify(text))
	if err != nil {
		return err
	}
	doc.SetContent(strings.Replace(content, contentPlaceholder, body, 1))

	return doc.Write(w)
}

func docxBody(lines []Line) (string, error) {
	var b strings.Builder
	for _, line := range lines {
		b.WriteString("<w:p>")
		if style, ok := docxStyles[line.Kind]; ok {
			fmt.Fprintf(&b, `<w:pPr><w:pStyle w:val="%s"/></w:pPr>`, style)
		}
		b.WriteString(`<w:r><w:t xml:space="preserve">`)
		if err := xml.EscapeText(&b, []byte(line.Text)); err != nil {
			return "", fmt.Errorf("failed to escape paragraph: %w", err)
		}
		b.WriteString("</w:t></w:r></w:p>")
	}
	return b.String(), nil
}
