package extract

import (
	"encoding/xml"
	"io"
	"strings"

	"github.com/nguyenthenguyen/docx"
)

func readDOCX(path string) (string, error) {
	doc, err := docx.ReadDocxFile(path)
	if err != nil {
		return "", err
	}
	defer doc.Close()

	return paragraphsText(doc.Editable().GetContent())
}

// paragraphsText walks word/document.xml and returns the text of every
// non-blank paragraph, one paragraph per line. A paragraph nested inside
// another (text boxes, shapes) is emitted on its own line and does not
// interrupt the text of the enclosing paragraph. The mc:Fallback copy of
// alternate content is skipped so text boxes are not read twice.
func paragraphsText(documentXML string) (string, error) {
	decoder := xml.NewDecoder(strings.NewReader(documentXML))

	var (
		paragraphs []string
		open       []*strings.Builder
		inText     bool
	)
	write := func(text string) {
		if len(open) > 0 {
			open[len(open)-1].WriteString(text)
		}
	}

	for {
		tok, err := decoder.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return "", err
		}

		switch t := tok.(type) {
		case xml.StartElement:
			switch t.Name.Local {
			case "p":
				open = append(open, &strings.Builder{})
			case "t":
				inText = true
			case "tab":
				write("\t")
			case "br", "cr":
				write("\n")
			case "Fallback":
				if err := decoder.Skip(); err != nil {
					return "", err
				}
			}
		case xml.EndElement:
			switch t.Name.Local {
			case "t":
				inText = false
			case "p":
				if len(open) == 0 {
					continue
				}
				current := open[len(open)-1]
				open = open[:len(open)-1]
				if text := current.String(); strings.TrimSpace(text) != "" {
					paragraphs = append(paragraphs, text)
				}
			}
		case xml.CharData:
			if inText {
				write(string(t))
			}
		}
	}

	return strings.Join(paragraphs, "\n"), nil
}
