package extract

import (
	"encoding/xml"
	"io"
	"strings"
)

// stripDocxXML decodes WordprocessingML and keeps only character data,
// separating non-empty paragraphs with newlines.
func stripDocxXML(raw string) string {
	decoder := xml.NewDecoder(strings.NewReader(raw))
	var (
		out  strings.Builder
		para strings.Builder
	)
	flush := func() {
		if text := strings.TrimSpace(para.String()); text != "" {
			if out.Len() > 0 {
				out.WriteString("\n")
			}
			out.WriteString(text)
		}
		para.Reset()
	}
	for {
		tok, err := decoder.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return strings.TrimSpace(raw)
		}
		switch t := tok.(type) {
		case xml.CharData:
			para.WriteString(string(t))
		case xml.EndElement:
			if t.Name.Local == "p" || t.Name.Local == "br" {
				flush()
			}
		}
	}
	flush()
	return strings.TrimSpace(out.String())
}
