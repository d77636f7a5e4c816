package extract

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/ledongthuc/pdf"
	"github.com/nguyenthenguyen/docx"
)

var (
	// ErrUnsupportedFormat is returned for extensions outside the allow-list,
	// before any file I/O happens.
	ErrUnsupportedFormat = errors.New("unsupported file format")
	// ErrNoText is returned when the underlying reader yields no text, for
	// example a scanned image-only PDF.
	ErrNoText = errors.New("no text could be extracted")
)

var allowedExtensions = map[string]struct{}{
	".txt":  {},
	".pdf":  {},
	".doc":  {},
	".docx": {},
}

// Extract pulls plain text from an uploaded resume document. The upload is
// spooled to a temporary file that is removed on every exit path. Extraction
// is a single attempt; errors are not retried.
// Libraries used: github.com/ledongthuc/pdf (PDF) and
// github.com/nguyenthenguyen/docx (DOC/DOCX).
func Extract(fileName string, r io.Reader) (string, error) {
	ext := strings.ToLower(filepath.Ext(fileName))
	if _, ok := allowedExtensions[ext]; !ok {
		return "", fmt.Errorf("%w: %q", ErrUnsupportedFormat, ext)
	}

	tmp, err := os.CreateTemp("", "upload-*"+ext)
	if err != nil {
		return "", fmt.Errorf("extract %s: temp file: %w", fileName, err)
	}
	defer func() {
		tmp.Close()
		os.Remove(tmp.Name())
	}()

	size, err := io.Copy(tmp, r)
	if err != nil {
		return "", fmt.Errorf("extract %s: spool upload: %w", fileName, err)
	}

	var text string
	switch ext {
	case ".txt":
		text, err = readAll(tmp)
	case ".pdf":
		text, err = extractPDF(tmp, size)
	case ".doc", ".docx":
		text, err = extractDOCX(tmp, size)
	}
	if err != nil {
		return "", fmt.Errorf("extract %s: %w: %v", fileName, ErrNoText, err)
	}

	text = strings.TrimSpace(text)
	if text == "" {
		return "", fmt.Errorf("extract %s: %w", fileName, ErrNoText)
	}
	return text, nil
}

func readAll(f *os.File) (string, error) {
	if _, err := f.Seek(0, io.SeekStart); err != nil {
		return "", err
	}
	data, err := io.ReadAll(f)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// extractPDF joins the non-empty page texts with newline separators.
func extractPDF(f *os.File, size int64) (string, error) {
	reader, err := pdf.NewReader(f, size)
	if err != nil {
		return "", err
	}

	var pages []string
	for i := 1; i <= reader.NumPage(); i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}
		content, err := page.GetPlainText(nil)
		if err != nil {
			return "", err
		}
		if trimmed := strings.TrimSpace(content); trimmed != "" {
			pages = append(pages, trimmed)
		}
	}
	return strings.Join(pages, "\n"), nil
}

// extractDOCX reads word/document.xml through the docx library and strips
// the markup, emitting one line per non-empty paragraph.
func extractDOCX(f *os.File, size int64) (string, error) {
	doc, err := docx.ReadDocxFromMemory(f, size)
	if err != nil {
		return "", err
	}
	defer doc.Close()

	return stripDocxXML(doc.Editable().GetContent()), nil
}
