package extract

import (
	"errors"
	"path/filepath"
	"strings"
	"testing"
)

func TestExtractTxt(t *testing.T) {
	text, err := Extract("resume.txt", strings.NewReader("  Jane Doe, 5 years Python\n\n"))
	if err != nil {
		t.Fatalf("extract txt: %v", err)
	}
	if text != "Jane Doe, 5 years Python" {
		t.Fatalf("unexpected text: %q", text)
	}
}

func TestExtractRejectsUnsupportedExtensionBeforeIO(t *testing.T) {
	// The reader panics on use, so a passing test proves the extension gate
	// runs before any file I/O.
	_, err := Extract("resume.png", panicReader{})
	if !errors.Is(err, ErrUnsupportedFormat) {
		t.Fatalf("expected ErrUnsupportedFormat, got %v", err)
	}
}

func TestExtractEmptyTxtFailsWithNoText(t *testing.T) {
	_, err := Extract("resume.txt", strings.NewReader("   \n\t "))
	if !errors.Is(err, ErrNoText) {
		t.Fatalf("expected ErrNoText, got %v", err)
	}
}

func TestExtractCorruptPDFFailsWithNoText(t *testing.T) {
	_, err := Extract("resume.pdf", strings.NewReader("not a pdf at all"))
	if !errors.Is(err, ErrNoText) {
		t.Fatalf("expected ErrNoText, got %v", err)
	}
}

func TestExtractLeavesNoTempFilesBehind(t *testing.T) {
	tmpDir := t.TempDir()
	t.Setenv("TMPDIR", tmpDir)

	if _, err := Extract("resume.txt", strings.NewReader("hello")); err != nil {
		t.Fatalf("extract: %v", err)
	}
	// Failure path must clean up too.
	if _, err := Extract("resume.pdf", strings.NewReader("broken")); err == nil {
		t.Fatal("expected pdf extraction to fail")
	}

	leftovers, err := filepath.Glob(filepath.Join(tmpDir, "upload-*"))
	if err != nil {
		t.Fatalf("glob: %v", err)
	}
	if len(leftovers) != 0 {
		t.Fatalf("temp files left behind: %v", leftovers)
	}
}

func TestStripDocxXML(t *testing.T) {
	raw := `<w:document><w:body>` +
		`<w:p><w:r><w:t>First paragraph</w:t></w:r></w:p>` +
		`<w:p></w:p>` +
		`<w:p><w:r><w:t>Second</w:t></w:r><w:r><w:t> paragraph</w:t></w:r></w:p>` +
		`</w:body></w:document>`
	got := stripDocxXML(raw)
	want := "First paragraph\nSecond paragraph"
	if got != want {
		t.Fatalf("stripDocxXML = %q, want %q", got, want)
	}
}

type panicReader struct{}

func (panicReader) Read([]byte) (int, error) {
	panic("reader must not be touched for unsupported extensions")
}
