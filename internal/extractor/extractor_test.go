package extractor

import (
	"os"
	"path/filepath"
	"testing"
)

func writeFile(t *testing.T, name string, data []byte) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("writing fixture: %v", err)
	}
	return path
}

func TestExtractPlainText(t *testing.T) {
	path := writeFile(t, "doc.txt", []byte("hello world\nsecond line"))
	if got, want := Extract(path, ".txt"), "hello world\nsecond line"; got != want {
		t.Errorf("Extract = %q, want %q", got, want)
	}
}

func TestExtractUppercaseExtension(t *testing.T) {
	path := writeFile(t, "doc.txt", []byte("hello"))
	if got := Extract(path, ".TXT"); got != "hello" {
		t.Errorf("Extract with uppercase extension = %q, want %q", got, "hello")
	}
}

func TestExtractInvalidUTF8(t *testing.T) {
	path := writeFile(t, "doc.txt", []byte{0xff, 0xfe, 0xfd})
	if got := Extract(path, ".txt"); got != "" {
		t.Errorf("Extract(invalid UTF-8) = %q, want empty", got)
	}
}

func TestExtractMissingFile(t *testing.T) {
	for _, ext := range []string{".txt", ".pdf", ".docx"} {
		if got := Extract("/nonexistent/file"+ext, ext); got != "" {
			t.Errorf("Extract(missing %s) = %q, want empty", ext, got)
		}
	}
}

func TestExtractUnsupportedExtension(t *testing.T) {
	path := writeFile(t, "doc.xlsx", []byte("data"))
	if got := Extract(path, ".xlsx"); got != "" {
		t.Errorf("Extract(.xlsx) = %q, want empty", got)
	}
}

func TestExtractCorruptPDF(t *testing.T) {
	path := writeFile(t, "doc.pdf", []byte("not a pdf at all"))
	if got := Extract(path, ".pdf"); got != "" {
		t.Errorf("Extract(corrupt pdf) = %q, want empty", got)
	}
}

func TestExtractCorruptDOCX(t *testing.T) {
	path := writeFile(t, "doc.docx", []byte("not a zip archive"))
	if got := Extract(path, ".docx"); got != "" {
		t.Errorf("Extract(corrupt docx) = %q, want empty", got)
	}
}

func TestExtractTextFromXML(t *testing.T) {
	tests := []struct {
		name string
		xml  string
		want string
	}{
		{
			"runs and attributes",
			`<w:p><w:r><w:t>Hello</w:t></w:r><w:r><w:t xml:space="preserve"> world</w:t></w:r></w:p>`,
			"Hello world",
		},
		{
			"paragraph separation",
			`<w:p><w:r><w:t>First</w:t></w:r></w:p><w:p><w:r><w:t>Second</w:t></w:r></w:p>`,
			"First\nSecond",
		},
		{
			// Tags sharing the "<w:t" prefix are not text runs.
			"tab and table markup",
			`<w:tbl><w:tr><w:tc><w:p><w:r><w:tab/><w:t>Cell</w:t></w:r></w:p></w:tc></w:tr></w:tbl>`,
			"Cell",
		},
		{
			"self-closing empty run",
			`<w:p><w:r><w:t/><w:t>After empty</w:t></w:r></w:p>`,
			"After empty",
		},
		{
			"no text runs",
			`<w:p><w:r><w:tab/></w:r></w:p>`,
			"",
		},
	}
	for _, tt := range tests {
		if got := extractTextFromXML(tt.xml); got != tt.want {
			t.Errorf("%s: extractTextFromXML = %q, want %q", tt.name, got, tt.want)
		}
	}
}
