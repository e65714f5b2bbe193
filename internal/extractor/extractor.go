package extractor

import (
	"fmt"
	"os"
	"strings"
	"unicode/utf8"

	"github.com/ledongthuc/pdf"
	"github.com/nguyenthenguyen/docx"
	"github.com/rs/zerolog/log"
)

// Extract converts the file at path to plain text according to its declared
// extension (".pdf", ".txt" or ".docx", lowercased). Any read or parse
// failure, and any unsupported extension, yields an empty string: callers
// treat empty text as "extraction failed" and must not chunk or summarize it.
func Extract(path, ext string) string {
	var (
		text string
		err  error
	)
	switch strings.ToLower(ext) {
	case ".pdf":
		text, err = extractPDF(path)
	case ".txt":
		text, err = extractText(path)
	case ".docx":
		text, err = extractDOCX(path)
	default:
		err = fmt.Errorf("unsupported file format: %s", ext)
	}
	if err != nil {
		log.Error().Err(err).Str("path", path).Msg("Error extracting document text")
		return ""
	}
	return text
}

// extractPDF concatenates page-level text in page order.
func extractPDF(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	stat, err := f.Stat()
	if err != nil {
		return "", err
	}

	reader, err := pdf.NewReader(f, stat.Size())
	if err != nil {
		return "", err
	}

	var text strings.Builder
	numPages := reader.NumPage()
	for i := 1; i <= numPages; i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}
		pageText, err := page.GetPlainText(nil)
		if err != nil {
			return "", err
		}
		text.WriteString(pageText)
	}
	return text.String(), nil
}

func extractText(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	if !utf8.Valid(data) {
		return "", fmt.Errorf("file %s is not valid UTF-8 text", path)
	}
	return string(data), nil
}

func extractDOCX(path string) (string, error) {
	r, err := docx.ReadDocxFile(path)
	if err != nil {
		return "", err
	}
	defer r.Close()

	content := r.Editable().GetContent()
	return extractTextFromXML(content), nil
}

// extractTextFromXML pulls the visible run text out of word-processing XML,
// discarding all markup. Runs inside one paragraph join without separators;
// paragraphs are separated by newlines.
func extractTextFromXML(xmlContent string) string {
	var text strings.Builder
	paragraphs := strings.Split(xmlContent, "</w:p>")
	for _, para := range paragraphs {
		wrote := false
		parts := strings.Split(para, "<w:t")
		for i, part := range parts {
			if i == 0 {
				continue
			}
			// Only "<w:t>" and "<w:t attr...>" are text runs; the split
			// prefix also matches tags like <w:tab/> and <w:tbl>.
			if part == "" || (part[0] != '>' && part[0] != ' ') {
				continue
			}
			// Skip past the tag's attributes to its closing ">".
			gt := strings.Index(part, ">")
			if gt < 0 {
				continue
			}
			body := part[gt+1:]
			endIdx := strings.Index(body, "</w:t>")
			if endIdx >= 0 {
				text.WriteString(body[:endIdx])
				wrote = true
			}
		}
		if wrote {
			text.WriteString("\n")
		}
	}
	return strings.TrimSpace(text.String())
}
