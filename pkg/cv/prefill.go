package cv

import (
	"archive/zip"
	"bytes"
	"errors"
	"io"
	"path/filepath"
	"regexp"
	"strings"

	pdf "github.com/ledongthuc/pdf"
)

// Prefill: extract plain text from an uploaded PDF/DOCX résumé to seed the
// summary of a new structured CV draft. The uploaded file itself is never
// treated as a CV document.

// summaryLimit mirrors the editor's convention for the summary field.
const summaryLimit = 500

// ExtractText pulls plain text out of a .pdf or .docx file.
func ExtractText(filename string, data []byte) (string, error) {
	ext := strings.ToLower(filepath.Ext(filename))
	switch ext {
	case ".pdf":
		return extractTextFromPDF(data)
	case ".docx":
		return extractTextFromDocx(data)
	default:
		return "", errors.New("unsupported file format: only pdf and docx are allowed")
	}
}

// PrefillDraft builds an empty CV with the summary seeded from the extracted
// text, scrubbed and truncated to the editor's summary limit.
func PrefillDraft(filename string, data []byte) (StructuredCV, error) {
	text, err := ExtractText(filename, data)
	if err != nil {
		return StructuredCV{}, err
	}
	summary := ScrubPII(text)
	if len([]rune(summary)) > summaryLimit {
		runes := []rune(summary)
		summary = strings.TrimSpace(string(runes[:summaryLimit]))
	}
	return StructuredCV{Summary: summary}, nil
}

func extractTextFromPDF(data []byte) (string, error) {
	reader := bytes.NewReader(data)
	r, err := pdf.NewReader(reader, int64(len(data)))
	if err != nil {
		return "", err
	}
	rs, err := r.GetPlainText()
	if err != nil {
		return "", err
	}
	var buf bytes.Buffer
	if _, err = io.Copy(&buf, rs); err != nil {
		return "", err
	}
	return normalizeWhitespace(buf.String()), nil
}

func extractTextFromDocx(data []byte) (string, error) {
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", err
	}
	var docXML []byte
	for _, f := range zr.File {
		if f.Name == "word/document.xml" {
			rc, err := f.Open()
			if err != nil {
				return "", err
			}
			docXML, err = io.ReadAll(rc)
			rc.Close()
			if err != nil {
				return "", err
			}
			break
		}
	}
	if len(docXML) == 0 {
		return "", errors.New("no document.xml found in docx")
	}
	xml := string(docXML)
	xml = strings.ReplaceAll(xml, "</w:p>", "\n")
	xml = strings.ReplaceAll(xml, "<w:tab/>", "\t")
	txt := xmlTags.ReplaceAllString(xml, " ")
	return normalizeWhitespace(txt), nil
}

var xmlTags = regexp.MustCompile(`<[^>]+>`)

func normalizeWhitespace(s string) string {
	s = scrubSpaces.ReplaceAllString(s, " ")
	s = strings.ReplaceAll(s, "\u00A0", " ")
	s = scrubNewlines.ReplaceAllString(s, "\n")
	return strings.TrimSpace(s)
}
