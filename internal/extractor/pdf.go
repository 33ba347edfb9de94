// Package extractor turns the binary payslip deliverables (password
// protected ZIP archives, possibly encrypted PDFs) into the plain text
// line stream the parsers consume. It is a collaborator around the core:
// nothing here knows about payslip fields.
package extractor

import (
	"fmt"
	"log/slog"
	"os/exec"
	"strings"

	"github.com/ledongthuc/pdf"
)

// ExtractText reads a payslip PDF and returns its text layer as one
// newline-delimited blob, one text item per line.
//
// pdftotext (poppler-utils) is tried first: the field offsets were
// measured against its output ordering. The pure-Go library is the
// fallback for hosts without poppler.
func ExtractText(filePath string) (string, error) {
	text, popplerErr := extractWithPdftotext(filePath)
	if popplerErr == nil && isReadableText(text) {
		return text, nil
	}
	slog.Debug("pdftotext unavailable or unreadable, falling back to library",
		"path", filePath, "err", popplerErr)

	text, libErr := extractWithLibrary(filePath)
	if libErr == nil && isReadableText(text) {
		return text, nil
	}

	if libErr != nil {
		return "", fmt.Errorf("PDF text extraction failed: %v. The PDF may be image-based or use custom font encodings", libErr)
	}
	return "", fmt.Errorf("no readable text could be extracted from %q", filePath)
}

func extractWithPdftotext(filePath string) (string, error) {
	if _, err := exec.LookPath("pdftotext"); err != nil {
		return "", fmt.Errorf("pdftotext not available: %v", err)
	}
	out, err := exec.Command("pdftotext", filePath, "-").Output()
	if err != nil {
		return "", fmt.Errorf("pdftotext failed: %v", err)
	}
	return string(out), nil
}

// extractWithLibrary walks the content stream of each page and emits every
// text object on its own line, approximating pdftotext's reading order.
func extractWithLibrary(filePath string) (text string, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("PDF library crashed: %v", r)
		}
	}()

	f, r, openErr := pdf.Open(filePath)
	if openErr != nil {
		return "", openErr
	}
	defer f.Close()

	numPages := r.NumPage()
	if numPages == 0 {
		return "", fmt.Errorf("PDF has no pages")
	}

	var sb strings.Builder
	for i := 1; i <= numPages; i++ {
		page := r.Page(i)
		if page.V.IsNull() {
			continue
		}
		content := page.Content()
		for _, t := range content.Text {
			s := strings.TrimSpace(t.S)
			if s == "" {
				continue
			}
			sb.WriteString(s)
			sb.WriteByte('\n')
		}
	}
	return sb.String(), nil
}

// commonWords that appear on every payslip of this layout family. If the
// extracted text contains none of them, it is likely garbage.
var commonWords = []string{
	"salary", "tax", "insurance", "working hours", "payments", "hodin",
}

func isReadableText(text string) bool {
	if len(strings.TrimSpace(text)) <= 50 {
		return false
	}
	lower := strings.ToLower(text)
	for _, word := range commonWords {
		if strings.Contains(lower, word) {
			return true
		}
	}
	return false
}
