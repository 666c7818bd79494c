package extractor

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/ledongthuc/pdf"
)

// wordGap is the horizontal gap, relative to the font size, above which two
// glyph runs on one row are separated by a space.
const wordGap = 0.15

// ExtractPDFLines reads every page of a PDF and returns its text rows in
// reading order, page by page.
func ExtractPDFLines(data []byte) ([]string, error) {
	reader := bytes.NewReader(data)

	pdfReader, err := pdf.NewReader(reader, int64(len(data)))
	if err != nil {
		return nil, fmt.Errorf("%w: failed to create PDF reader: %v", ErrUnreadableDocument, err)
	}

	var lines []string
	numPages := pdfReader.NumPage()

	for i := 1; i <= numPages; i++ {
		page := pdfReader.Page(i)
		if page.V.IsNull() {
			continue
		}

		rows, err := page.GetTextByRow()
		if err != nil {
			return nil, fmt.Errorf("%w: page %d: %v", ErrUnreadableDocument, i, err)
		}

		for _, row := range rows {
			lines = append(lines, joinRow(row.Content))
		}
	}

	if !hasText(lines) {
		return nil, fmt.Errorf("%w: no text could be extracted from PDF", ErrUnreadableDocument)
	}

	return lines, nil
}

// joinRow concatenates the glyph runs of one row, inserting a space where
// the gap between runs is wide enough to be a word break.
func joinRow(texts pdf.TextHorizontal) string {
	var b strings.Builder
	for i, t := range texts {
		if i > 0 {
			prev := texts[i-1]
			gap := t.X - (prev.X + prev.W)
			if gap > wordGap*t.FontSize && !strings.HasSuffix(prev.S, " ") && !strings.HasPrefix(t.S, " ") {
				b.WriteByte(' ')
			}
		}
		b.WriteString(t.S)
	}
	return b.String()
}

func hasText(lines []string) bool {
	for _, l := range lines {
		if strings.TrimSpace(l) != "" {
			return true
		}
	}
	return false
}
