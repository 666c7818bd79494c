// Package extractor turns uploaded documents into the ordered sequence of
// text lines the receipt parser works on.
package extractor

import (
	"bytes"
	"errors"
	"fmt"
)

var (
	ErrUnreadableDocument     = errors.New("unreadable document")
	ErrUnsupportedContentType = errors.New("unsupported content type")
)

const (
	ContentTypePDF  = "application/pdf"
	ContentTypeText = "text/plain"
)

var pdfMagic = []byte("%PDF-")

// ExtractLines picks the extractor for contentType. An empty content type
// is sniffed from the data.
func ExtractLines(data []byte, contentType string) ([]string, error) {
	if contentType == "" {
		contentType = DetectContentType(data)
	}

	switch {
	case contentType == ContentTypePDF:
		return ExtractPDFLines(data)
	case IsTextContentType(contentType):
		return ExtractTXTLines(data)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedContentType, contentType)
	}
}

// DetectContentType tells PDFs from text dumps by the PDF header.
func DetectContentType(data []byte) string {
	if bytes.HasPrefix(data, pdfMagic) {
		return ContentTypePDF
	}
	return ContentTypeText
}

// IsTextContentType checks the plain-text MIME variants browsers send.
func IsTextContentType(contentType string) bool {
	switch contentType {
	case "text/plain", "text/txt", "application/txt", "application/x-txt":
		return true
	}
	return false
}
