// Package export converts document content into downloadable artifacts.
package export

import "errors"

// Format represents the export output format
type Format string

const (
	FormatPDF  Format = "pdf"
	FormatDOCX Format = "docx"
	FormatDOC  Format = "doc"
)

// Request contains parameters for an export operation
type Request struct {
	Content    string `json:"content"`
	Title      string `json:"title"`
	Format     Format `json:"format"`
	Font       string `json:"font"`
	FontSize   string `json:"fontSize"`
	LineHeight string `json:"lineHeight"`
}

// Result contains the export output
type Result struct {
	Data     []byte
	Filename string
	MimeType string
}

var (
	// ErrUnsupportedFormat indicates the requested format is not one of
	// pdf, docx, doc.
	ErrUnsupportedFormat = errors.New("unsupported export format")
	// ErrPDFDependencyMissing indicates PDF export runtime dependencies are unavailable.
	ErrPDFDependencyMissing = errors.New("export pdf dependency missing")
)

// ValidFormat reports whether f is a supported export format.
func ValidFormat(f Format) bool {
	switch f {
	case FormatPDF, FormatDOCX, FormatDOC:
		return true
	}
	return false
}

func (f Format) MimeType() string {
	switch f {
	case FormatPDF:
		return "application/pdf"
	case FormatDOCX:
		return "application/vnd.openxmlformats-officedocument.wordprocessingml.document"
	case FormatDOC:
		return "application/msword"
	default:
		return "application/octet-stream"
	}
}
