package export

import (
	"fmt"
	"html/template"
	"strings"
)

// PDFRenderer converts a rendered HTML page into PDF bytes. The
// default implementation drives headless Chrome; tests substitute a
// fake so they do not need a browser.
type PDFRenderer func(html string) ([]byte, error)

// Service builds downloadable artifacts from document content.
type Service struct {
	renderPDF PDFRenderer
}

func NewService() *Service {
	return &Service{renderPDF: renderChromePDF}
}

// NewServiceWithRenderer is the test seam.
func NewServiceWithRenderer(r PDFRenderer) *Service {
	return &Service{renderPDF: r}
}

// Export converts the request's content into the requested format.
// Unknown formats fail with ErrUnsupportedFormat before any rendering
// work happens.
func (s *Service) Export(req Request) (*Result, error) {
	format := Format(strings.ToLower(strings.TrimSpace(string(req.Format))))
	if !ValidFormat(format) {
		return nil, ErrUnsupportedFormat
	}

	title := strings.TrimSpace(req.Title)
	if title == "" {
		title = "Untitled Document"
	}

	data := TemplateData{
		Title:       title,
		ContentHTML: template.HTML(req.Content),
		Font:        req.Font,
		FontSize:    req.FontSize,
		LineHeight:  req.LineHeight,
	}
	if data.Font == "" {
		data.Font = "Times New Roman"
	}
	if data.FontSize == "" {
		data.FontSize = "12"
	}
	if data.LineHeight == "" {
		data.LineHeight = "1.5"
	}

	filename := fmt.Sprintf("%s.%s", SanitizeFilename(title), format)

	switch format {
	case FormatPDF:
		html, err := RenderDocumentHTML(data)
		if err != nil {
			return nil, fmt.Errorf("render html: %w", err)
		}
		pdf, err := s.renderPDF(html)
		if err != nil {
			return nil, err
		}
		return &Result{Data: pdf, Filename: filename, MimeType: format.MimeType()}, nil
	case FormatDOCX, FormatDOC:
		html, err := BuildWordHTML(data)
		if err != nil {
			return nil, fmt.Errorf("render word html: %w", err)
		}
		return &Result{Data: []byte(html), Filename: filename, MimeType: format.MimeType()}, nil
	default:
		return nil, ErrUnsupportedFormat
	}
}
