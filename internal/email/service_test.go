package email

import (
	"strings"
	"testing"
)

func TestServiceIsConfigured(t *testing.T) {
	tests := []struct {
		name     string
		config   Config
		expected bool
	}{
		{
			name:     "empty config",
			config:   Config{},
			expected: false,
		},
		{
			name: "missing host",
			config: Config{
				Port: "587",
				From: "share@legalitex.com",
			},
			expected: false,
		},
		{
			name: "missing port",
			config: Config{
				Host: "smtp.example.com",
				From: "share@legalitex.com",
			},
			expected: false,
		},
		{
			name: "missing from",
			config: Config{
				Host: "smtp.example.com",
				Port: "587",
			},
			expected: false,
		},
		{
			name: "fully configured",
			config: Config{
				Host: "smtp.example.com",
				Port: "587",
				From: "share@legalitex.com",
			},
			expected: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := NewService(tt.config)
			if svc.IsConfigured() != tt.expected {
				t.Errorf("IsConfigured() = %v, want %v", svc.IsConfigured(), tt.expected)
			}
		})
	}
}

func TestRenderShareTemplate(t *testing.T) {
	data := ShareData{
		AppName:       "LegaliteX",
		DocumentTitle: "Service Agreement",
		SharedBy:      "sam taylor",
		ShareLink:     "https://legalitex.com/shared/doc_123",
	}

	html, err := renderTemplate(shareEmailTemplate, data)
	if err != nil {
		t.Fatalf("renderTemplate failed: %v", err)
	}

	if !strings.Contains(html, "LegaliteX") {
		t.Error("template should contain app name")
	}
	if !strings.Contains(html, "Service Agreement") {
		t.Error("template should contain document title")
	}
	if !strings.Contains(html, "sam taylor") {
		t.Error("template should contain sharer name")
	}
	if !strings.Contains(html, "https://legalitex.com/shared/doc_123") {
		t.Error("template should contain share link")
	}
}

func TestRenderShareTemplateAnonymous(t *testing.T) {
	data := ShareData{
		AppName:       "LegaliteX",
		DocumentTitle: "NDA",
		ShareLink:     "https://legalitex.com/shared/doc_9",
	}

	html, err := renderTemplate(shareEmailTemplate, data)
	if err != nil {
		t.Fatalf("renderTemplate failed: %v", err)
	}

	if !strings.Contains(html, "was shared with you") {
		t.Error("template should fall back to anonymous wording")
	}
}
