// Package ai turns free-text prompts into document content fragments.
// A live model backend is used when configured; the clause catalog
// answers otherwise, so content generation always produces something.
package ai

import "context"

// Resolver produces an HTML fragment for a prompt. docType names the
// kind of document the fragment will be merged into (contract, will,
// notice, ...).
type Resolver interface {
	Resolve(ctx context.Context, prompt, docType string) (string, error)
}

// Response is the wire shape of a generation call. The prompt is
// echoed back so the client can correlate async responses.
type Response struct {
	Success bool   `json:"success"`
	Content string `json:"content"`
	Prompt  string `json:"prompt"`
}
