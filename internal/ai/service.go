package ai

import (
	"context"
	"log"
	"strings"
)

// Service answers generation requests. When a model resolver is
// configured it is tried first; the clause catalog covers model
// failures and unconfigured deployments, so Generate never errors.
type Service struct {
	model   Resolver
	catalog *CatalogResolver
}

// NewService builds a Service. model may be nil.
func NewService(model Resolver) *Service {
	return &Service{model: model, catalog: NewCatalogResolver()}
}

func (s *Service) Generate(ctx context.Context, prompt, docType string) Response {
	if s.model != nil {
		content, err := s.model.Resolve(ctx, prompt, docType)
		if err == nil && strings.TrimSpace(content) != "" {
			return Response{Success: true, Content: content, Prompt: prompt}
		}
		if err != nil {
			log.Printf("ai: model resolver failed, using catalog: %v", err)
		}
	}

	content, _ := s.catalog.Resolve(ctx, prompt, docType)
	return Response{Success: true, Content: content, Prompt: prompt}
}
