package search

import (
	"fmt"
	"log"
	"strings"
)

// clauseTerms are the phrases pulled out of saved documents for the
// clause index.
var clauseTerms = []string{
	"confidentiality clause",
	"confidentiality",
	"payment terms",
	"termination",
	"indemnification",
	"governing law",
	"limitation of liability",
}

const contextRadius = 40

// Service is the facade that tries Meilisearch first and falls back
// to the built-in catalog.
type Service struct {
	meili   *Meili
	catalog *Catalog
}

// NewService creates a search service. meili may be nil if
// Meilisearch is not configured.
func NewService(meili *Meili) *Service {
	return &Service{meili: meili, catalog: NewCatalog()}
}

// Search tries Meilisearch if healthy, otherwise the catalog. Blank
// queries short-circuit to an empty result set.
func (s *Service) Search(q Query) Response {
	if strings.TrimSpace(q.Text) == "" {
		return Response{Success: true, Results: []Result{}, Query: q.Text, Count: 0}
	}

	if s.meili != nil && s.meili.Healthy() {
		results, err := s.meili.Search(q)
		if err == nil {
			return Response{Success: true, Results: nonNil(results), Query: q.Text, Count: len(results)}
		}
		log.Printf("search: meilisearch error, falling back to catalog: %v", err)
	}

	results, _ := s.catalog.Search(q)
	return Response{Success: true, Results: nonNil(results), Query: q.Text, Count: len(results)}
}

// IndexDocument extracts clause occurrences from a saved document and
// pushes them to Meilisearch (fire-and-forget).
func (s *Service) IndexDocument(documentID, docType, content string) {
	if s.meili == nil || !s.meili.Healthy() {
		return
	}
	records := ExtractClauses(documentID, docType, content)
	go func() {
		if err := s.meili.DeleteDocumentClauses(documentID); err != nil {
			log.Printf("search: clear clauses for %s: %v", documentID, err)
		}
		if err := s.meili.IndexClauses(records); err != nil {
			log.Printf("search: index clauses for %s: %v", documentID, err)
		}
	}()
}

// ExtractClauses scans document content for known clause phrases and
// records each first occurrence with its offset and surrounding text.
func ExtractClauses(documentID, docType, content string) []ClauseRecord {
	lowered := strings.ToLower(content)
	var records []ClauseRecord
	seen := make(map[int]bool)

	for _, term := range clauseTerms {
		pos := strings.Index(lowered, term)
		if pos < 0 || seen[pos] {
			continue
		}
		seen[pos] = true

		start := pos - contextRadius
		if start < 0 {
			start = 0
		}
		end := pos + len(term) + contextRadius
		if end > len(content) {
			end = len(content)
		}

		records = append(records, ClauseRecord{
			ID:         fmt.Sprintf("%s-%d", documentID, pos),
			DocumentID: documentID,
			DocType:    docType,
			Text:       term,
			Position:   pos,
			Context:    strings.TrimSpace(content[start:end]),
		})
	}
	return records
}

func nonNil(r []Result) []Result {
	if r == nil {
		return []Result{}
	}
	return r
}
