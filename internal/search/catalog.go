package search

import "strings"

// clauseIndex is the built-in result set used when no search backend
// is configured. Matching is case-insensitive substring on either the
// clause text or its context; a blank query matches nothing.
var clauseIndex = []Result{
	{Text: "confidentiality clause", Position: 245, Context: "regarding confidential information"},
	{Text: "payment terms", Position: 1024, Context: "net 30 days payment terms"},
	{Text: "termination", Position: 1856, Context: "agreement termination conditions"},
}

// Catalog serves clause searches from the built-in index.
type Catalog struct{}

func NewCatalog() *Catalog {
	return &Catalog{}
}

func (c *Catalog) Search(q Query) ([]Result, error) {
	query := strings.ToLower(strings.TrimSpace(q.Text))
	if query == "" {
		return []Result{}, nil
	}

	results := []Result{}
	for _, entry := range clauseIndex {
		if strings.Contains(strings.ToLower(entry.Text), query) ||
			strings.Contains(strings.ToLower(entry.Context), query) {
			results = append(results, entry)
		}
	}
	return results, nil
}

func (c *Catalog) Healthy() bool { return true }
