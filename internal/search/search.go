package search

// Result is a single clause hit. Position is the character offset of
// the clause within the document body.
type Result struct {
	Text     string `json:"text"`
	Position int    `json:"position"`
	Context  string `json:"context"`
}

// Query describes a clause search request.
type Query struct {
	Text    string
	DocType string // empty = all types
	Limit   int
}

// Response is the envelope returned by the search endpoint.
type Response struct {
	Success bool     `json:"success"`
	Results []Result `json:"results"`
	Query   string   `json:"query"`
	Count   int      `json:"count"`
}

// Searcher can execute a clause search.
type Searcher interface {
	Search(q Query) ([]Result, error)
	Healthy() bool
}

// ClauseRecord is the data we index for a clause occurrence.
type ClauseRecord struct {
	ID         string `json:"id"`
	DocumentID string `json:"documentId"`
	DocType    string `json:"docType"`
	Text       string `json:"text"`
	Position   int    `json:"position"`
	Context    string `json:"context"`
}
