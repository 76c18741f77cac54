package search

import "context"

// Searcher is the common interface over news/discussion feed backends.
type Searcher interface {
	Search(ctx context.Context, req *Request) (*Response, error)
}

// Request is a backend-agnostic search request.
type Request struct {
	Query      string
	Topic      string // "news" or "general"
	MaxResults int
	StartDate  string // Format: YYYY-MM-DD
	EndDate    string // Format: YYYY-MM-DD
}

// Response is a backend-agnostic search response.
type Response struct {
	Results []Result
}

// Result is a single search hit.
type Result struct {
	Title         string
	URL           string
	Content       string
	Score         float64
	PublishedDate string
}
