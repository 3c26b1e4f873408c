// Package search provides web-search providers for the research step.
package search

import "context"

// Result is a single item returned by a Provider.
type Result struct {
	Title   string
	URL     string
	Snippet string
}

// Provider issues one search query and returns text snippets.
type Provider interface {
	Search(ctx context.Context, query string) ([]Result, error)
}
