package search

import (
	"context"
	"sync"
)

// FakeProvider returns canned results for offline use and tests.
type FakeProvider struct {
	mu      sync.Mutex
	Results []Result
	Err     error
	queries []string
}

func (f *FakeProvider) Search(ctx context.Context, query string) ([]Result, error) {
	f.mu.Lock()
	f.queries = append(f.queries, query)
	f.mu.Unlock()
	if f.Err != nil {
		return nil, f.Err
	}
	return f.Results, nil
}

// Queries returns the queries seen so far, in call order.
func (f *FakeProvider) Queries() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]string, len(f.queries))
	copy(out, f.queries)
	return out
}
