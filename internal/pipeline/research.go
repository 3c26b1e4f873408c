package pipeline

import (
	"context"
	"fmt"
	"strings"

	"github.com/alfredang/trip-advisor/internal/search"
	"github.com/alfredang/trip-advisor/internal/trip"
)

// ResearchPolicy decides whether the research step runs for a request.
// It is an explicit predicate so the trigger is configurable and
// testable rather than buried in the sequence.
type ResearchPolicy func(req trip.Request) bool

// NeverResearch skips the research step for every request.
func NeverResearch(trip.Request) bool { return false }

// AlwaysResearch runs the research step for every request.
func AlwaysResearch(trip.Request) bool { return true }

// defaultKeywords are preference terms that usually need current
// information rather than model knowledge.
var defaultKeywords = []string{
	"current", "latest", "now", "today", "news",
	"weather", "events", "festival", "safety", "advisory", "visa",
}

// KeywordResearch runs research only when the preferences mention one
// of the given terms. With no terms it falls back to the default list.
func KeywordResearch(keywords ...string) ResearchPolicy {
	if len(keywords) == 0 {
		keywords = defaultKeywords
	}
	lowered := make([]string, len(keywords))
	for i, k := range keywords {
		lowered[i] = strings.ToLower(strings.TrimSpace(k))
	}
	return func(req trip.Request) bool {
		prefs := strings.ToLower(req.Preferences)
		for _, k := range lowered {
			if k != "" && strings.Contains(prefs, k) {
				return true
			}
		}
		return false
	}
}

// ResearchStep issues one web-search query and captures the snippets as
// an output. It makes no model call of its own.
type ResearchStep struct{ Search search.Provider }

func (p *ResearchStep) Run(ctx context.Context, req trip.Request) (trip.Output, error) {
	results, err := p.Search.Search(ctx, ResearchQuery(req))
	if err != nil {
		return trip.Output{}, &trip.UpstreamError{Service: "search", Err: err}
	}
	return trip.Output{Agent: trip.AgentResearch, Text: formatResults(req, results)}, nil
}

func formatResults(req trip.Request, results []search.Result) string {
	dest := strings.TrimSpace(req.Destination)
	if len(results) == 0 {
		return fmt.Sprintf("No current travel updates found for %s.", dest)
	}
	var b strings.Builder
	fmt.Fprintf(&b, "Current travel updates for %s:\n", dest)
	for _, r := range results {
		fmt.Fprintf(&b, "\n- %s: %s", strings.TrimSpace(r.Title), strings.TrimSpace(r.Snippet))
		if r.URL != "" {
			fmt.Fprintf(&b, " (%s)", r.URL)
		}
	}
	return b.String()
}
