package trip

import (
	"fmt"
	"strings"
	"time"
)

// Agent identifies one step of the planning sequence.
type Agent string

const (
	AgentPlanner    Agent = "planner"
	AgentBudget     Agent = "budget"
	AgentLocalGuide Agent = "local_guide"
	AgentResearch   Agent = "research"
	AgentTravel     Agent = "travel"
)

// Label returns the display heading used for the agent's plan section.
func (a Agent) Label() string {
	switch a {
	case AgentPlanner:
		return "Itinerary"
	case AgentBudget:
		return "Budget Breakdown"
	case AgentLocalGuide:
		return "Local Tips"
	case AgentResearch:
		return "Research Notes"
	case AgentTravel:
		return "Final Plan"
	}
	return string(a)
}

// Request carries the user-supplied parameters for one planning run.
// It is immutable once submitted.
type Request struct {
	Destination string  `json:"destination"`
	Days        int     `json:"days"`
	Budget      float64 `json:"budget"`
	Preferences string  `json:"preferences,omitempty"`
}

const maxDays = 30

// Validate checks the request before any outbound call is issued.
func (r Request) Validate() error {
	if strings.TrimSpace(r.Destination) == "" {
		return &ValidationError{Field: "destination", Reason: "is required"}
	}
	if r.Days <= 0 {
		return &ValidationError{Field: "days", Reason: "must be positive"}
	}
	if r.Days > maxDays {
		return &ValidationError{Field: "days", Reason: fmt.Sprintf("must be at most %d", maxDays)}
	}
	if r.Budget <= 0 {
		return &ValidationError{Field: "budget", Reason: "must be positive"}
	}
	return nil
}

// Output is the text result of one agent step. Never mutated after creation.
type Output struct {
	Agent Agent  `json:"agent"`
	Text  string `json:"text"`
}

// Plan is the ordered, labeled concatenation of all agent outputs for
// one request. The travel output is always last.
type Plan struct {
	Request Request  `json:"request"`
	Outputs []Output `json:"outputs"`
}

// Section returns the output for the given agent, if present.
func (p Plan) Section(a Agent) (Output, bool) {
	for _, out := range p.Outputs {
		if out.Agent == a {
			return out, true
		}
	}
	return Output{}, false
}

// Render produces the plan as a markdown document with one labeled
// section per agent output, in sequence order. Content is untouched
// beyond labeling.
func (p Plan) Render() string {
	var b strings.Builder
	fmt.Fprintf(&b, "# %s Trip Plan (%d days)\n", strings.TrimSpace(p.Request.Destination), p.Request.Days)
	for _, out := range p.Outputs {
		fmt.Fprintf(&b, "\n## %s\n\n%s\n", out.Agent.Label(), strings.TrimSpace(out.Text))
	}
	return b.String()
}

// Filename returns the export file name for the plan: lowercased
// destination with spaces collapsed to underscores, suffixed with the
// given date.
func (p Plan) Filename(now time.Time) string {
	dest := strings.ToLower(strings.TrimSpace(p.Request.Destination))
	dest = strings.Join(strings.Fields(dest), "_")
	return fmt.Sprintf("%s_trip_plan_%s.md", dest, now.Format("2006-01-02"))
}
