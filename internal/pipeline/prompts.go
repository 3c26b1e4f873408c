package pipeline

import (
	"fmt"
	"strings"

	"github.com/alfredang/trip-advisor/internal/trip"
)

// paramBlock interpolates the trip parameters shared by every prompt.
func paramBlock(req trip.Request) string {
	prefs := strings.TrimSpace(req.Preferences)
	if prefs == "" {
		prefs = "none"
	}
	return fmt.Sprintf(`Trip parameters:
- Destination: %s
- Duration: %d days
- Budget: $%.0f USD
- Special preferences: %s`, strings.TrimSpace(req.Destination), req.Days, req.Budget, prefs)
}

// PlannerPrompt builds the itinerary instruction.
func PlannerPrompt(req trip.Request) string {
	return `You are a travel planner.
Create a day-by-day travel itinerary. Be concise and respond in one message.
Include key attractions and activities for each day.

` + paramBlock(req)
}

// BudgetPrompt builds the cost-estimation instruction.
func BudgetPrompt(req trip.Request) string {
	return `You are a travel budget analyst.
Estimate travel costs for lodging, food, transport, and activities. Be concise and respond in one message.
Provide a breakdown and a total estimate, and note whether the stated budget is realistic.

` + paramBlock(req)
}

// LocalGuidePrompt builds the local-recommendations instruction.
func LocalGuidePrompt(req trip.Request) string {
	return `You are a local guide.
Provide local food recommendations, restaurant suggestions, and cultural tips. Be concise and respond in one message.

` + paramBlock(req)
}

// TravelPrompt builds the final synthesis instruction. It embeds the
// full text of every previously produced output so the model can
// combine them into one coherent plan.
func TravelPrompt(req trip.Request, prior []trip.Output) string {
	var b strings.Builder
	b.WriteString(`You are the lead travel agent.
Combine the sections below into one final, coherent trip plan. Be concise and respond in one message.
Resolve any contradictions between sections and reference the trip duration and total budget explicitly.

`)
	b.WriteString(paramBlock(req))
	for _, out := range prior {
		fmt.Fprintf(&b, "\n\n[%s]\n%s", out.Agent.Label(), strings.TrimSpace(out.Text))
	}
	return b.String()
}

// ResearchQuery derives the web-search query for the research step.
func ResearchQuery(req trip.Request) string {
	q := strings.TrimSpace(req.Destination) + " current travel updates"
	if prefs := strings.TrimSpace(req.Preferences); prefs != "" {
		q += " " + prefs
	}
	return q
}
