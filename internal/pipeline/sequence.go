// Package pipeline runs the fixed agent sequence that turns one trip
// request into a plan: Planner, Budget, Local Guide, optional Research,
// then the Travel synthesis. Each later step depends on the outputs of
// the earlier ones, so the sequence is strictly serial.
package pipeline

import (
	"context"

	"github.com/alfredang/trip-advisor/internal/llm"
	"github.com/alfredang/trip-advisor/internal/search"
	"github.com/alfredang/trip-advisor/internal/trip"
)

// Observer is notified around each step. Implementations must be fast;
// the sequence blocks on them.
type Observer interface {
	AgentStarted(agent trip.Agent)
	AgentFinished(agent trip.Agent, out trip.Output, err error)
}

// Sequence wires the agent steps to one LLM client and one search
// provider. Research is skipped when the policy declines, when no
// provider is configured, or when no policy is set.
type Sequence struct {
	LLM      llm.Client
	Search   search.Provider
	Research ResearchPolicy
}

// Run validates the request and executes the sequence. On any upstream
// failure it returns the error with no partial plan.
func (s *Sequence) Run(ctx context.Context, req trip.Request, obs Observer) (trip.Plan, error) {
	if err := req.Validate(); err != nil {
		return trip.Plan{}, err
	}

	outputs := make([]trip.Output, 0, 5)

	planner := &PlannerStep{LLM: s.LLM}
	out, err := observe(obs, trip.AgentPlanner, func() (trip.Output, error) { return planner.Run(ctx, req) })
	if err != nil {
		return trip.Plan{}, err
	}
	outputs = append(outputs, out)

	budget := &BudgetStep{LLM: s.LLM}
	out, err = observe(obs, trip.AgentBudget, func() (trip.Output, error) { return budget.Run(ctx, req) })
	if err != nil {
		return trip.Plan{}, err
	}
	outputs = append(outputs, out)

	guide := &LocalGuideStep{LLM: s.LLM}
	out, err = observe(obs, trip.AgentLocalGuide, func() (trip.Output, error) { return guide.Run(ctx, req) })
	if err != nil {
		return trip.Plan{}, err
	}
	outputs = append(outputs, out)

	if s.Search != nil && s.Research != nil && s.Research(req) {
		research := &ResearchStep{Search: s.Search}
		out, err = observe(obs, trip.AgentResearch, func() (trip.Output, error) { return research.Run(ctx, req) })
		if err != nil {
			return trip.Plan{}, err
		}
		outputs = append(outputs, out)
	}

	travel := &TravelStep{LLM: s.LLM}
	out, err = observe(obs, trip.AgentTravel, func() (trip.Output, error) { return travel.Run(ctx, req, outputs) })
	if err != nil {
		return trip.Plan{}, err
	}
	outputs = append(outputs, out)

	return trip.Plan{Request: req, Outputs: outputs}, nil
}

func observe(obs Observer, agent trip.Agent, run func() (trip.Output, error)) (trip.Output, error) {
	if obs != nil {
		obs.AgentStarted(agent)
	}
	out, err := run()
	if obs != nil {
		obs.AgentFinished(agent, out, err)
	}
	return out, err
}
