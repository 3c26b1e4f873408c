package pipeline

import (
	"context"

	"github.com/alfredang/trip-advisor/internal/llm"
	"github.com/alfredang/trip-advisor/internal/trip"
)

type PlannerStep struct{ LLM llm.Client }

func (p *PlannerStep) Run(ctx context.Context, req trip.Request) (trip.Output, error) {
	return generate(ctx, p.LLM, trip.AgentPlanner, PlannerPrompt(req))
}

type BudgetStep struct{ LLM llm.Client }

func (p *BudgetStep) Run(ctx context.Context, req trip.Request) (trip.Output, error) {
	return generate(ctx, p.LLM, trip.AgentBudget, BudgetPrompt(req))
}

type LocalGuideStep struct{ LLM llm.Client }

func (p *LocalGuideStep) Run(ctx context.Context, req trip.Request) (trip.Output, error) {
	return generate(ctx, p.LLM, trip.AgentLocalGuide, LocalGuidePrompt(req))
}

// TravelStep is the synthesis step. It always runs last and sees every
// prior output.
type TravelStep struct{ LLM llm.Client }

func (p *TravelStep) Run(ctx context.Context, req trip.Request, prior []trip.Output) (trip.Output, error) {
	return generate(ctx, p.LLM, trip.AgentTravel, TravelPrompt(req, prior))
}

func generate(ctx context.Context, cli llm.Client, agent trip.Agent, prompt string) (trip.Output, error) {
	ctx = llm.WithAgent(ctx, string(agent))
	text, err := cli.GenerateText(ctx, prompt)
	if err != nil {
		return trip.Output{}, &trip.UpstreamError{Service: "llm", Err: err}
	}
	return trip.Output{Agent: agent, Text: text}, nil
}
