package llm

import (
	"context"
	"log"
	"strings"

	genai "google.golang.org/genai"
)

// GeminiClient is a thin wrapper around the official genai client.
type GeminiClient struct {
	cli   *genai.Client
	model string
	rl    *rpsLimiter
}

// GeminiOptions configures the Gemini client. RPS <= 0 disables the
// request limiter.
type GeminiOptions struct {
	APIKey string
	Model  string
	RPS    float64
	Burst  int
}

func NewGeminiClient(ctx context.Context, opts GeminiOptions) (*GeminiClient, error) {
	cli, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  opts.APIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, err
	}
	return &GeminiClient{cli: cli, model: opts.Model, rl: newRPSLimiter(opts.RPS, opts.Burst)}, nil
}

func (g *GeminiClient) Name() string { return "Gemini:" + g.model }

func (g *GeminiClient) Close() error {
	if g.rl != nil {
		g.rl.Stop()
	}
	return nil
}

// GenerateText sends the prompt and returns the model's plain-text
// response. A failed call is not retried; the caller decides what a
// failure means for the whole run.
func (g *GeminiClient) GenerateText(ctx context.Context, prompt string) (string, error) {
	agent := AgentFrom(ctx)
	if hook := HookFrom(ctx); hook != nil {
		hook.Before(ctx, agent, prompt)
	}
	log.Printf("LLM request (%s): %d bytes", agent, len(prompt))

	if err := g.rl.Acquire(ctx); err != nil {
		return "", err
	}
	resp, err := g.cli.Models.GenerateContent(ctx, g.model,
		[]*genai.Content{{Parts: []*genai.Part{{Text: prompt}}}},
		nil,
	)
	if err == nil && (len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil || len(resp.Candidates[0].Content.Parts) == 0) {
		err = ErrEmptyResponse
	}
	if err != nil {
		if hook := HookFrom(ctx); hook != nil {
			hook.After(ctx, agent, "", err)
		}
		return "", err
	}

	var parts []string
	for _, p := range resp.Candidates[0].Content.Parts {
		if p.Text != "" {
			parts = append(parts, p.Text)
		}
	}
	text := strings.TrimSpace(strings.Join(parts, ""))
	if text == "" {
		if hook := HookFrom(ctx); hook != nil {
			hook.After(ctx, agent, "", ErrEmptyResponse)
		}
		return "", ErrEmptyResponse
	}
	if hook := HookFrom(ctx); hook != nil {
		hook.After(ctx, agent, text, nil)
	}
	return text, nil
}
