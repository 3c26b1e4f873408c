package llm

import (
	"context"
	"fmt"
	"sync"
)

// FakeClient returns deterministic per-agent text for offline use and
// tests. Responses are keyed by the agent name tagged on the context.
type FakeClient struct {
	mu        sync.Mutex
	responses map[string]string
	failOn    map[string]error
	calls     []string
}

func NewFakeClient() *FakeClient {
	return &FakeClient{
		responses: make(map[string]string),
		failOn:    make(map[string]error),
	}
}

func (f *FakeClient) Name() string { return "FakeLLM" }
func (f *FakeClient) Close() error { return nil }

// Respond registers the canned text returned for the given agent.
func (f *FakeClient) Respond(agent, text string) *FakeClient {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.responses[agent] = text
	return f
}

// FailOn makes the call for the given agent return err.
func (f *FakeClient) FailOn(agent string, err error) *FakeClient {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.failOn[agent] = err
	return f
}

// Calls returns the prompts seen so far, in call order.
func (f *FakeClient) Calls() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]string, len(f.calls))
	copy(out, f.calls)
	return out
}

func (f *FakeClient) GenerateText(ctx context.Context, prompt string) (string, error) {
	agent := AgentFrom(ctx)
	f.mu.Lock()
	f.calls = append(f.calls, prompt)
	err := f.failOn[agent]
	text, ok := f.responses[agent]
	f.mu.Unlock()

	if hook := HookFrom(ctx); hook != nil {
		hook.Before(ctx, agent, prompt)
	}
	if err != nil {
		if hook := HookFrom(ctx); hook != nil {
			hook.After(ctx, agent, "", err)
		}
		return "", err
	}
	if !ok {
		text = fmt.Sprintf("fake %s output", agent)
	}
	if hook := HookFrom(ctx); hook != nil {
		hook.After(ctx, agent, text, nil)
	}
	return text, nil
}
