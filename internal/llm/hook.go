package llm

import "context"

// PromptHook observes prompts and responses around each model call.
type PromptHook interface {
	Before(ctx context.Context, agent, prompt string)
	After(ctx context.Context, agent, text string, err error)
}

type ctxKeyHook struct{}
type ctxKeyAgent struct{}

// WithHook attaches a PromptHook to the context used by GenerateText.
func WithHook(base Client, hook PromptHook) Client {
	return &hooked{base: base, hook: hook}
}

type hooked struct {
	base Client
	hook PromptHook
}

func (h *hooked) Name() string { return h.base.Name() }
func (h *hooked) Close() error { return h.base.Close() }

func (h *hooked) GenerateText(ctx context.Context, prompt string) (string, error) {
	ctx = context.WithValue(ctx, ctxKeyHook{}, h.hook)
	return h.base.GenerateText(ctx, prompt)
}

// WithAgent tags the context with the agent name issuing the call.
func WithAgent(ctx context.Context, agent string) context.Context {
	return context.WithValue(ctx, ctxKeyAgent{}, agent)
}

// HookFrom returns the hook stored in the context.
func HookFrom(ctx context.Context) PromptHook {
	if v := ctx.Value(ctxKeyHook{}); v != nil {
		if h, ok := v.(PromptHook); ok {
			return h
		}
	}
	return nil
}

// AgentFrom returns the agent name stored in the context.
func AgentFrom(ctx context.Context) string {
	if v := ctx.Value(ctxKeyAgent{}); v != nil {
		if s, ok := v.(string); ok {
			return s
		}
	}
	return "unknown"
}
