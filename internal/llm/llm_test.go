package llm

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestFakeClientRespond(t *testing.T) {
	f := NewFakeClient().Respond("planner", "Day 1: Shibuya.")

	ctx := WithAgent(context.Background(), "planner")
	text, err := f.GenerateText(ctx, "plan a trip")
	if err != nil {
		t.Fatalf("GenerateText() error = %v", err)
	}
	if text != "Day 1: Shibuya." {
		t.Fatalf("text = %q", text)
	}

	// An unscripted agent still gets deterministic output.
	text, err = f.GenerateText(WithAgent(context.Background(), "budget"), "estimate costs")
	if err != nil {
		t.Fatalf("GenerateText() error = %v", err)
	}
	if text != "fake budget output" {
		t.Fatalf("text = %q", text)
	}

	if n := len(f.Calls()); n != 2 {
		t.Fatalf("Calls() = %d, want 2", n)
	}
}

func TestFakeClientFailOn(t *testing.T) {
	cause := errors.New("boom")
	f := NewFakeClient().FailOn("travel", cause)

	_, err := f.GenerateText(WithAgent(context.Background(), "travel"), "synthesize")
	if !errors.Is(err, cause) {
		t.Fatalf("GenerateText() = %v, want %v", err, cause)
	}
}

type recordingHook struct {
	before []string
	after  []string
	errs   []error
}

func (h *recordingHook) Before(ctx context.Context, agent, prompt string) {
	h.before = append(h.before, agent)
}

func (h *recordingHook) After(ctx context.Context, agent, text string, err error) {
	h.after = append(h.after, agent)
	h.errs = append(h.errs, err)
}

func TestWithHook(t *testing.T) {
	hook := &recordingHook{}
	cli := WithHook(NewFakeClient(), hook)

	_, err := cli.GenerateText(WithAgent(context.Background(), "planner"), "plan")
	if err != nil {
		t.Fatalf("GenerateText() error = %v", err)
	}
	if len(hook.before) != 1 || hook.before[0] != "planner" {
		t.Fatalf("before = %v", hook.before)
	}
	if len(hook.after) != 1 || hook.errs[0] != nil {
		t.Fatalf("after = %v errs = %v", hook.after, hook.errs)
	}
}

func TestAgentFromDefault(t *testing.T) {
	if got := AgentFrom(context.Background()); got != "unknown" {
		t.Fatalf("AgentFrom() = %q", got)
	}
}

func TestRPSLimiterDisabled(t *testing.T) {
	var l *rpsLimiter
	if err := l.Acquire(context.Background()); err != nil {
		t.Fatalf("nil limiter should not block: %v", err)
	}
	if NewLimiter(0, 0) != nil {
		t.Fatalf("rps<=0 should disable the limiter")
	}
}

func TestRPSLimiterBurstThenBlocks(t *testing.T) {
	l := newRPSLimiter(1000, 2)
	defer l.Stop()

	// Burst tokens are available immediately.
	for i := 0; i < 2; i++ {
		if err := l.Acquire(context.Background()); err != nil {
			t.Fatalf("Acquire() error = %v", err)
		}
	}

	ctx, cancel := context.WithTimeout(context.Background(), 250*time.Millisecond)
	defer cancel()
	if err := l.Acquire(ctx); err != nil {
		t.Fatalf("refill should arrive before the deadline: %v", err)
	}
}

func TestRPSLimiterContextCancel(t *testing.T) {
	l := newRPSLimiter(0.001, 1)
	defer l.Stop()

	if err := l.Acquire(context.Background()); err != nil {
		t.Fatalf("burst token expected: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	if err := l.Acquire(ctx); !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("Acquire() = %v, want deadline exceeded", err)
	}
}
