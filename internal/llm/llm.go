package llm

import (
	"context"
	"errors"
)

// ErrEmptyResponse is returned when the model produces no usable text.
var ErrEmptyResponse = errors.New("llm: empty response from model")

// Client is a minimal text-generation client. One call per agent step.
type Client interface {
	Name() string
	GenerateText(ctx context.Context, prompt string) (string, error)
	Close() error
}

// Limiter throttles outbound calls. A nil Limiter never blocks.
type Limiter interface {
	Acquire(ctx context.Context) error
}
