// Package llm defines the text-generation collaborator contract. The
// workflow engine treats generation as an opaque capability: a prompt and
// options go in, completion text or an error comes out. Retry and backoff,
// if any, belong to the implementation behind the interface.
package llm

import (
	"context"
	"errors"
	"fmt"
	"time"
)

// ErrGeneration is returned (possibly wrapped) when the collaborator fails
// to produce output: transport error, timeout, or empty completion.
var ErrGeneration = errors.New("llm: generation failed")

// Options controls a single generation call.
type Options struct {
	Temperature float64
	MaxTokens   int
}

// Generator produces a completion for a prompt. Implementations must honor
// ctx cancellation; callers guard every call with a deadline.
type Generator interface {
	Generate(ctx context.Context, prompt string, opts Options) (string, error)
}

// WithTimeout wraps a Generator so every call carries a deadline. A call
// that exceeds d fails with ErrGeneration wrapping context.DeadlineExceeded;
// the caller treats it like any other collaborator failure.
func WithTimeout(g Generator, d time.Duration) Generator {
	return &timeoutGenerator{inner: g, d: d}
}

type timeoutGenerator struct {
	inner Generator
	d     time.Duration
}

func (t *timeoutGenerator) Generate(ctx context.Context, prompt string, opts Options) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, t.d)
	defer cancel()
	out, err := t.inner.Generate(ctx, prompt, opts)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return "", fmt.Errorf("%w: %v", ErrGeneration, err)
		}
		return "", err
	}
	return out, nil
}
