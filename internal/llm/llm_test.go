package llm

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestWithTimeoutPassesThrough(t *testing.T) {
	g := WithTimeout(&Mock{Response: "ok"}, time.Second)
	out, err := g.Generate(context.Background(), "prompt", Options{})
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if out != "ok" {
		t.Errorf("out = %q, want ok", out)
	}
}

func TestWithTimeoutDeadline(t *testing.T) {
	slow := GeneratorFunc(func(ctx context.Context, _ string, _ Options) (string, error) {
		select {
		case <-ctx.Done():
			return "", ctx.Err()
		case <-time.After(5 * time.Second):
			return "too late", nil
		}
	})
	g := WithTimeout(slow, 10*time.Millisecond)
	_, err := g.Generate(context.Background(), "prompt", Options{})
	if !errors.Is(err, ErrGeneration) {
		t.Fatalf("expected ErrGeneration, got %v", err)
	}
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Errorf("expected wrapped DeadlineExceeded, got %v", err)
	}
}

func TestMockRecordsPrompts(t *testing.T) {
	m := &Mock{Response: "x"}
	_, _ = m.Generate(context.Background(), "first", Options{})
	_, _ = m.Generate(context.Background(), "second", Options{})
	if len(m.Prompts) != 2 || m.Prompts[1] != "second" {
		t.Errorf("prompts = %v", m.Prompts)
	}
}
