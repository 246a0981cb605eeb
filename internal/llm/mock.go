package llm

import "context"

// GeneratorFunc adapts a function to the Generator interface.
type GeneratorFunc func(ctx context.Context, prompt string, opts Options) (string, error)

func (f GeneratorFunc) Generate(ctx context.Context, prompt string, opts Options) (string, error) {
	return f(ctx, prompt, opts)
}

// Mock is a scriptable Generator for tests. If Func is set it takes
// precedence; otherwise each call returns Response/Err. Prompts are
// recorded for assertion.
type Mock struct {
	Response string
	Err      error
	Func     GeneratorFunc

	Prompts []string
}

func (m *Mock) Generate(ctx context.Context, prompt string, opts Options) (string, error) {
	m.Prompts = append(m.Prompts, prompt)
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if m.Func != nil {
		return m.Func(ctx, prompt, opts)
	}
	return m.Response, m.Err
}
