package llm

import "context"

// Client abstracts the generative-text service used by the enrichment and
// rewrite stages.
type Client interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// Func adapts a plain function to the Client interface; handy in tests.
type Func func(ctx context.Context, prompt string) (string, error)

func (f Func) Generate(ctx context.Context, prompt string) (string, error) {
	return f(ctx, prompt)
}
