// Package llm provides an abstraction for language-model backends used by
// the core agent for general queries.
package llm

import "context"

// LLMClient defines the language operations the core agent relies on.
type LLMClient interface {
	// GenerateReply produces a free-form reply to the prompt.
	GenerateReply(ctx context.Context, prompt string) (string, error)

	// Summarize condenses the given text.
	Summarize(ctx context.Context, text string, maxLength int) (string, error)

	// Rewrite rewrites the text in the requested style.
	Rewrite(ctx context.Context, text, style string) (string, error)
}

// Ensure both implementations satisfy the interface.
var (
	_ LLMClient = (*Client)(nil)
	_ LLMClient = (*MockClient)(nil)
)
