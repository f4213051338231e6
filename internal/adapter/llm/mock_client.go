package llm

import (
	"context"
	"fmt"
)

// MockClient is a canned implementation of LLMClient used when no backend
// is configured and in tests.
type MockClient struct{}

// NewMockClient creates a new mock LLM client.
func NewMockClient() *MockClient {
	return &MockClient{}
}

// GenerateReply returns a canned reply echoing the prompt.
func (m *MockClient) GenerateReply(ctx context.Context, prompt string) (string, error) {
	if prompt == "" {
		return "This is a mock response from the LLM client.", nil
	}
	return fmt.Sprintf("Received your message: %q. This is a mock response.", truncate(prompt, 100)), nil
}

// Summarize returns a canned truncation of the text.
func (m *MockClient) Summarize(ctx context.Context, text string, maxLength int) (string, error) {
	return "Summary: " + truncate(text, maxLength), nil
}

// Rewrite returns the text unchanged with a style note.
func (m *MockClient) Rewrite(ctx context.Context, text, style string) (string, error) {
	return fmt.Sprintf("[%s] %s", style, text), nil
}

func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen] + "..."
}
