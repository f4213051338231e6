package llm

import (
	"log"
	"os"
	"time"
)

const (
	// EnvMode is the environment variable name for mode selection.
	EnvMode = "CCAI_MODE"
	// ModeMock indicates the mock client should be used.
	ModeMock = "MOCK"
)

// NewLLMClient creates an LLM client. The mock client is used when
// CCAI_MODE=MOCK or when no backend URL is configured.
func NewLLMClient(baseURL, apiKey string, timeout time.Duration) LLMClient {
	if os.Getenv(EnvMode) == ModeMock || baseURL == "" {
		log.Println("using mock LLM client (no backend configured)")
		return NewMockClient()
	}
	return NewClient(baseURL, apiKey, timeout)
}
