package llm

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

func TestFactorySelectsMock(t *testing.T) {
	t.Setenv(EnvMode, ModeMock)
	if _, ok := NewLLMClient("http://llm:4000", "key", time.Second).(*MockClient); !ok {
		t.Fatal("expected mock client when mode is MOCK")
	}

	t.Setenv(EnvMode, "")
	if _, ok := NewLLMClient("", "", time.Second).(*MockClient); !ok {
		t.Fatal("expected mock client without a base URL")
	}
	if _, ok := NewLLMClient("http://llm:4000", "key", time.Second).(*Client); !ok {
		t.Fatal("expected real client with a base URL")
	}
}

func TestMockClientReplies(t *testing.T) {
	m := NewMockClient()
	ctx := context.Background()

	reply, err := m.GenerateReply(ctx, "hello")
	if err != nil {
		t.Fatalf("GenerateReply failed: %v", err)
	}
	if !strings.Contains(reply, `"hello"`) || !strings.Contains(reply, "mock response") {
		t.Fatalf("unexpected reply: %q", reply)
	}

	summary, err := m.Summarize(ctx, "a long body of text", 6)
	if err != nil {
		t.Fatalf("Summarize failed: %v", err)
	}
	if summary != "Summary: a long..." {
		t.Fatalf("unexpected summary: %q", summary)
	}

	rewritten, err := m.Rewrite(ctx, "hello", "formal")
	if err != nil {
		t.Fatalf("Rewrite failed: %v", err)
	}
	if rewritten != "[formal] hello" {
		t.Fatalf("unexpected rewrite: %q", rewritten)
	}
}

func TestClientGenerateReply(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/chat/completions" {
			t.Errorf("unexpected path: %s", r.URL.Path)
		}
		if auth := r.Header.Get("Authorization"); auth != "Bearer test-key" {
			t.Errorf("unexpected auth header: %q", auth)
		}
		var req ChatCompletionRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Errorf("failed to decode request: %v", err)
		}
		json.NewEncoder(w).Encode(ChatCompletionResponse{
			Choices: []Choice{{Message: &ChatMessage{Role: "assistant", Content: "generated reply"}}},
		})
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "test-key", 2*time.Second)
	reply, err := c.GenerateReply(context.Background(), "prompt")
	if err != nil {
		t.Fatalf("GenerateReply failed: %v", err)
	}
	if reply != "generated reply" {
		t.Fatalf("unexpected reply: %q", reply)
	}
}

func TestClientErrorStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "bad-key", 2*time.Second)
	if _, err := c.GenerateReply(context.Background(), "prompt"); err == nil {
		t.Fatal("expected error for non-200 response")
	}
}
