package service

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/MQDC-Tech/CustomerCare-AI/internal/a2a"
	"github.com/MQDC-Tech/CustomerCare-AI/internal/adapter/agentclient"
	"github.com/MQDC-Tech/CustomerCare-AI/internal/adapter/llm"
	"github.com/MQDC-Tech/CustomerCare-AI/internal/adapter/notify"
	"github.com/MQDC-Tech/CustomerCare-AI/internal/classify"
	"github.com/MQDC-Tech/CustomerCare-AI/internal/config"
	"github.com/MQDC-Tech/CustomerCare-AI/internal/domain"
	"github.com/MQDC-Tech/CustomerCare-AI/internal/route"
	"github.com/MQDC-Tech/CustomerCare-AI/tests/helpers"

	store "github.com/MQDC-Tech/CustomerCare-AI/internal/repository"
)

// fakeAgent serves a minimal message/send endpoint that replies with the
// given text after an optional delay.
func fakeAgent(t *testing.T, reply string, delay time.Duration) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if delay > 0 {
			time.Sleep(delay)
		}
		var req a2a.Request
		json.NewDecoder(r.Body).Decode(&req)

		msg := a2a.NewTextMessage("m1", a2a.RoleAgent, reply)
		raw, _ := json.Marshal(a2a.Task{
			ID:     "task_test",
			Status: a2a.TaskStatus{State: "completed", Message: &msg},
			Kind:   "task",
		})
		json.NewEncoder(w).Encode(a2a.Response{JSONRPC: a2a.Version, ID: req.ID, Result: raw})
	}))
}

func newTestService(t *testing.T, st store.Store, contextURL, realEstateURL string) *Service {
	t.Helper()
	cfg := &config.Config{
		ContextAgentURL:    contextURL,
		RealEstateAgentURL: realEstateURL,
		AgentTimeout:       2 * time.Second,
	}
	agents, defaultID, err := cfg.Registry()
	if err != nil {
		t.Fatalf("Registry failed: %v", err)
	}
	router, err := route.New(agents, defaultID, route.DefaultMapping())
	if err != nil {
		t.Fatalf("route.New failed: %v", err)
	}
	return New(
		st,
		classify.New(),
		router,
		agentclient.NewClient("test-coordinator", cfg.AgentTimeout),
		llm.NewMockClient(),
		notify.NewClient(""),
		cfg,
	)
}

func TestExecuteSingleAgentReturnsAgentText(t *testing.T) {
	st := helpers.NewTestSQLiteStore(t)
	ctxAgent := fakeAgent(t, "Preference saved.", 0)
	defer ctxAgent.Close()

	svc := newTestService(t, st, ctxAgent.URL, "http://localhost:1")

	got, err := svc.Execute(context.Background(), "Update my profile")
	if err != nil {
		t.Fatalf("Execute failed: %v", err)
	}
	if got != "Preference saved." {
		t.Fatalf("expected bare agent text, got %q", got)
	}
	if strings.Contains(got, "Multi-Agent Workflow") {
		t.Fatalf("single-agent reply should not carry workflow framing: %q", got)
	}
}

func TestExecuteSingleAgentMessageEnvelope(t *testing.T) {
	st := helpers.NewTestSQLiteStore(t)
	ctxAgent := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req a2a.Request
		json.NewDecoder(r.Body).Decode(&req)
		raw, _ := json.Marshal(a2a.NewTextMessage("m1", a2a.RoleAgent, "Preference saved."))
		json.NewEncoder(w).Encode(a2a.Response{JSONRPC: a2a.Version, ID: req.ID, Result: raw})
	}))
	defer ctxAgent.Close()

	svc := newTestService(t, st, ctxAgent.URL, "http://localhost:1")

	got, err := svc.Execute(context.Background(), "Remember that I prefer 3-bedroom houses")
	if err != nil {
		t.Fatalf("Execute failed: %v", err)
	}
	if got != "Preference saved." {
		t.Fatalf("expected verbatim agent reply, got %q", got)
	}
	if strings.Contains(got, "Multi-Agent Workflow") {
		t.Fatalf("preference query must take the single-agent path: %q", got)
	}
}

func TestExecuteMultiAgentReportOrder(t *testing.T) {
	st := helpers.NewTestSQLiteStore(t)
	// The context agent is slower than the real-estate agent; the report
	// must still list it first.
	ctxAgent := fakeAgent(t, "context reply", 100*time.Millisecond)
	defer ctxAgent.Close()
	reAgent := fakeAgent(t, "realestate reply", 0)
	defer reAgent.Close()

	svc := newTestService(t, st, ctxAgent.URL, reAgent.URL)

	got, err := svc.Execute(context.Background(), "Update my profile and show me property listings")
	if err != nil {
		t.Fatalf("Execute failed: %v", err)
	}

	if !strings.HasPrefix(got, "Multi-Agent Workflow\n") {
		t.Fatalf("missing workflow header: %q", got)
	}
	if !strings.Contains(got, "Consulted 2 specialized agents.") {
		t.Fatalf("missing agent count: %q", got)
	}
	ctxIdx := strings.Index(got, "## Context Agent Response:")
	reIdx := strings.Index(got, "## Domain Real Estate Agent Response:")
	if ctxIdx < 0 || reIdx < 0 {
		t.Fatalf("missing sections: %q", got)
	}
	if ctxIdx > reIdx {
		t.Fatalf("sections out of dispatch order: %q", got)
	}
	if !strings.Contains(got, "context reply") || !strings.Contains(got, "realestate reply") {
		t.Fatalf("missing agent replies: %q", got)
	}
	if !strings.HasSuffix(got, "Multi-agent workflow completed.") {
		t.Fatalf("missing completion marker: %q", got)
	}
}

func TestExecutePartialFailureKeepsAllSections(t *testing.T) {
	st := helpers.NewTestSQLiteStore(t)
	reAgent := fakeAgent(t, "realestate reply", 0)
	defer reAgent.Close()

	// Nothing listens on the context agent endpoint.
	dead := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	deadURL := dead.URL
	dead.Close()

	svc := newTestService(t, st, deadURL, reAgent.URL)

	got, err := svc.Execute(context.Background(), "Update my profile and show me property listings")
	if err != nil {
		t.Fatalf("Execute failed: %v", err)
	}
	if !strings.Contains(got, "## Context Agent Response:") ||
		!strings.Contains(got, "## Domain Real Estate Agent Response:") {
		t.Fatalf("failed agent section missing: %q", got)
	}
	if !strings.Contains(got, "Error communicating with agent context_agent:") {
		t.Fatalf("expected failure text for context agent: %q", got)
	}
	if !strings.Contains(got, "realestate reply") {
		t.Fatalf("healthy agent reply missing: %q", got)
	}
}

func TestExecuteGeneralFallback(t *testing.T) {
	st := helpers.NewTestSQLiteStore(t)
	svc := newTestService(t, st, "http://localhost:1", "http://localhost:1")

	got, err := svc.Execute(context.Background(), "What is the weather today?")
	if err != nil {
		t.Fatalf("Execute failed: %v", err)
	}
	if !strings.Contains(got, "This is a mock response") {
		t.Fatalf("expected mock LLM reply, got %q", got)
	}
}

func TestExecuteNotification(t *testing.T) {
	st := helpers.NewTestSQLiteStore(t)
	svc := newTestService(t, st, "http://localhost:1", "http://localhost:1")

	got, err := svc.Execute(context.Background(), "send an urgent alert about the meeting")
	if err != nil {
		t.Fatalf("Execute failed: %v", err)
	}
	if !strings.Contains(got, "Notification sent to user via email") {
		t.Fatalf("unexpected reply: %q", got)
	}
	if !strings.Contains(got, "priority high") {
		t.Fatalf("alert should be high priority: %q", got)
	}
}

func TestExecuteRemembersExchange(t *testing.T) {
	st := helpers.NewTestSQLiteStore(t)
	svc := newTestService(t, st, "http://localhost:1", "http://localhost:1")

	if _, err := svc.Execute(context.Background(), "What is the weather today?"); err != nil {
		t.Fatalf("Execute failed: %v", err)
	}

	entries, err := st.GetConversation(context.Background(), "default_session", 10)
	if err != nil {
		t.Fatalf("GetConversation failed: %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("expected 1 conversation entry, got %d", len(entries))
	}
	if entries[0].Query != "What is the weather today?" || entries[0].Agent != "core" {
		t.Fatalf("unexpected entry: %+v", entries[0])
	}

	// A follow-up recall query surfaces the stored exchange.
	got, err := svc.Execute(context.Background(), "recall our conversation")
	if err != nil {
		t.Fatalf("Execute failed: %v", err)
	}
	if !strings.Contains(got, "What is the weather today?") {
		t.Fatalf("recall missing prior exchange: %q", got)
	}
}

func TestExecuteCancelledContext(t *testing.T) {
	st := helpers.NewTestSQLiteStore(t)
	svc := newTestService(t, st, "http://localhost:1", "http://localhost:1")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	agents := []domain.Agent{
		{AgentID: "a1", Name: "A1", Endpoint: "http://localhost:1"},
		{AgentID: "a2", Name: "A2", Endpoint: "http://localhost:1"},
	}
	results := svc.dispatchAll(ctx, agents, "query")
	if len(results) != 2 {
		t.Fatalf("expected a result slot per agent, got %d", len(results))
	}
	for i, res := range results {
		if !res.Status.Failed() {
			t.Fatalf("result %d should be a failure: %+v", i, res)
		}
		if !strings.Contains(res.Text, "Error communicating with agent") {
			t.Fatalf("result %d missing failure text: %+v", i, res)
		}
	}
}
