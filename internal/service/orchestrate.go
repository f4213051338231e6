package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/MQDC-Tech/CustomerCare-AI/internal/adapter/agentclient"
	"github.com/MQDC-Tech/CustomerCare-AI/internal/domain"
)

// defaultSessionID keys conversation memory until the protocol layer
// carries a caller session.
const defaultSessionID = "default_session"

// Execute handles a user query end to end: classify, resolve, dispatch,
// aggregate. Per-agent faults are converted into report entries; Execute
// only returns an error for internal failures.
func (s *Service) Execute(ctx context.Context, query string) (string, error) {
	tags := s.classifier.Classify(query)
	agents := s.router.Resolve(tags)
	log.Printf("query classified to domains %v, dispatching to %d agent(s)", tags, len(agents))

	var response string
	if len(agents) == 1 {
		// Single-agent path: hand back the agent's text without
		// multi-agent framing.
		result := s.dispatch(ctx, agents[0], query)
		response = result.Text
	} else {
		results := s.dispatchAll(ctx, agents, query)
		response = buildReport(query, agents, results)
	}

	s.remember(ctx, query, response, agents)
	return response, nil
}

// dispatchAll fans out to every agent concurrently. Results land in
// index-based slots so the aggregate preserves dispatch order regardless of
// completion order.
func (s *Service) dispatchAll(ctx context.Context, agents []domain.Agent, query string) []domain.AgentResult {
	results := make([]domain.AgentResult, len(agents))
	var wg sync.WaitGroup

	for i, agent := range agents {
		if ctx.Err() != nil {
			// The caller gave up: stop issuing new dispatches but keep
			// every agent accounted for in the result.
			results[i] = domain.AgentResult{
				AgentID: agent.AgentID,
				Status:  domain.DispatchUnreachable,
				Text:    fmt.Sprintf("Error communicating with agent %s: orchestration cancelled before dispatch", agent.AgentID),
			}
			continue
		}
		wg.Add(1)
		go func(i int, agent domain.Agent) {
			defer wg.Done()
			results[i] = s.dispatch(ctx, agent, query)
		}(i, agent)
	}

	wg.Wait()
	return results
}

// dispatch sends the query to one agent and normalizes the outcome. Local
// identities are answered in-process; remote ones go through the agent
// client with a bounded timeout.
func (s *Service) dispatch(ctx context.Context, agent domain.Agent, query string) domain.AgentResult {
	result := domain.AgentResult{AgentID: agent.AgentID, Status: domain.DispatchPending}

	var text string
	var err error
	if agent.Local() {
		text, err = s.respondLocally(ctx, agent, query)
	} else {
		callCtx, cancel := context.WithTimeout(ctx, s.config.AgentTimeout)
		defer cancel()
		text, err = s.agentClient.Call(callCtx, agent.Endpoint, query)
	}

	if err != nil {
		result.Status = failureStatus(err)
		result.Text = fmt.Sprintf("Error communicating with agent %s: %v", agent.AgentID, err)
		log.Printf("ERROR: dispatch to %s failed: %v", agent.AgentID, err)
		return result
	}

	result.Status = domain.DispatchSucceeded
	result.Text = text
	return result
}

func failureStatus(err error) domain.DispatchStatus {
	var callErr *agentclient.CallError
	if errors.As(err, &callErr) {
		return callErr.Status
	}
	return domain.DispatchUnreachable
}

// buildReport renders the aggregate result: the query, the agent count, one
// labeled section per agent in dispatch order, and a completion marker.
func buildReport(query string, agents []domain.Agent, results []domain.AgentResult) string {
	var b strings.Builder
	b.WriteString("Multi-Agent Workflow\n")
	fmt.Fprintf(&b, "Query: %s\n", query)
	fmt.Fprintf(&b, "Consulted %d specialized agents.\n\n", len(agents))

	for i, agent := range agents {
		fmt.Fprintf(&b, "## %s Response:\n", sectionLabel(agent))
		b.WriteString(results[i].Text)
		b.WriteString("\n\n")
	}

	b.WriteString("Multi-agent workflow completed.")
	return b.String()
}

func sectionLabel(agent domain.Agent) string {
	if agent.Name != "" {
		return agent.Name
	}
	return agent.AgentID
}

// remember records the exchange in conversation memory. Failure to store is
// logged, never surfaced.
func (s *Service) remember(ctx context.Context, query, response string, agents []domain.Agent) {
	ids := make([]string, len(agents))
	for i, a := range agents {
		ids[i] = a.AgentID
	}
	entry := &domain.ConversationEntry{
		EntryID:   "conv_" + uuid.New().String()[:8],
		SessionID: defaultSessionID,
		Query:     query,
		Response:  response,
		Agent:     strings.Join(ids, ","),
		CreatedAt: time.Now(),
	}
	if err := s.store.CreateConversationEntry(ctx, entry); err != nil {
		log.Printf("ERROR: failed to store conversation entry: %v", err)
	}
}
