package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/MQDC-Tech/CustomerCare-AI/internal/config"
	"github.com/MQDC-Tech/CustomerCare-AI/internal/domain"
)

// respondLocally answers the identities the coordinator serves in-process:
// notifications and the general fallback.
func (s *Service) respondLocally(ctx context.Context, agent domain.Agent, query string) (string, error) {
	switch agent.AgentID {
	case config.DefaultNotificationsID:
		return s.sendNotification(ctx, query)
	default:
		return s.generalReply(ctx, query)
	}
}

// generalReply handles queries no specialized agent claimed. Queries
// containing "recall" are answered from conversation memory; everything
// else goes to the LLM backend.
func (s *Service) generalReply(ctx context.Context, query string) (string, error) {
	lower := strings.ToLower(query)

	if strings.Contains(lower, "recall") {
		return s.recallConversation(ctx)
	}
	if strings.TrimSpace(query) == "" {
		return "Core Agent ready. Available services: LLM processing, conversation memory, notifications, and multi-agent orchestration.", nil
	}

	reply, err := s.llmClient.GenerateReply(ctx, query)
	if err != nil {
		return "", fmt.Errorf("failed to generate reply: %w", err)
	}
	return reply, nil
}

// recallConversation summarizes recent conversation memory.
func (s *Service) recallConversation(ctx context.Context) (string, error) {
	entries, err := s.store.GetConversation(ctx, defaultSessionID, 5)
	if err != nil {
		return "", fmt.Errorf("failed to load conversation memory: %w", err)
	}
	if len(entries) == 0 {
		return "No conversation history stored yet.", nil
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Recalling the last %d exchange(s):\n", len(entries))
	for _, entry := range entries {
		fmt.Fprintf(&b, "- [%s] %s\n", entry.Agent, entry.Query)
	}
	return strings.TrimRight(b.String(), "\n"), nil
}

// sendNotification pushes the query as a notification. Alert-sounding
// queries are delivered at high priority.
func (s *Service) sendNotification(ctx context.Context, query string) (string, error) {
	priority := "normal"
	lower := strings.ToLower(query)
	if strings.Contains(lower, "alert") || strings.Contains(lower, "urgent") {
		priority = "high"
	}

	notifID, err := s.notifyClient.Push(ctx, "user", query, "email", priority)
	if err != nil {
		return "", fmt.Errorf("failed to send notification: %w", err)
	}
	return fmt.Sprintf("Notification sent to user via email (%s, priority %s)", notifID, priority), nil
}
