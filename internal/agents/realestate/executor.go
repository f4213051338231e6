// Package realestate implements the real-estate domain agent: property
// search, CRM lead management, and lead routing.
package realestate

import (
	"context"
	"regexp"
	"strings"

	"github.com/MQDC-Tech/CustomerCare-AI/policy"

	store "github.com/MQDC-Tech/CustomerCare-AI/internal/repository"
)

// Executor answers real-estate queries against the listings inventory and
// the CRM store.
type Executor struct {
	store  store.Store
	policy *policy.Engine
}

// New creates a real-estate agent executor.
func New(st store.Store, engine *policy.Engine) *Executor {
	return &Executor{store: st, policy: engine}
}

// Execute handles a real-estate query and returns the reply text.
func (e *Executor) Execute(ctx context.Context, query string) (string, error) {
	lower := strings.ToLower(query)

	if strings.Contains(lower, "lead") || strings.Contains(lower, "crm") {
		return e.handleLead(ctx, query)
	}
	return SearchProperties(parseCriteria(query)), nil
}

var budgetMentionRe = regexp.MustCompile(`\$?\d+\s*k`)

// handleLead records the inquiry as a CRM lead and routes it. Free-text
// inquiries rarely carry full contact details; missing fields simply lower
// the qualification score.
func (e *Executor) handleLead(ctx context.Context, query string) (string, error) {
	lower := strings.ToLower(query)

	interest := ""
	for _, t := range qualifyingPropertyTypes {
		if strings.Contains(lower, t) {
			interest = t
			break
		}
	}
	budget := strings.TrimSpace(budgetMentionRe.FindString(lower))

	lead, err := e.CreateLead(ctx, "Prospect", "", "", interest, budget, query)
	if err != nil {
		return "", err
	}

	summary, err := e.RouteLead(ctx, lead)
	if err != nil {
		return "", err
	}
	return "New lead recorded from inquiry. " + summary, nil
}
