package realestate

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/MQDC-Tech/CustomerCare-AI/internal/domain"
)

// Qualification scoring weights, mirroring the CRM's criteria: contact
// fields 30, budget 40, property-type match 30.
const (
	contactFieldsWeight = 30
	budgetWeight        = 40
	propertyTypeWeight  = 30

	budgetMinimum = 200000
)

var qualifyingPropertyTypes = []string{"house", "condo", "apartment", "townhouse"}

// QualifyLead scores a lead against the qualification criteria and returns
// the score with its level bucket.
func QualifyLead(lead *domain.Lead) (int, domain.QualificationLevel) {
	score := 0

	// Contact completeness
	fields := []string{lead.Name, lead.Email, lead.Phone}
	present := 0
	for _, f := range fields {
		if strings.TrimSpace(f) != "" {
			present++
		}
	}
	score += present * contactFieldsWeight / len(fields)

	// Budget qualification
	if budget, ok := parseBudget(lead.BudgetRange); ok && budget >= budgetMinimum {
		score += budgetWeight
	}

	// Property interest match
	interest := strings.ToLower(lead.PropertyInterest)
	for _, t := range qualifyingPropertyTypes {
		if interest == t {
			score += propertyTypeWeight
			break
		}
	}

	level := domain.QualificationLow
	switch {
	case score >= 80:
		level = domain.QualificationHigh
	case score >= 50:
		level = domain.QualificationMedium
	}
	return score, level
}

// parseBudget reads budgets of the form "$500k" / "300k".
func parseBudget(budgetRange string) (float64, bool) {
	s := strings.ToLower(strings.TrimSpace(budgetRange))
	if s == "" || !strings.Contains(s, "k") {
		return 0, false
	}
	s = strings.TrimSpace(strings.TrimSuffix(strings.ReplaceAll(s, "$", ""), "k"))
	var n float64
	if _, err := fmt.Sscanf(s, "%f", &n); err != nil {
		return 0, false
	}
	return n * 1000, true
}

// rosterAgent is one sales agent available for lead assignment.
type rosterAgent struct {
	AgentID     string
	Name        string
	Specialties []string
	MaxLeads    int
	// CurrentLeads would come from the CRM; the canned roster carries a
	// snapshot.
	CurrentLeads int
}

var roster = []rosterAgent{
	{AgentID: "agent_001", Name: "Sarah Johnson", Specialties: []string{"luxury", "house"}, CurrentLeads: 5, MaxLeads: 10},
	{AgentID: "agent_002", Name: "Mike Chen", Specialties: []string{"first-time", "condo"}, CurrentLeads: 3, MaxLeads: 8},
}

// pickRosterAgent selects the best available sales agent for the lead:
// specialty match first, then lowest load.
func pickRosterAgent(lead *domain.Lead) (rosterAgent, bool) {
	interest := strings.ToLower(lead.PropertyInterest)
	var best rosterAgent
	bestScore := -1.0

	for _, agent := range roster {
		if agent.CurrentLeads >= agent.MaxLeads {
			continue
		}
		score := 0.0
		for _, s := range agent.Specialties {
			if s == interest {
				score += 50
				break
			}
		}
		score += (1 - float64(agent.CurrentLeads)/float64(agent.MaxLeads)) * 30
		if score > bestScore {
			bestScore = score
			best = agent
		}
	}
	return best, bestScore >= 0
}

// RouteLead qualifies the lead, applies the routing policy, updates the
// lead record, and returns a human-readable routing summary.
func (e *Executor) RouteLead(ctx context.Context, lead *domain.Lead) (string, error) {
	score, level := QualifyLead(lead)

	decision, err := e.policy.Evaluate(ctx, map[string]interface{}{
		"score":             score,
		"level":             string(level),
		"budget_range":      lead.BudgetRange,
		"property_interest": lead.PropertyInterest,
	})
	if err != nil {
		return "", fmt.Errorf("failed to evaluate lead policy: %w", err)
	}

	var status domain.LeadStatus
	var assigned string
	var summary string
	switch decision {
	case "reject":
		status = domain.LeadStatusRejected
		summary = fmt.Sprintf("Lead %s did not meet qualification criteria (score %d/100, %s priority).", lead.LeadID, score, level)
	case "escalate":
		status = domain.LeadStatusEscalated
		summary = fmt.Sprintf("Lead %s qualified as %s priority (score %d/100) and was escalated to a senior broker.", lead.LeadID, level, score)
	default:
		agent, ok := pickRosterAgent(lead)
		if !ok {
			status = domain.LeadStatusEscalated
			summary = fmt.Sprintf("Lead %s qualified (score %d/100) but no sales agent has capacity; escalated.", lead.LeadID, score)
			break
		}
		status = domain.LeadStatusAssigned
		assigned = agent.AgentID
		summary = fmt.Sprintf("Lead %s qualified as %s priority (score %d/100) and was assigned to %s.", lead.LeadID, level, score, agent.Name)
	}

	if err := e.store.UpdateLeadRouting(ctx, lead.LeadID, status, assigned, score); err != nil {
		return "", fmt.Errorf("failed to update lead routing: %w", err)
	}
	lead.Status = status
	lead.AssignedAgent = assigned
	lead.Score = score
	return summary, nil
}

// CreateLead persists a new lead.
func (e *Executor) CreateLead(ctx context.Context, name, email, phone, propertyInterest, budgetRange, notes string) (*domain.Lead, error) {
	now := time.Now()
	lead := &domain.Lead{
		LeadID:           "lead_" + uuid.New().String()[:8],
		Name:             name,
		Email:            email,
		Phone:            phone,
		PropertyInterest: propertyInterest,
		BudgetRange:      budgetRange,
		Notes:            notes,
		Status:           domain.LeadStatusNew,
		CreatedAt:        now,
		UpdatedAt:        now,
	}
	if err := e.store.CreateLead(ctx, lead); err != nil {
		return nil, fmt.Errorf("failed to create lead: %w", err)
	}
	return lead, nil
}
