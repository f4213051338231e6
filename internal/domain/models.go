package domain

import (
	"encoding/json"
	"time"
)

// Agent represents a named remote agent endpoint.
type Agent struct {
	AgentID     string `json:"agent_id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	Endpoint    string `json:"endpoint"`
}

// Local reports whether the agent is answered in-process rather than over
// the network. The general fallback identity has no endpoint.
func (a Agent) Local() bool {
	return a.Endpoint == ""
}

// AgentResult is a single agent's outcome within an aggregate response.
type AgentResult struct {
	AgentID string         `json:"agent_id"`
	Status  DispatchStatus `json:"status"`
	Text    string         `json:"text"`
}

// Task represents a served request with its lifecycle state.
type Task struct {
	TaskID      string     `json:"task_id"`
	ContextID   string     `json:"context_id"`
	State       TaskState  `json:"state"`
	Query       string     `json:"query"`
	Response    string     `json:"response,omitempty"`
	Error       string     `json:"error,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	CompletedAt *time.Time `json:"completed_at,omitempty"`
}

// TaskMessage is one entry in a task's conversation history.
type TaskMessage struct {
	MessageID string    `json:"message_id"`
	TaskID    string    `json:"task_id"`
	Role      string    `json:"role"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
}

// Profile holds a user's personalization data.
type Profile struct {
	UserID      string          `json:"user_id"`
	Name        string          `json:"name"`
	Preferences json.RawMessage `json:"preferences,omitempty"`
	Context     json.RawMessage `json:"context,omitempty"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

// Lead represents a CRM lead.
type Lead struct {
	LeadID           string     `json:"lead_id"`
	Name             string     `json:"name"`
	Email            string     `json:"email"`
	Phone            string     `json:"phone"`
	PropertyInterest string     `json:"property_interest"`
	BudgetRange      string     `json:"budget_range,omitempty"`
	Notes            string     `json:"notes,omitempty"`
	Status           LeadStatus `json:"status"`
	Score            int        `json:"score"`
	AssignedAgent    string     `json:"assigned_agent,omitempty"`
	CreatedAt        time.Time  `json:"created_at"`
	UpdatedAt        time.Time  `json:"updated_at"`
}

// Property is a real-estate listing.
type Property struct {
	ID          string  `json:"id"`
	Address     string  `json:"address"`
	Price       float64 `json:"price"`
	Bedrooms    int     `json:"bedrooms"`
	Bathrooms   int     `json:"bathrooms"`
	Sqft        int     `json:"sqft"`
	Description string  `json:"description"`
}

// ConversationEntry is one stored query/response exchange.
type ConversationEntry struct {
	EntryID   string    `json:"entry_id"`
	SessionID string    `json:"session_id"`
	Query     string    `json:"query"`
	Response  string    `json:"response"`
	Agent     string    `json:"agent"`
	CreatedAt time.Time `json:"created_at"`
}
