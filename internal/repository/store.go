// Package store provides persistence for tasks, profiles, leads, and
// conversation memory.
package store

import (
	"context"

	"github.com/MQDC-Tech/CustomerCare-AI/internal/domain"
)

// Store defines the persistence operations used by the agents.
type Store interface {
	Close() error

	// Tasks
	CreateTask(ctx context.Context, task *domain.Task) error
	GetTask(ctx context.Context, taskID string) (*domain.Task, error)
	UpdateTaskState(ctx context.Context, taskID string, state domain.TaskState) error
	CompleteTask(ctx context.Context, taskID string, state domain.TaskState, response, errMsg string) error
	CreateTaskMessage(ctx context.Context, msg *domain.TaskMessage) error
	GetTaskMessages(ctx context.Context, taskID string, limit int) ([]domain.TaskMessage, error)

	// Profiles
	GetProfile(ctx context.Context, userID string) (*domain.Profile, error)
	UpsertProfile(ctx context.Context, profile *domain.Profile) error

	// Leads
	CreateLead(ctx context.Context, lead *domain.Lead) error
	GetLead(ctx context.Context, leadID string) (*domain.Lead, error)
	UpdateLeadRouting(ctx context.Context, leadID string, status domain.LeadStatus, assignedAgent string, score int) error

	// Conversation memory
	CreateConversationEntry(ctx context.Context, entry *domain.ConversationEntry) error
	GetConversation(ctx context.Context, sessionID string, limit int) ([]domain.ConversationEntry, error)
}
