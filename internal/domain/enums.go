// Package domain defines the core domain models for the customer-care agents.
package domain

// Tag classifies a query into a service domain.
type Tag string

const (
	TagRealEstate   Tag = "real_estate"
	TagContext      Tag = "context"
	TagNotification Tag = "notification"
	// TagGeneral is the fallback when no specialized domain matches.
	TagGeneral Tag = "general"
)

// DispatchStatus represents the terminal state of a single agent dispatch.
type DispatchStatus string

const (
	DispatchPending     DispatchStatus = "PENDING"
	DispatchSucceeded   DispatchStatus = "SUCCEEDED"
	DispatchTimeout     DispatchStatus = "FAILED_TIMEOUT"
	DispatchUnreachable DispatchStatus = "FAILED_UNREACHABLE"
	DispatchMalformed   DispatchStatus = "FAILED_MALFORMED"
)

// Failed reports whether the dispatch ended in a failure state.
func (s DispatchStatus) Failed() bool {
	return s == DispatchTimeout || s == DispatchUnreachable || s == DispatchMalformed
}

// TaskState represents the lifecycle state of a served task.
type TaskState string

const (
	TaskStateSubmitted TaskState = "submitted"
	TaskStateWorking   TaskState = "working"
	TaskStateCompleted TaskState = "completed"
	TaskStateFailed    TaskState = "failed"
	TaskStateCancelled TaskState = "canceled"
)

// LeadStatus represents the CRM state of a lead.
type LeadStatus string

const (
	LeadStatusNew       LeadStatus = "new"
	LeadStatusAssigned  LeadStatus = "assigned"
	LeadStatusEscalated LeadStatus = "escalated"
	LeadStatusRejected  LeadStatus = "rejected"
)

// QualificationLevel buckets a lead's qualification score.
type QualificationLevel string

const (
	QualificationHigh   QualificationLevel = "high"
	QualificationMedium QualificationLevel = "medium"
	QualificationLow    QualificationLevel = "low"
)
