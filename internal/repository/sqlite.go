package store

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/MQDC-Tech/CustomerCare-AI/internal/domain"
)

// SQLiteStore implements Store using SQLite.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLiteStore creates a new SQLite store.
func NewSQLiteStore(dsn string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	// For in-memory SQLite, multiple connections create separate databases.
	// Keep a single connection to avoid schema/data disappearing across goroutines.
	if dsn == ":memory:" || strings.Contains(dsn, "mode=memory") {
		db.SetMaxOpenConns(1)
		db.SetMaxIdleConns(1)
	}

	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to enable foreign keys: %w", err)
	}

	s := &SQLiteStore{db: db}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	return s, nil
}

// migrate runs database migrations.
func (s *SQLiteStore) migrate() error {
	migrations := []string{
		`CREATE TABLE IF NOT EXISTS tasks (
			task_id TEXT PRIMARY KEY,
			context_id TEXT NOT NULL,
			state TEXT NOT NULL,
			query TEXT NOT NULL,
			response TEXT,
			error TEXT,
			created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
			completed_at DATETIME
		)`,
		`CREATE INDEX IF NOT EXISTS idx_tasks_context ON tasks(context_id, created_at)`,
		`CREATE TABLE IF NOT EXISTS task_messages (
			message_id TEXT PRIMARY KEY,
			task_id TEXT NOT NULL,
			role TEXT NOT NULL,
			content TEXT NOT NULL,
			created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
			FOREIGN KEY (task_id) REFERENCES tasks(task_id)
		)`,
		`CREATE INDEX IF NOT EXISTS idx_task_messages_task ON task_messages(task_id, created_at)`,
		`CREATE TABLE IF NOT EXISTS profiles (
			user_id TEXT PRIMARY KEY,
			name TEXT NOT NULL DEFAULT '',
			preferences TEXT,
			context TEXT,
			created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
			updated_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
		)`,
		`CREATE TABLE IF NOT EXISTS leads (
			lead_id TEXT PRIMARY KEY,
			name TEXT NOT NULL,
			email TEXT NOT NULL,
			phone TEXT NOT NULL,
			property_interest TEXT NOT NULL,
			budget_range TEXT,
			notes TEXT,
			status TEXT NOT NULL DEFAULT 'new',
			score INTEGER NOT NULL DEFAULT 0,
			assigned_agent TEXT,
			created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
			updated_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
		)`,
		`CREATE INDEX IF NOT EXISTS idx_leads_status ON leads(status, created_at)`,
		`CREATE TABLE IF NOT EXISTS conversations (
			entry_id TEXT PRIMARY KEY,
			session_id TEXT NOT NULL,
			query TEXT NOT NULL,
			response TEXT NOT NULL,
			agent TEXT NOT NULL,
			created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
		)`,
		`CREATE INDEX IF NOT EXISTS idx_conversations_session ON conversations(session_id, created_at)`,
	}

	for _, migration := range migrations {
		if _, err := s.db.Exec(migration); err != nil {
			return fmt.Errorf("migration failed: %w", err)
		}
	}
	return nil
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

func (s *SQLiteStore) CreateTask(ctx context.Context, task *domain.Task) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO tasks (task_id, context_id, state, query, response, error, created_at) VALUES (?, ?, ?, ?, ?, ?, ?)`,
		task.TaskID, task.ContextID, task.State, task.Query, task.Response, task.Error, task.CreatedAt,
	)
	return err
}

func (s *SQLiteStore) GetTask(ctx context.Context, taskID string) (*domain.Task, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT task_id, context_id, state, query, COALESCE(response, ''), COALESCE(error, ''), created_at, completed_at FROM tasks WHERE task_id = ?`,
		taskID,
	)
	var task domain.Task
	var completedAt sql.NullTime
	err := row.Scan(&task.TaskID, &task.ContextID, &task.State, &task.Query, &task.Response, &task.Error, &task.CreatedAt, &completedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	if completedAt.Valid {
		task.CompletedAt = &completedAt.Time
	}
	return &task, nil
}

func (s *SQLiteStore) UpdateTaskState(ctx context.Context, taskID string, state domain.TaskState) error {
	_, err := s.db.ExecContext(ctx, `UPDATE tasks SET state = ? WHERE task_id = ?`, state, taskID)
	return err
}

func (s *SQLiteStore) CompleteTask(ctx context.Context, taskID string, state domain.TaskState, response, errMsg string) error {
	_, err := s.db.ExecContext(ctx,
		`UPDATE tasks SET state = ?, response = ?, error = ?, completed_at = ? WHERE task_id = ?`,
		state, response, errMsg, time.Now(), taskID,
	)
	return err
}

func (s *SQLiteStore) CreateTaskMessage(ctx context.Context, msg *domain.TaskMessage) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO task_messages (message_id, task_id, role, content, created_at) VALUES (?, ?, ?, ?, ?)`,
		msg.MessageID, msg.TaskID, msg.Role, msg.Content, msg.CreatedAt,
	)
	return err
}

func (s *SQLiteStore) GetTaskMessages(ctx context.Context, taskID string, limit int) ([]domain.TaskMessage, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT message_id, task_id, role, content, created_at FROM task_messages WHERE task_id = ? ORDER BY created_at ASC LIMIT ?`,
		taskID, limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var messages []domain.TaskMessage
	for rows.Next() {
		var msg domain.TaskMessage
		if err := rows.Scan(&msg.MessageID, &msg.TaskID, &msg.Role, &msg.Content, &msg.CreatedAt); err != nil {
			return nil, err
		}
		messages = append(messages, msg)
	}
	return messages, rows.Err()
}

func (s *SQLiteStore) GetProfile(ctx context.Context, userID string) (*domain.Profile, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT user_id, name, COALESCE(preferences, ''), COALESCE(context, ''), created_at, updated_at FROM profiles WHERE user_id = ?`,
		userID,
	)
	var profile domain.Profile
	var prefs, pctx string
	err := row.Scan(&profile.UserID, &profile.Name, &prefs, &pctx, &profile.CreatedAt, &profile.UpdatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	if prefs != "" {
		profile.Preferences = []byte(prefs)
	}
	if pctx != "" {
		profile.Context = []byte(pctx)
	}
	return &profile, nil
}

func (s *SQLiteStore) UpsertProfile(ctx context.Context, profile *domain.Profile) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO profiles (user_id, name, preferences, context, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?)
		 ON CONFLICT(user_id) DO UPDATE SET
			name = excluded.name,
			preferences = excluded.preferences,
			context = excluded.context,
			updated_at = excluded.updated_at`,
		profile.UserID, profile.Name, string(profile.Preferences), string(profile.Context), profile.CreatedAt, profile.UpdatedAt,
	)
	return err
}

func (s *SQLiteStore) CreateLead(ctx context.Context, lead *domain.Lead) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO leads (lead_id, name, email, phone, property_interest, budget_range, notes, status, score, assigned_agent, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		lead.LeadID, lead.Name, lead.Email, lead.Phone, lead.PropertyInterest, lead.BudgetRange,
		lead.Notes, lead.Status, lead.Score, lead.AssignedAgent, lead.CreatedAt, lead.UpdatedAt,
	)
	return err
}

func (s *SQLiteStore) GetLead(ctx context.Context, leadID string) (*domain.Lead, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT lead_id, name, email, phone, property_interest, COALESCE(budget_range, ''), COALESCE(notes, ''),
			status, score, COALESCE(assigned_agent, ''), created_at, updated_at
		 FROM leads WHERE lead_id = ?`,
		leadID,
	)
	var lead domain.Lead
	err := row.Scan(&lead.LeadID, &lead.Name, &lead.Email, &lead.Phone, &lead.PropertyInterest,
		&lead.BudgetRange, &lead.Notes, &lead.Status, &lead.Score, &lead.AssignedAgent,
		&lead.CreatedAt, &lead.UpdatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &lead, nil
}

func (s *SQLiteStore) UpdateLeadRouting(ctx context.Context, leadID string, status domain.LeadStatus, assignedAgent string, score int) error {
	_, err := s.db.ExecContext(ctx,
		`UPDATE leads SET status = ?, assigned_agent = ?, score = ?, updated_at = ? WHERE lead_id = ?`,
		status, assignedAgent, score, time.Now(), leadID,
	)
	return err
}

func (s *SQLiteStore) CreateConversationEntry(ctx context.Context, entry *domain.ConversationEntry) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO conversations (entry_id, session_id, query, response, agent, created_at) VALUES (?, ?, ?, ?, ?, ?)`,
		entry.EntryID, entry.SessionID, entry.Query, entry.Response, entry.Agent, entry.CreatedAt,
	)
	return err
}

func (s *SQLiteStore) GetConversation(ctx context.Context, sessionID string, limit int) ([]domain.ConversationEntry, error) {
	if limit <= 0 {
		limit = 10
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT entry_id, session_id, query, response, agent, created_at
		 FROM conversations WHERE session_id = ?
		 ORDER BY created_at DESC LIMIT ?`,
		sessionID, limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []domain.ConversationEntry
	for rows.Next() {
		var entry domain.ConversationEntry
		if err := rows.Scan(&entry.EntryID, &entry.SessionID, &entry.Query, &entry.Response, &entry.Agent, &entry.CreatedAt); err != nil {
			return nil, err
		}
		entries = append(entries, entry)
	}
	return entries, rows.Err()
}

// Ensure SQLiteStore implements Store.
var _ Store = (*SQLiteStore)(nil)
