package http

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/MQDC-Tech/CustomerCare-AI/internal/a2a"
	"github.com/MQDC-Tech/CustomerCare-AI/internal/domain"

	store "github.com/MQDC-Tech/CustomerCare-AI/internal/repository"
)

// JSON-RPC error codes.
const (
	codeParseError     = -32700
	codeInvalidRequest = -32600
	codeMethodNotFound = -32601
	codeInvalidParams  = -32602
)

// Executor produces a text reply for a user query. Implementations must
// not panic; error returns become failed tasks.
type Executor interface {
	Execute(ctx context.Context, query string) (string, error)
}

// Handler serves the agent's protocol surface and owns task lifecycle.
type Handler struct {
	executor Executor
	store    store.Store
	card     a2a.AgentCard
}

// NewHandler creates a handler for one agent.
func NewHandler(executor Executor, st store.Store, card a2a.AgentCard) *Handler {
	return &Handler{executor: executor, store: st, card: card}
}

// RegisterRoutes registers the agent routes.
func (h *Handler) RegisterRoutes(e *echo.Echo) {
	e.POST("/", h.HandleRPC)
	e.GET(a2a.AgentCardPath, h.AgentCard)
	e.GET("/healthz", h.Health)
}

// AgentCard serves the discovery document.
// GET /.well-known/agent.json
func (h *Handler) AgentCard(c echo.Context) error {
	return c.JSON(http.StatusOK, h.card)
}

// Health reports liveness.
// GET /healthz
func (h *Handler) Health(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{"status": "ok", "agent": h.card.Name})
}

// HandleRPC serves a JSON-RPC message/send call. Protocol violations come
// back as JSON-RPC errors; executor failures come back as failed tasks.
// POST /
func (h *Handler) HandleRPC(c echo.Context) error {
	var req a2a.Request
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusOK, rpcError("", codeParseError, "failed to parse request body"))
	}
	if req.JSONRPC != a2a.Version {
		return c.JSON(http.StatusOK, rpcError(req.ID, codeInvalidRequest, "unsupported jsonrpc version"))
	}
	if req.Method != a2a.MethodMessageSend {
		return c.JSON(http.StatusOK, rpcError(req.ID, codeMethodNotFound, "unknown method "+req.Method))
	}
	query := req.Params.Message.Text()
	if query == "" {
		return c.JSON(http.StatusOK, rpcError(req.ID, codeInvalidParams, "message has no text parts"))
	}

	ctx := c.Request().Context()
	task := h.newTask(ctx, query, req.Params.Message)

	response, err := h.executor.Execute(ctx, query)
	if err != nil {
		log.Printf("ERROR: executor failed for task %s: %v", task.TaskID, err)
		failText := h.card.Name + " error: " + err.Error()
		h.completeTask(ctx, task, domain.TaskStateFailed, failText, err.Error())
		return c.JSON(http.StatusOK, h.taskResponse(req.ID, task, domain.TaskStateFailed, failText, req.Params.Message))
	}

	h.completeTask(ctx, task, domain.TaskStateCompleted, response, "")
	return c.JSON(http.StatusOK, h.taskResponse(req.ID, task, domain.TaskStateCompleted, response, req.Params.Message))
}

// newTask persists the submitted task and its user message, then marks it
// working. Storage failures are logged; task serving continues.
func (h *Handler) newTask(ctx context.Context, query string, userMsg a2a.Message) *domain.Task {
	task := &domain.Task{
		TaskID:    "task_" + uuid.New().String()[:8],
		ContextID: "ctx_" + uuid.New().String()[:8],
		State:     domain.TaskStateSubmitted,
		Query:     query,
		CreatedAt: time.Now(),
	}
	if err := h.store.CreateTask(ctx, task); err != nil {
		log.Printf("ERROR: failed to create task: %v", err)
		return task
	}

	msgID := userMsg.MessageID
	if msgID == "" {
		msgID = "msg_" + uuid.New().String()[:8]
	}
	if err := h.store.CreateTaskMessage(ctx, &domain.TaskMessage{
		MessageID: msgID,
		TaskID:    task.TaskID,
		Role:      a2a.RoleUser,
		Content:   query,
		CreatedAt: time.Now(),
	}); err != nil {
		log.Printf("ERROR: failed to store task message: %v", err)
	}
	if err := h.store.UpdateTaskState(ctx, task.TaskID, domain.TaskStateWorking); err != nil {
		log.Printf("ERROR: failed to update task state: %v", err)
	}
	task.State = domain.TaskStateWorking
	return task
}

func (h *Handler) completeTask(ctx context.Context, task *domain.Task, state domain.TaskState, response, errMsg string) {
	if err := h.store.CompleteTask(ctx, task.TaskID, state, response, errMsg); err != nil {
		log.Printf("ERROR: failed to complete task %s: %v", task.TaskID, err)
	}
	if state != domain.TaskStateCompleted {
		return
	}
	if err := h.store.CreateTaskMessage(ctx, &domain.TaskMessage{
		MessageID: "msg_" + uuid.New().String()[:8],
		TaskID:    task.TaskID,
		Role:      a2a.RoleAgent,
		Content:   response,
		CreatedAt: time.Now(),
	}); err != nil {
		log.Printf("ERROR: failed to store agent message: %v", err)
	}
}

// taskResponse wraps the outcome in a Task result envelope with the
// exchange as history.
func (h *Handler) taskResponse(requestID string, task *domain.Task, state domain.TaskState, text string, userMsg a2a.Message) a2a.Response {
	agentMsg := a2a.NewTextMessage("msg_"+uuid.New().String()[:8], a2a.RoleAgent, text)
	result := a2a.Task{
		ID:        task.TaskID,
		ContextID: task.ContextID,
		Status: a2a.TaskStatus{
			State:     string(state),
			Message:   &agentMsg,
			Timestamp: time.Now().Format(time.RFC3339),
		},
		History: []a2a.Message{userMsg, agentMsg},
		Kind:    "task",
	}

	raw, err := json.Marshal(result)
	if err != nil {
		log.Printf("ERROR: failed to marshal task result: %v", err)
		return rpcError(requestID, codeParseError, "failed to encode result")
	}
	return a2a.Response{JSONRPC: a2a.Version, ID: requestID, Result: raw}
}

func rpcError(requestID string, code int, message string) a2a.Response {
	return a2a.Response{
		JSONRPC: a2a.Version,
		ID:      requestID,
		Error:   &a2a.RPCError{Code: code, Message: message},
	}
}
