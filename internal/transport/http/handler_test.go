package http

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"

	"github.com/MQDC-Tech/CustomerCare-AI/internal/a2a"
	"github.com/MQDC-Tech/CustomerCare-AI/internal/domain"
	"github.com/MQDC-Tech/CustomerCare-AI/tests/helpers"

	store "github.com/MQDC-Tech/CustomerCare-AI/internal/repository"
)

type stubExecutor struct {
	reply string
	err   error
	last  string
}

func (s *stubExecutor) Execute(ctx context.Context, query string) (string, error) {
	s.last = query
	if s.err != nil {
		return "", s.err
	}
	return s.reply, nil
}

func newTestHandler(t *testing.T, exec Executor) (*Handler, store.Store) {
	t.Helper()
	st := helpers.NewTestSQLiteStore(t)
	card := a2a.AgentCard{Name: "Test Agent", Version: "1.0.0"}
	return NewHandler(exec, st, card), st
}

func postRPC(t *testing.T, h *Handler, body []byte) (*httptest.ResponseRecorder, a2a.Response) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/", bytes.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	err := h.HandleRPC(c)
	assert.NoError(t, err)

	var resp a2a.Response
	assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	return rec, resp
}

func sendRequest(query string) []byte {
	req := a2a.Request{
		JSONRPC: a2a.Version,
		ID:      "req-1",
		Method:  a2a.MethodMessageSend,
		Params: a2a.SendParams{
			Message:       a2a.NewTextMessage("msg-1", a2a.RoleUser, query),
			Configuration: a2a.SendConfiguration{Blocking: true, HistoryLength: 5},
		},
	}
	body, _ := json.Marshal(req)
	return body
}

func TestHandleRPCCompletedTask(t *testing.T) {
	exec := &stubExecutor{reply: "Found 2 properties."}
	h, st := newTestHandler(t, exec)

	rec, resp := postRPC(t, h, sendRequest("find properties"))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "req-1", resp.ID)
	assert.Nil(t, resp.Error)
	assert.Equal(t, "find properties", exec.last)

	var task a2a.Task
	assert.NoError(t, json.Unmarshal(resp.Result, &task))
	assert.Equal(t, "task", task.Kind)
	assert.Equal(t, string(domain.TaskStateCompleted), task.Status.State)
	assert.NotNil(t, task.Status.Message)
	assert.Equal(t, "Found 2 properties.", task.Status.Message.Text())
	assert.Len(t, task.History, 2)
	assert.Equal(t, a2a.RoleUser, task.History[0].Role)
	assert.Equal(t, a2a.RoleAgent, task.History[1].Role)

	// Lifecycle persisted.
	stored, err := st.GetTask(context.Background(), task.ID)
	assert.NoError(t, err)
	assert.NotNil(t, stored)
	assert.Equal(t, domain.TaskStateCompleted, stored.State)
	assert.Equal(t, "Found 2 properties.", stored.Response)

	msgs, err := st.GetTaskMessages(context.Background(), task.ID, 10)
	assert.NoError(t, err)
	assert.Len(t, msgs, 2)
}

func TestHandleRPCExecutorFailure(t *testing.T) {
	exec := &stubExecutor{err: errors.New("backend down")}
	h, st := newTestHandler(t, exec)

	_, resp := postRPC(t, h, sendRequest("find properties"))

	assert.Nil(t, resp.Error)

	var task a2a.Task
	assert.NoError(t, json.Unmarshal(resp.Result, &task))
	assert.Equal(t, string(domain.TaskStateFailed), task.Status.State)
	assert.Contains(t, task.Status.Message.Text(), "backend down")

	stored, err := st.GetTask(context.Background(), task.ID)
	assert.NoError(t, err)
	assert.Equal(t, domain.TaskStateFailed, stored.State)
	assert.Equal(t, "backend down", stored.Error)
}

func TestHandleRPCProtocolErrors(t *testing.T) {
	h, _ := newTestHandler(t, &stubExecutor{reply: "ok"})

	cases := []struct {
		name     string
		body     []byte
		wantCode int
	}{
		{"parse error", []byte("not json"), -32700},
		{"wrong version", []byte(`{"jsonrpc":"1.0","id":"1","method":"message/send"}`), -32600},
		{"unknown method", []byte(`{"jsonrpc":"2.0","id":"1","method":"tasks/get"}`), -32601},
		{"no text parts", []byte(`{"jsonrpc":"2.0","id":"1","method":"message/send","params":{"message":{"messageId":"m1","role":"user","parts":[]}}}`), -32602},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec, resp := postRPC(t, h, tc.body)
			assert.Equal(t, http.StatusOK, rec.Code)
			assert.NotNil(t, resp.Error)
			assert.Equal(t, tc.wantCode, resp.Error.Code)
			assert.Nil(t, resp.Result)
		})
	}
}

func TestAgentCardEndpoint(t *testing.T) {
	h, _ := newTestHandler(t, &stubExecutor{reply: "ok"})

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, a2a.AgentCardPath, nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	assert.NoError(t, h.AgentCard(c))
	assert.Equal(t, http.StatusOK, rec.Code)

	var card a2a.AgentCard
	assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &card))
	assert.Equal(t, "Test Agent", card.Name)
}

func TestHealthEndpoint(t *testing.T) {
	h, _ := newTestHandler(t, &stubExecutor{reply: "ok"})

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	assert.NoError(t, h.Health(c))
	assert.Equal(t, http.StatusOK, rec.Code)

	var body map[string]string
	assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "ok", body["status"])
}
