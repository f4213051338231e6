// Package a2a defines the JSON-RPC envelopes exchanged with remote agents.
package a2a

import (
	"encoding/json"
	"strings"
)

const (
	// Version is the JSON-RPC protocol version carried on every envelope.
	Version = "2.0"
	// MethodMessageSend is the RPC method for sending a user message.
	MethodMessageSend = "message/send"
)

// Message roles.
const (
	RoleUser  = "user"
	RoleAgent = "agent"
)

// Part kinds.
const (
	PartTypeText = "text"
)

// Part is one content part of a message.
type Part struct {
	Type string `json:"type"`
	Text string `json:"text,omitempty"`
}

// Message is a single message exchanged with an agent.
type Message struct {
	MessageID string `json:"messageId"`
	Role      string `json:"role"`
	Parts     []Part `json:"parts"`
	Kind      string `json:"kind,omitempty"`
}

// Text concatenates the message's text parts in order.
func (m *Message) Text() string {
	var texts []string
	for _, p := range m.Parts {
		if p.Type == PartTypeText && p.Text != "" {
			texts = append(texts, p.Text)
		}
	}
	return strings.Join(texts, "\n")
}

// NewTextMessage builds a single-part text message.
func NewTextMessage(messageID, role, text string) Message {
	return Message{
		MessageID: messageID,
		Role:      role,
		Parts:     []Part{{Type: PartTypeText, Text: text}},
	}
}

// SendConfiguration controls delivery of a message/send call.
type SendConfiguration struct {
	Blocking      bool `json:"blocking"`
	HistoryLength int  `json:"historyLength"`
}

// Metadata identifies the issuing client.
type Metadata struct {
	Client    string `json:"client"`
	Timestamp int64  `json:"timestamp"`
}

// SendParams are the params of a message/send request.
type SendParams struct {
	Message       Message           `json:"message"`
	Configuration SendConfiguration `json:"configuration"`
	Metadata      Metadata          `json:"metadata,omitempty"`
}

// Request is a JSON-RPC request envelope.
type Request struct {
	JSONRPC string     `json:"jsonrpc"`
	ID      string     `json:"id"`
	Method  string     `json:"method"`
	Params  SendParams `json:"params"`
}

// RPCError is a JSON-RPC error object.
type RPCError struct {
	Code    int             `json:"code"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data,omitempty"`
}

// Response is a JSON-RPC response envelope. Exactly one of Result or Error
// is set.
type Response struct {
	JSONRPC string          `json:"jsonrpc"`
	ID      string          `json:"id"`
	Result  json.RawMessage `json:"result,omitempty"`
	Error   *RPCError       `json:"error,omitempty"`
}

// TaskStatus is the current status of a remote task.
type TaskStatus struct {
	State     string   `json:"state"`
	Message   *Message `json:"message,omitempty"`
	Timestamp string   `json:"timestamp,omitempty"`
}

// Task is the task-shaped result of a message/send call.
type Task struct {
	ID        string     `json:"id"`
	ContextID string     `json:"contextId"`
	Status    TaskStatus `json:"status"`
	History   []Message  `json:"history,omitempty"`
	Kind      string     `json:"kind,omitempty"`
}

// ResultKind tags the decoded shape of a JSON-RPC result.
type ResultKind int

const (
	ResultUnknown ResultKind = iota
	ResultTask
	ResultMessage
)

// Result is the decoded tagged union of a message/send result.
type Result struct {
	Kind    ResultKind
	Task    *Task
	Message *Message
	Raw     json.RawMessage
}

// DecodeResult probes a raw JSON-RPC result and decodes it into the tagged
// union. Unrecognized shapes come back as ResultUnknown with Raw preserved.
func DecodeResult(raw json.RawMessage) Result {
	res := Result{Kind: ResultUnknown, Raw: raw}
	if len(raw) == 0 {
		return res
	}

	var probe struct {
		Kind      string          `json:"kind"`
		ID        string          `json:"id"`
		Status    json.RawMessage `json:"status"`
		MessageID string          `json:"messageId"`
		Role      string          `json:"role"`
		Parts     json.RawMessage `json:"parts"`
	}
	if err := json.Unmarshal(raw, &probe); err != nil {
		return res
	}

	switch {
	case probe.Kind == "task" || (probe.ID != "" && len(probe.Status) > 0):
		var task Task
		if err := json.Unmarshal(raw, &task); err != nil {
			return res
		}
		res.Kind = ResultTask
		res.Task = &task
	case probe.Kind == "message" || probe.MessageID != "" || (probe.Role != "" && len(probe.Parts) > 0):
		var msg Message
		if err := json.Unmarshal(raw, &msg); err != nil {
			return res
		}
		res.Kind = ResultMessage
		res.Message = &msg
	}
	return res
}
