// Package agentclient provides the HTTP client for sending queries to
// remote agents over the JSON-RPC message protocol.
package agentclient

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/MQDC-Tech/CustomerCare-AI/internal/a2a"
	"github.com/MQDC-Tech/CustomerCare-AI/internal/domain"
)

const (
	// historyLength is the number of prior exchanges the remote agent is
	// asked to include when building its reply.
	historyLength = 5

	// maxRawPreview bounds the stringified fallback for unrecognized
	// response shapes.
	maxRawPreview = 512

	// maxErrorBody bounds how much of a non-2xx body is surfaced.
	maxErrorBody = 8 * 1024
)

// placeholderTexts are progress strings some agents put in their task status
// while still working; they carry no answer and are skipped during parsing.
var placeholderTexts = []string{
	"processing your request",
	"analyzing your request",
	"coordinating with specialized agents",
}

// CallError reports a failed agent call with its failure classification.
type CallError struct {
	Status   domain.DispatchStatus
	Endpoint string
	Err      error
}

func (e *CallError) Error() string {
	return fmt.Sprintf("agent call failed (%s, endpoint %s): %v", e.Status, e.Endpoint, e.Err)
}

func (e *CallError) Unwrap() error {
	return e.Err
}

// Client sends queries to remote agents.
type Client struct {
	httpClient *http.Client
	clientName string
}

// NewClient creates an agent client. clientName is carried in the request
// metadata so receiving agents can attribute traffic.
func NewClient(clientName string, timeout time.Duration) *Client {
	return &Client{
		httpClient: &http.Client{Timeout: timeout},
		clientName: clientName,
	}
}

// Call sends the query to the agent at endpoint and returns the normalized
// text of the reply. Transport failures and timeouts come back as a
// *CallError; everything the remote answered, including protocol-level
// errors, is normalized into text.
func (c *Client) Call(ctx context.Context, endpoint, query string) (string, error) {
	if strings.TrimSpace(query) == "" {
		return "", fmt.Errorf("query is required")
	}

	now := time.Now()
	suffix := uuid.New().String()[:8]
	rpcReq := a2a.Request{
		JSONRPC: a2a.Version,
		ID:      fmt.Sprintf("req-%d-%s", now.Unix(), suffix),
		Method:  a2a.MethodMessageSend,
		Params: a2a.SendParams{
			Message: a2a.NewTextMessage(fmt.Sprintf("msg-%d-%s", now.Unix(), suffix), a2a.RoleUser, query),
			Configuration: a2a.SendConfiguration{
				Blocking:      true,
				HistoryLength: historyLength,
			},
			Metadata: a2a.Metadata{
				Client:    c.clientName,
				Timestamp: now.Unix(),
			},
		},
	}

	body, err := json.Marshal(rpcReq)
	if err != nil {
		return "", fmt.Errorf("failed to marshal request: %w", err)
	}

	url := strings.TrimSuffix(endpoint, "/") + "/"
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return "", &CallError{Status: classifyTransportErr(err), Endpoint: endpoint, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		errBody, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return fmt.Sprintf("HTTP Error %d: %s", resp.StatusCode, strings.TrimSpace(string(errBody))), nil
	}

	var rpcResp a2a.Response
	if err := json.NewDecoder(resp.Body).Decode(&rpcResp); err != nil {
		return "", &CallError{Status: domain.DispatchMalformed, Endpoint: endpoint, Err: err}
	}

	if rpcResp.Error != nil {
		return fmt.Sprintf("Agent Error %d: %s", rpcResp.Error.Code, rpcResp.Error.Message), nil
	}
	return normalizeResult(a2a.DecodeResult(rpcResp.Result)), nil
}

// normalizeResult extracts text from the decoded result following a fixed
// precedence: task status message, task history, synthetic completion
// string; message text parts; bounded raw preview.
func normalizeResult(res a2a.Result) string {
	switch res.Kind {
	case a2a.ResultTask:
		return normalizeTask(res.Task)
	case a2a.ResultMessage:
		if text := res.Message.Text(); text != "" {
			return text
		}
		return "Message received"
	default:
		return rawPreview(res.Raw)
	}
}

func normalizeTask(task *a2a.Task) string {
	// Prefer the status message, skipping progress placeholders.
	if task.Status.Message != nil {
		if text := meaningfulText(task.Status.Message); text != "" {
			return text
		}
	}

	// Fall back to the most recent history entry from the responding side.
	for i := len(task.History) - 1; i >= 0; i-- {
		msg := task.History[i]
		if !respondingRole(msg.Role) {
			continue
		}
		if text := meaningfulText(&msg); text != "" {
			return text
		}
	}

	return fmt.Sprintf("Task completed: %s", task.ID)
}

// meaningfulText concatenates the message's non-placeholder text parts.
func meaningfulText(msg *a2a.Message) string {
	var texts []string
	for _, p := range msg.Parts {
		if p.Type != a2a.PartTypeText || p.Text == "" {
			continue
		}
		if isPlaceholder(p.Text) {
			continue
		}
		texts = append(texts, p.Text)
	}
	return strings.Join(texts, "\n")
}

func isPlaceholder(text string) bool {
	lower := strings.ToLower(text)
	for _, p := range placeholderTexts {
		if strings.Contains(lower, p) {
			return true
		}
	}
	return false
}

func respondingRole(role string) bool {
	switch role {
	case a2a.RoleAgent, "assistant", "model":
		return true
	}
	return false
}

func rawPreview(raw json.RawMessage) string {
	s := string(raw)
	if len(s) > maxRawPreview {
		s = s[:maxRawPreview] + "..."
	}
	if s == "" {
		s = "(empty result)"
	}
	return "Unexpected response format from agent: " + s
}

func classifyTransportErr(err error) domain.DispatchStatus {
	if errors.Is(err, context.DeadlineExceeded) {
		return domain.DispatchTimeout
	}
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return domain.DispatchTimeout
	}
	return domain.DispatchUnreachable
}
