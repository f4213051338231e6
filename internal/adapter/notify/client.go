// Package notify delivers notifications to the platform's notification
// service over its JSON-RPC socket. Delivery is best-effort: without a
// configured endpoint the push degrades to a local acknowledgment.
package notify

import (
	"context"
	"fmt"
	"log"
	"net"
	"net/rpc/jsonrpc"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Client pushes notifications to the notification service.
type Client struct {
	addr        string
	dialTimeout time.Duration
	callTimeout time.Duration
}

// NewClient creates a notification client. An empty baseURL disables remote
// delivery.
func NewClient(baseURL string) *Client {
	return &Client{
		addr:        resolveRPCAddr(baseURL),
		dialTimeout: 5 * time.Second,
		callTimeout: 5 * time.Second,
	}
}

// PushRequest represents the request body for a notification push.
type PushRequest struct {
	NotificationID string `json:"notification_id"`
	Recipient      string `json:"recipient"`
	Message        string `json:"message"`
	Channel        string `json:"channel"`
	Priority       string `json:"priority"`
}

// PushResponse represents the response for a notification push.
type PushResponse struct {
	OK bool `json:"ok"`
}

// Push sends a notification and returns its id. Without a configured
// endpoint the notification is acknowledged locally. The call is bounded by
// both ctx and the client's call timeout.
func (c *Client) Push(ctx context.Context, recipient, message, channel, priority string) (string, error) {
	notifID := "notif_" + uuid.New().String()[:8]
	if c.addr == "" {
		return notifID, nil
	}

	req := &PushRequest{
		NotificationID: notifID,
		Recipient:      recipient,
		Message:        message,
		Channel:        channel,
		Priority:       priority,
	}

	var resp PushResponse
	ctx, cancel := context.WithTimeout(ctx, c.callTimeout)
	defer cancel()

	if err := c.call(ctx, "Notify.Push", req, &resp); err != nil {
		return "", fmt.Errorf("failed to push notification: %w", err)
	}
	if !resp.OK {
		log.Printf("WARN: notification rpc returned ok=false (id=%s)", notifID)
		return "", fmt.Errorf("notification rpc returned ok=false")
	}

	return notifID, nil
}

func (c *Client) call(ctx context.Context, method string, args, reply interface{}) error {
	conn, err := net.DialTimeout("tcp", c.addr, c.dialTimeout)
	if err != nil {
		return err
	}
	defer conn.Close()

	if deadline, ok := ctx.Deadline(); ok {
		_ = conn.SetDeadline(deadline)
	} else if c.callTimeout > 0 {
		_ = conn.SetDeadline(time.Now().Add(c.callTimeout))
	}

	client := jsonrpc.NewClient(conn)
	call := client.Go(method, args, reply, nil)

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-call.Done:
		return call.Error
	}
}

func resolveRPCAddr(raw string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return ""
	}
	if strings.Contains(raw, "://") {
		parsed, err := url.Parse(raw)
		if err == nil && parsed.Host != "" {
			return parsed.Host
		}
	}
	return raw
}
