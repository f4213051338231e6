package notify

import (
	"context"
	"errors"
	"net"
	"net/rpc"
	"net/rpc/jsonrpc"
	"strings"
	"testing"
)

func TestPushLocalAck(t *testing.T) {
	c := NewClient("")

	id, err := c.Push(context.Background(), "user", "hello", "email", "normal")
	if err != nil {
		t.Fatalf("Push failed: %v", err)
	}
	if !strings.HasPrefix(id, "notif_") {
		t.Fatalf("unexpected notification id: %q", id)
	}
}

// notifyService is a test double for the notification RPC service.
type notifyService struct {
	received PushRequest
}

func (s *notifyService) Push(req *PushRequest, resp *PushResponse) error {
	s.received = *req
	resp.OK = true
	return nil
}

func TestPushOverRPC(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("failed to listen: %v", err)
	}
	defer ln.Close()

	svc := &notifyService{}
	server := rpc.NewServer()
	if err := server.RegisterName("Notify", svc); err != nil {
		t.Fatalf("failed to register service: %v", err)
	}
	go func() {
		for {
			conn, err := ln.Accept()
			if err != nil {
				return
			}
			go server.ServeCodec(jsonrpc.NewServerCodec(conn))
		}
	}()

	c := NewClient(ln.Addr().String())
	id, err := c.Push(context.Background(), "user", "meeting reminder", "email", "high")
	if err != nil {
		t.Fatalf("Push failed: %v", err)
	}
	if svc.received.NotificationID != id {
		t.Fatalf("id mismatch: sent %q, received %q", id, svc.received.NotificationID)
	}
	if svc.received.Message != "meeting reminder" || svc.received.Priority != "high" {
		t.Fatalf("unexpected request: %+v", svc.received)
	}
}

func TestPushCancelledContext(t *testing.T) {
	// The listener accepts but never answers, so only cancellation can end
	// the call.
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("failed to listen: %v", err)
	}
	defer ln.Close()
	go func() {
		for {
			conn, err := ln.Accept()
			if err != nil {
				return
			}
			defer conn.Close()
		}
	}()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	c := NewClient(ln.Addr().String())
	_, err = c.Push(ctx, "user", "hello", "email", "normal")
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}

func TestPushUnreachable(t *testing.T) {
	// Port reserved then released: nothing listening.
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("failed to listen: %v", err)
	}
	addr := ln.Addr().String()
	ln.Close()

	c := NewClient(addr)
	if _, err := c.Push(context.Background(), "user", "hello", "email", "normal"); err == nil {
		t.Fatal("expected error for unreachable endpoint")
	}
}

func TestResolveRPCAddr(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"", ""},
		{"localhost:9000", "localhost:9000"},
		{"tcp://localhost:9000", "localhost:9000"},
		{"http://notify:8000", "notify:8000"},
	}
	for _, tc := range cases {
		if got := resolveRPCAddr(tc.in); got != tc.want {
			t.Fatalf("resolveRPCAddr(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}
