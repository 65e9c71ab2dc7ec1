package client

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/exynos7904/powerd/internal/dispatch"
	"github.com/exynos7904/powerd/internal/protocol"
	"github.com/gorilla/websocket"
)

const (
	pingInterval = 20 * time.Second
	writeTimeout = 10 * time.Second
	outboxSize   = 64
)

// session is one established connection. Only writeLoop writes to conn.
type session struct {
	conn   *websocket.Conn
	outbox chan interface{}
}

func newSession(conn *websocket.Conn) *session {
	return &session{conn: conn, outbox: make(chan interface{}, outboxSize)}
}

// handshake waits for the service's "connected" greeting.
func (s *session) handshake() error {
	var hello struct {
		Type string `json:"type"`
	}
	if err := s.conn.ReadJSON(&hello); err != nil {
		return fmt.Errorf("read greeting: %w", err)
	}
	if hello.Type != "connected" {
		return fmt.Errorf("unexpected greeting %q", hello.Type)
	}
	return nil
}

// enqueue hands v to writeLoop, dropping it when the outbox is full.
func (s *session) enqueue(v interface{}) {
	select {
	case s.outbox <- v:
	default:
		slog.Warn("outbox full, dropping message")
	}
}

func (s *session) writeLoop(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case msg := <-s.outbox:
			_ = s.conn.SetWriteDeadline(time.Now().Add(writeTimeout))
			if err := s.conn.WriteJSON(msg); err != nil {
				slog.Error("websocket write", "err", err)
				// fails the pending read in serve
				s.conn.Close()
				return
			}
		}
	}
}

func (s *session) heartbeat(ctx context.Context) {
	ticker := time.NewTicker(pingInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.enqueue(map[string]string{"type": "ping"})
		}
	}
}

// serve reads requests until the connection fails or ctx ends. Each
// request is dispatched before the next is read, so the policy sees one
// call at a time in arrival order.
func (s *session) serve(ctx context.Context, d *dispatch.Dispatcher) error {
	for {
		_, raw, err := s.conn.ReadMessage()
		if err != nil {
			if ctx.Err() != nil {
				return nil
			}
			return fmt.Errorf("read: %w", err)
		}

		var req protocol.Request
		if err := json.Unmarshal(raw, &req); err != nil {
			slog.Warn("invalid message", "err", err)
			continue
		}

		switch req.Type {
		case "ping":
			s.enqueue(map[string]string{"type": "pong"})
		case "pong":
		default:
			s.enqueue(d.Handle(req))
		}
	}
}
