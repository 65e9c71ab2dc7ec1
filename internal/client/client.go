package client

import (
	"context"
	"fmt"
	"net/url"
	"time"

	"github.com/exynos7904/powerd/internal/dispatch"
	"github.com/exynos7904/powerd/internal/protocol"
	"github.com/exynos7904/powerd/internal/ui"
	"github.com/gorilla/websocket"
)

// Options configures the connection to the host power service.
type Options struct {
	URL   string
	Token string

	MinBackoff time.Duration
	MaxBackoff time.Duration
}

// Client keeps a WebSocket session with the host power service and
// feeds its requests to the dispatcher.
type Client struct {
	opts       Options
	dispatcher *dispatch.Dispatcher
	backoff    *Backoff
}

// New creates a Client. Nothing is dialed until Run.
func New(opts Options, d *dispatch.Dispatcher) *Client {
	return &Client{
		opts:       opts,
		dispatcher: d,
		backoff:    NewBackoff(opts.MinBackoff, opts.MaxBackoff),
	}
}

// Run holds a session open until ctx is cancelled, redialing after each
// failure. It returns nil on cancellation and an error only for a URL
// that can never be dialed.
func (c *Client) Run(ctx context.Context) error {
	target, err := c.dialURL()
	if err != nil {
		return err
	}
	for {
		err := c.runSession(ctx, target)
		if ctx.Err() != nil {
			return nil
		}
		ui.Error("Power service session ended: %v", err)

		if c.backoff.Wait(ctx) != nil {
			return nil
		}
		ui.Info("Redialing power service...")
	}
}

// dialURL appends the shared token as a query parameter.
func (c *Client) dialURL() (string, error) {
	u, err := url.Parse(c.opts.URL)
	if err != nil {
		return "", fmt.Errorf("invalid URL: %w", err)
	}
	if c.opts.Token != "" {
		q := u.Query()
		q.Set("token", c.opts.Token)
		u.RawQuery = q.Encode()
	}
	return u.String(), nil
}

func (c *Client) runSession(ctx context.Context, target string) error {
	conn, _, err := websocket.DefaultDialer.DialContext(ctx, target, nil)
	if err != nil {
		return fmt.Errorf("dial: %w", err)
	}
	defer conn.Close()

	s := newSession(conn)
	if err := s.handshake(); err != nil {
		return err
	}
	c.backoff.Reset()
	ui.Success("Connected to power service")

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	// Unblock serve's read once the session is over.
	go func() {
		<-ctx.Done()
		conn.Close()
	}()
	go s.writeLoop(ctx)
	go s.heartbeat(ctx)

	s.enqueue(protocol.Response{Type: "info", Success: true, Payload: c.dispatcher.Info()})
	return s.serve(ctx, c.dispatcher)
}
