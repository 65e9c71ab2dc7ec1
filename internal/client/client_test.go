package client

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/exynos7904/powerd/internal/dispatch"
	"github.com/exynos7904/powerd/internal/power"
	"github.com/exynos7904/powerd/internal/protocol"
	"github.com/gorilla/websocket"
)

type memNodes struct {
	writes chan string
}

func (m *memNodes) Write(path, value string) { m.writes <- path + "=" + value }
func (m *memNodes) Exists(string) bool       { return true }

type nopTouch struct{}

func (nopTouch) Init() error       { return nil }
func (nopTouch) EnableDoubleTap()  {}
func (nopTouch) DisableDoubleTap() {}

func wsURL(srv *httptest.Server) string {
	return "ws" + strings.TrimPrefix(srv.URL, "http")
}

func TestClientServesRequests(t *testing.T) {
	nodes := &memNodes{writes: make(chan string, 16)}
	d := dispatch.New(power.New(power.DefaultPlatform(), nodes, nopTouch{}))

	gotToken := make(chan string, 1)
	results := make(chan protocol.Response, 4)
	upgrader := websocket.Upgrader{}

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotToken <- r.URL.Query().Get("token")
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			return
		}
		defer conn.Close()

		conn.WriteJSON(map[string]string{"type": "connected"})

		var info protocol.Response
		if err := conn.ReadJSON(&info); err != nil || info.Type != "info" {
			return
		}
		conn.WriteJSON(protocol.Request{ID: "a", Type: protocol.TypeSetProfile, Payload: json.RawMessage(`{"profile":0}`)})
		conn.WriteJSON(protocol.Request{ID: "b", Type: protocol.TypeGetFeature, Payload: json.RawMessage(`{"feature":4096}`)})

		for i := 0; i < 2; i++ {
			var resp protocol.Response
			if err := conn.ReadJSON(&resp); err != nil {
				return
			}
			results <- resp
		}
	}))
	defer srv.Close()

	c := New(Options{URL: wsURL(srv), Token: "secret"}, d)
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- c.Run(ctx) }()

	timeout := time.After(5 * time.Second)
	select {
	case tok := <-gotToken:
		if tok != "secret" {
			t.Errorf("token = %q", tok)
		}
	case <-timeout:
		t.Fatal("client never connected")
	}

	for _, wantID := range []string{"a", "b"} {
		select {
		case resp := <-results:
			if resp.ID != wantID || !resp.Success {
				t.Errorf("response = %+v, want id %s success", resp, wantID)
			}
		case <-timeout:
			t.Fatalf("no response for %s", wantID)
		}
	}

	select {
	case w := <-nodes.writes:
		if w != power.DefaultPlatform().CPUMaxFreqNode+"=1144000" {
			t.Errorf("write = %q", w)
		}
	case <-timeout:
		t.Fatal("set_profile did not write")
	}

	cancel()
	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("Run returned %v", err)
		}
	case <-timeout:
		t.Fatal("Run did not stop")
	}
}

func TestClientRedialsAfterDrop(t *testing.T) {
	d := dispatch.New(power.New(power.DefaultPlatform(), &memNodes{writes: make(chan string, 1)}, nopTouch{}))

	var sessions atomic.Int32
	dials := make(chan time.Time, 4)
	answered := make(chan protocol.Response, 1)
	upgrader := websocket.Upgrader{}

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		dials <- time.Now()
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			return
		}
		defer conn.Close()

		conn.WriteJSON(map[string]string{"type": "connected"})
		var info protocol.Response
		if err := conn.ReadJSON(&info); err != nil {
			return
		}
		// hang up on the first session right after the info message
		if sessions.Add(1) == 1 {
			return
		}
		conn.WriteJSON(protocol.Request{ID: "again", Type: protocol.TypeGetFeature, Payload: json.RawMessage(`{"feature":4096}`)})
		var resp protocol.Response
		if err := conn.ReadJSON(&resp); err == nil {
			answered <- resp
		}
	}))
	defer srv.Close()

	c := New(Options{URL: wsURL(srv), MinBackoff: 50 * time.Millisecond, MaxBackoff: 100 * time.Millisecond}, d)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	done := make(chan error, 1)
	go func() { done <- c.Run(ctx) }()

	timeout := time.After(5 * time.Second)
	var first, second time.Time
	for _, at := range []*time.Time{&first, &second} {
		select {
		case *at = <-dials:
		case <-timeout:
			t.Fatal("client did not redial")
		}
	}
	if gap := second.Sub(first); gap < 50*time.Millisecond {
		t.Errorf("redialed after %v, before the configured minimum backoff", gap)
	}

	select {
	case resp := <-answered:
		if resp.ID != "again" || !resp.Success {
			t.Errorf("second session response = %+v", resp)
		}
	case <-timeout:
		t.Fatal("second session was not served")
	}

	cancel()
	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("Run returned %v", err)
		}
	case <-timeout:
		t.Fatal("Run did not stop")
	}
}

func TestClientStopsDuringBackoff(t *testing.T) {
	d := dispatch.New(power.New(power.DefaultPlatform(), &memNodes{writes: make(chan string, 1)}, nopTouch{}))

	// nothing listens here, so every dial fails and Run sits in backoff
	srv := httptest.NewServer(http.NotFoundHandler())
	target := wsURL(srv)
	srv.Close()

	c := New(Options{URL: target, MinBackoff: time.Minute, MaxBackoff: time.Minute}, d)
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- c.Run(ctx) }()

	time.Sleep(50 * time.Millisecond)
	cancel()
	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("Run returned %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("Run kept waiting after cancel")
	}
}
