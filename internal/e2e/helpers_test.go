package e2e

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"

	"animd/internal/httpapi"
	"animd/internal/sched"
	"animd/internal/wsbridge"
	"animd/pkg/types"
)

// newServer wires a real scheduler and websocket bridge behind an HTTP test
// server, tuned for fast test turnaround.
func newServer(t *testing.T) (*httptest.Server, *sched.Scheduler, *wsbridge.Bridge) {
	t.Helper()
	bridge := wsbridge.New(zerolog.Nop())
	t.Cleanup(bridge.Close)
	s := sched.NewWithConfig(sched.Config{
		Renderer:         bridge,
		Events:           bridge,
		FrameInterval:    2 * time.Millisecond,
		Backoff:          5 * time.Millisecond,
		CompletionBuffer: 10 * time.Millisecond,
	})
	t.Cleanup(s.Close)
	srv := httptest.NewServer(httpapi.NewMux(s, bridge))
	t.Cleanup(srv.Close)
	return srv, s, bridge
}

// dialRenderer connects a websocket client to the server's /ws endpoint and
// consumes the hello frame.
func dialRenderer(t *testing.T, srv *httptest.Server) *websocket.Conn {
	t.Helper()
	wsURL := "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws"
	conn, resp, err := websocket.DefaultDialer.Dial(wsURL, nil)
	if err != nil {
		t.Fatalf("dial %s: %v", wsURL, err)
	}
	if resp != nil && resp.Body != nil {
		_ = resp.Body.Close()
	}
	t.Cleanup(func() { _ = conn.Close() })

	hello, err := nextEnvelope(conn, 2*time.Second)
	if err != nil {
		t.Fatalf("read hello: %v", err)
	}
	if hello.Type != wsbridge.TypeHello || hello.ConnID == "" {
		t.Fatalf("expected hello frame with conn id, got %+v", hello)
	}
	return conn
}

// announceTargets declares the markers the client manages and waits for the
// bridge to index them.
func announceTargets(t *testing.T, conn *websocket.Conn, bridge *wsbridge.Bridge, targets ...string) {
	t.Helper()
	if err := conn.WriteJSON(wsbridge.Envelope{Type: wsbridge.TypeTargets, Targets: targets}); err != nil {
		t.Fatalf("announce targets: %v", err)
	}
	waitFor(t, 2*time.Second, func() bool { return bridge.TargetCount() == len(targets) },
		"bridge never indexed the announced targets")
}

// nextEnvelope reads one frame with a deadline.
func nextEnvelope(conn *websocket.Conn, timeout time.Duration) (wsbridge.Envelope, error) {
	var env wsbridge.Envelope
	_ = conn.SetReadDeadline(time.Now().Add(timeout))
	err := conn.ReadJSON(&env)
	return env, err
}

// waitFor polls cond until it holds or the deadline passes.
func waitFor(t *testing.T, timeout time.Duration, cond func() bool, msg string) {
	t.Helper()
	deadline := time.Now().Add(timeout)
	for !cond() {
		if time.Now().After(deadline) {
			t.Fatal(msg)
		}
		time.Sleep(5 * time.Millisecond)
	}
}

// waitDrained blocks until nothing is queued or running and returns the final
// snapshot.
func waitDrained(t *testing.T, s *sched.Scheduler) types.StatusResponse {
	t.Helper()
	var st types.StatusResponse
	waitFor(t, 5*time.Second, func() bool {
		st = s.Status()
		return st.QueueLength == 0 && st.ActiveAnimations == 0
	}, "scheduler did not drain in time")
	return st
}

func httpGet(t *testing.T, url string) (*http.Response, []byte) {
	t.Helper()
	req, err := http.NewRequestWithContext(context.Background(), http.MethodGet, url, nil)
	if err != nil {
		t.Fatalf("new req: %v", err)
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("do req: %v", err)
	}
	body, _ := io.ReadAll(resp.Body)
	_ = resp.Body.Close()
	return resp, body
}

func httpPostJSON(t *testing.T, url string, payload []byte) (*http.Response, []byte) {
	t.Helper()
	req, err := http.NewRequestWithContext(context.Background(), http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		t.Fatalf("new req: %v", err)
	}
	req.Header.Set("Content-Type", "application/json")
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("do req: %v", err)
	}
	body, _ := io.ReadAll(resp.Body)
	_ = resp.Body.Close()
	return resp, body
}
