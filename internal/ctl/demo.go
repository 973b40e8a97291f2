package ctl

import (
	"fmt"
	"net/url"
	"strings"
	"sync/atomic"
	"time"

	"github.com/gorilla/websocket"

	"animd/internal/wsbridge"
	"animd/pkg/types"
)

const (
	demoIdleTimeout = 15 * time.Second
	demoPollEvery   = 100 * time.Millisecond
)

// runDemo connects as a headless renderer, announces count targets and
// drives the full appear/hover/click/zoom/disappear scenario against them.
func runDemo(cfg *Config, count int) error {
	client := NewClient(cfg.Addr)

	wsURL, err := wsURLFor(cfg.Addr)
	if err != nil {
		return err
	}
	conn, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	if err != nil {
		return fmt.Errorf("dial %s: %w", wsURL, err)
	}
	defer conn.Close()

	targets := make([]string, count)
	for i := range targets {
		targets[i] = fmt.Sprintf("demo-%d", i)
	}
	if err := conn.WriteJSON(wsbridge.Envelope{Type: wsbridge.TypeTargets, Targets: targets}); err != nil {
		return err
	}

	// Count frames in the background so the summary can prove the wire works.
	var applied, clearedN atomic.Int64
	readerDone := make(chan struct{})
	go func() {
		defer close(readerDone)
		for {
			var env wsbridge.Envelope
			if err := conn.ReadJSON(&env); err != nil {
				return
			}
			switch env.Type {
			case wsbridge.TypeHello:
				debug("[animctl] connected as %s", env.ConnID)
			case wsbridge.TypeApply:
				applied.Add(1)
				if env.Effect != nil {
					debug("[animctl] apply %s on %s", env.Effect.Kind, env.Target)
				}
			case wsbridge.TypeClear:
				clearedN.Add(1)
			case wsbridge.TypeMode:
				debug("[animctl] mode frame: cinematic=%v", env.Mode.Cinematic)
			}
		}
	}()

	if envBool("ANIMCTL_DEMO_CINEMATIC", false) {
		if _, err := client.SetCinematic(true); err != nil {
			return err
		}
		defer func() { _, _ = client.SetCinematic(false) }()
		info("[animctl] cinematic mode on for this run")
	}

	info("[animctl] appearing %d targets", count)
	if _, err := client.PlanAppear(types.PlanAppearRequest{Targets: targets, QualityOrdered: true}); err != nil {
		return err
	}
	if err := waitIdle(client); err != nil {
		return err
	}

	info("[animctl] hover and click on %s", targets[0])
	if _, err := client.Hover(targets[0], true); err != nil {
		return err
	}
	time.Sleep(300 * time.Millisecond)
	if _, err := client.Hover(targets[0], false); err != nil {
		return err
	}
	if _, err := client.Click(targets[0]); err != nil {
		return err
	}
	if err := waitIdle(client); err != nil {
		return err
	}

	half := count / 2
	info("[animctl] zoom transition: %d out, %d in", count-half, half)
	if _, err := client.PlanZoom(types.ZoomTransitionRequest{
		Visible:   targets[:half],
		Hidden:    targets[half:],
		ZoomLevel: 17,
	}); err != nil {
		return err
	}
	if err := waitIdle(client); err != nil {
		return err
	}

	info("[animctl] disappearing the rest")
	if _, err := client.PlanDisappear(types.PlanDisappearRequest{Targets: targets[:half], Order: "random"}); err != nil {
		return err
	}
	if err := waitIdle(client); err != nil {
		return err
	}

	_ = conn.WriteJSON(wsbridge.Envelope{Type: wsbridge.TypeBye})
	_ = conn.Close()
	<-readerDone

	info("[animctl] demo done: %d applies, %d clears", applied.Load(), clearedN.Load())
	return nil
}

// waitIdle polls status until the queue drains and nothing is running.
func waitIdle(c *Client) error {
	deadline := time.Now().Add(demoIdleTimeout)
	for {
		st, err := c.Status()
		if err != nil {
			return err
		}
		if st.QueueLength == 0 && st.ActiveAnimations == 0 {
			return nil
		}
		if time.Now().After(deadline) {
			return fmt.Errorf("scheduler not idle after %s (queue=%d active=%d)",
				demoIdleTimeout, st.QueueLength, st.ActiveAnimations)
		}
		time.Sleep(demoPollEvery)
	}
}

// wsURLFor converts the daemon base URL into its websocket endpoint.
func wsURLFor(base string) (string, error) {
	u, err := url.Parse(base)
	if err != nil {
		return "", err
	}
	switch u.Scheme {
	case "http":
		u.Scheme = "ws"
	case "https":
		u.Scheme = "wss"
	case "ws", "wss":
	default:
		return "", fmt.Errorf("unsupported scheme %q in %s", u.Scheme, base)
	}
	u.Path = strings.TrimRight(u.Path, "/") + "/ws"
	return u.String(), nil
}
