// Package wsbridge fans scheduler commands out to browser renderer clients
// over WebSocket and tracks which marker targets those clients manage. It
// implements the scheduler's Renderer and EventPublisher contracts: apply and
// clear frames go only to the connections managing the target, lifecycle
// events go to everyone.
package wsbridge

import (
	"sync"

	"github.com/rs/zerolog"

	"animd/internal/sched"
	"animd/pkg/types"
)

// sendBuffer bounds each connection's outbound queue. Frames beyond it are
// dropped rather than blocking a scheduler tick on a slow client.
const sendBuffer = 64

// client is one connected renderer. send is never closed; writers exit via
// quit so concurrent broadcasts cannot hit a closed channel.
type client struct {
	id        string
	send      chan Envelope
	quit      chan struct{}
	closeOnce sync.Once
	targets   map[string]struct{}
}

func (c *client) shutdown() {
	c.closeOnce.Do(func() { close(c.quit) })
}

// Bridge is the connection hub. All methods are safe for concurrent use and
// never block: outbound frames ride buffered channels drained by per-client
// writer goroutines.
type Bridge struct {
	log zerolog.Logger

	mu      sync.RWMutex
	clients map[string]*client
	// byTarget indexes which connections manage each marker.
	byTarget map[string]map[string]struct{}
	closed   bool
}

// New constructs an empty Bridge.
func New(log zerolog.Logger) *Bridge {
	return &Bridge{
		log:      log,
		clients:  make(map[string]*client),
		byTarget: make(map[string]map[string]struct{}),
	}
}

// Apply implements sched.Renderer. It reports false when no connected client
// manages the target, which makes the scheduler skip the animation.
func (b *Bridge) Apply(targetID string, effect sched.Effect) bool {
	env := Envelope{
		Type:   TypeApply,
		Target: targetID,
		Effect: &EffectPayload{
			Kind:       string(effect.Kind),
			DurationMs: effect.Duration.Milliseconds(),
			Easing:     effect.Easing,
			Curve:      effect.Curve,
			Speed:      effect.Speed,
			Quality:    effect.Quality,
		},
	}
	return b.sendToManagers(targetID, env)
}

// Clear implements sched.Renderer.
func (b *Bridge) Clear(targetID string) {
	b.sendToManagers(targetID, Envelope{Type: TypeClear, Target: targetID})
}

// LocateAll implements sched.Renderer: every target some client manages.
func (b *Bridge) LocateAll() []string {
	b.mu.RLock()
	defer b.mu.RUnlock()
	out := make([]string, 0, len(b.byTarget))
	for target := range b.byTarget {
		out = append(out, target)
	}
	return out
}

// TargetCount reports how many distinct targets are currently managed.
func (b *Bridge) TargetCount() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.byTarget)
}

// ClientCount reports how many renderer clients are connected.
func (b *Bridge) ClientCount() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.clients)
}

// Publish implements sched.EventPublisher. Mode changes become dedicated mode
// frames so renderers can adjust playback; everything else is relayed as a
// diagnostic event frame.
func (b *Bridge) Publish(e sched.Event) {
	if e.Name == sched.EventMode {
		mode := types.DisplayMode{}
		if v, ok := e.Fields["cinematic"].(bool); ok {
			mode.Cinematic = v
		}
		if v, ok := e.Fields["speed"].(float64); ok {
			mode.SpeedMultiplier = v
		}
		if v, ok := e.Fields["quality"].(string); ok {
			mode.DefaultQuality = v
		}
		b.broadcast(Envelope{Type: TypeMode, Mode: &mode})
		return
	}
	b.broadcast(Envelope{Type: TypeEvent, Event: e.Name, ID: e.ID, Target: e.TargetID, Fields: e.Fields})
}

// sendToManagers queues env for every connection managing targetID and
// reports whether at least one exists.
func (b *Bridge) sendToManagers(targetID string, env Envelope) bool {
	b.mu.RLock()
	conns := b.byTarget[targetID]
	receivers := make([]*client, 0, len(conns))
	for id := range conns {
		if c, ok := b.clients[id]; ok {
			receivers = append(receivers, c)
		}
	}
	b.mu.RUnlock()
	if len(receivers) == 0 {
		return false
	}
	for _, c := range receivers {
		select {
		case c.send <- env:
		default:
			b.log.Warn().Str("conn", c.id).Str("type", env.Type).Msg("send buffer full, dropping frame")
		}
	}
	return true
}

// broadcast queues env for every connection.
func (b *Bridge) broadcast(env Envelope) {
	b.mu.RLock()
	receivers := make([]*client, 0, len(b.clients))
	for _, c := range b.clients {
		receivers = append(receivers, c)
	}
	b.mu.RUnlock()
	for _, c := range receivers {
		select {
		case c.send <- env:
		default:
			b.log.Warn().Str("conn", c.id).Str("type", env.Type).Msg("send buffer full, dropping frame")
		}
	}
}

// register adds a new client and returns it.
func (b *Bridge) register(id string) (*client, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.closed {
		return nil, false
	}
	c := &client{
		id:      id,
		send:    make(chan Envelope, sendBuffer),
		quit:    make(chan struct{}),
		targets: make(map[string]struct{}),
	}
	b.clients[id] = c
	return c, true
}

// unregister drops the client and unindexes its targets.
func (b *Bridge) unregister(c *client) {
	b.mu.Lock()
	if _, ok := b.clients[c.id]; !ok {
		b.mu.Unlock()
		c.shutdown()
		return
	}
	delete(b.clients, c.id)
	for target := range c.targets {
		b.dropTargetLocked(target, c.id)
	}
	b.mu.Unlock()
	c.shutdown()
}

// setTargets replaces the client's managed-marker set from an announcement.
func (b *Bridge) setTargets(c *client, targets []string) {
	next := make(map[string]struct{}, len(targets))
	for _, t := range targets {
		if t != "" {
			next[t] = struct{}{}
		}
	}
	b.mu.Lock()
	for target := range c.targets {
		if _, keep := next[target]; !keep {
			b.dropTargetLocked(target, c.id)
		}
	}
	for target := range next {
		if _, had := c.targets[target]; !had {
			if b.byTarget[target] == nil {
				b.byTarget[target] = make(map[string]struct{})
			}
			b.byTarget[target][c.id] = struct{}{}
		}
	}
	c.targets = next
	count := len(b.byTarget)
	b.mu.Unlock()
	b.log.Debug().Str("conn", c.id).Int("targets", len(next)).Int("total", count).Msg("targets announced")
}

func (b *Bridge) dropTargetLocked(target, connID string) {
	set, ok := b.byTarget[target]
	if !ok {
		return
	}
	delete(set, connID)
	if len(set) == 0 {
		delete(b.byTarget, target)
	}
}

// Close disconnects every client and rejects new registrations.
func (b *Bridge) Close() {
	b.mu.Lock()
	if b.closed {
		b.mu.Unlock()
		return
	}
	b.closed = true
	clients := make([]*client, 0, len(b.clients))
	for _, c := range b.clients {
		clients = append(clients, c)
	}
	b.clients = make(map[string]*client)
	b.byTarget = make(map[string]map[string]struct{})
	b.mu.Unlock()
	for _, c := range clients {
		c.shutdown()
	}
}
