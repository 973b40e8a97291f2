package wsbridge

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
)

// Connection tuning.
const (
	writeWait    = 10 * time.Second
	idleTimeout  = 60 * time.Second
	pingInterval = 30 * time.Second
	maxFrameSize = 1 << 20
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// Renderers are embedded in map apps served from other origins.
	CheckOrigin: func(r *http.Request) bool { return true },
}

// ServeWS upgrades the request to a renderer connection and runs it until
// the client says bye, goes idle, or errors out.
func (b *Bridge) ServeWS(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		b.log.Error().Err(err).Msg("websocket upgrade failed")
		return
	}
	connID := uuid.NewString()
	c, ok := b.register(connID)
	if !ok {
		_ = conn.Close()
		return
	}
	b.log.Info().Str("conn", connID).Str("remote", r.RemoteAddr).Msg("renderer connected")

	writerDone := make(chan struct{})
	go b.writeLoop(conn, c, writerDone)
	c.send <- Envelope{Type: TypeHello, ConnID: connID}

	b.readLoop(conn, c)

	b.unregister(c)
	<-writerDone
	_ = conn.Close()
	b.log.Info().Str("conn", connID).Msg("renderer disconnected")
}

// readLoop consumes client frames: target announcements, byes, pongs.
func (b *Bridge) readLoop(conn *websocket.Conn, c *client) {
	conn.SetReadLimit(maxFrameSize)
	_ = conn.SetReadDeadline(time.Now().Add(idleTimeout))
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(idleTimeout))
	})
	for {
		messageType, message, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure, websocket.CloseAbnormalClosure) {
				b.log.Warn().Str("conn", c.id).Err(err).Msg("websocket read error")
			}
			return
		}
		_ = conn.SetReadDeadline(time.Now().Add(idleTimeout))
		if messageType != websocket.TextMessage {
			continue
		}
		var env Envelope
		if err := json.Unmarshal(message, &env); err != nil {
			b.log.Warn().Str("conn", c.id).Err(err).Msg("invalid frame from renderer")
			continue
		}
		switch env.Type {
		case TypeTargets:
			b.setTargets(c, env.Targets)
		case TypeBye:
			return
		default:
			b.log.Debug().Str("conn", c.id).Str("type", env.Type).Msg("ignoring unknown frame type")
		}
	}
}

// writeLoop drains the client's queue and keeps the connection alive with
// pings. It exits when the client is unregistered or a write fails.
func (b *Bridge) writeLoop(conn *websocket.Conn, c *client, done chan struct{}) {
	defer close(done)
	ticker := time.NewTicker(pingInterval)
	defer ticker.Stop()
	for {
		select {
		case env := <-c.send:
			_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteJSON(env); err != nil {
				b.log.Debug().Str("conn", c.id).Err(err).Msg("websocket write failed")
				return
			}
		case <-ticker.C:
			if err := conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(writeWait)); err != nil {
				return
			}
		case <-c.quit:
			_ = conn.WriteControl(websocket.CloseMessage,
				websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""), time.Now().Add(writeWait))
			return
		}
	}
}
