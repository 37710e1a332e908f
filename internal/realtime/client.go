package realtime

import (
	"sync/atomic"
	"time"

	"github.com/goccy/go-json"
	"github.com/gorilla/websocket"

	"github.com/light-bringer/catalog-service/internal/logging"
)

const (
	// writeWait bounds how long a single frame write may take.
	writeWait = 10 * time.Second

	// pongWait is how long we wait for a pong before declaring the peer dead.
	pongWait = 60 * time.Second

	// pingPeriod must be shorter than pongWait.
	pingPeriod = (pongWait * 9) / 10

	// maxMessageSize limits inbound frames. Clients only consume; anything
	// beyond a control frame is suspicious.
	maxMessageSize = 512

	// sendBufferSize is the per-connection outbound queue. A client that
	// falls this far behind is dropped by the hub.
	sendBufferSize = 256
)

var clientIDCounter uint64

// Client is one websocket subscriber. The hub pushes messages into send;
// writePump drains them onto the wire in order, so every connection observes
// events in the order the hub broadcast them.
type Client struct {
	id   uint64
	hub  *Hub
	conn *websocket.Conn
	send chan Message
}

// NewClient wraps an upgraded connection. The caller must Register it with
// the hub and then call Start.
func NewClient(hub *Hub, conn *websocket.Conn) *Client {
	return &Client{
		id:   atomic.AddUint64(&clientIDCounter, 1),
		hub:  hub,
		conn: conn,
		send: make(chan Message, sendBufferSize),
	}
}

// ID returns the client's monotonic connection id.
func (c *Client) ID() uint64 {
	return c.id
}

// Start launches the read and write pumps and returns immediately.
func (c *Client) Start() {
	go c.writePump()
	go c.readPump()
}

// readPump discards inbound data frames and services control frames. It is
// also the unregister path: when the read side fails, the client is removed
// from the hub and the connection closed.
func (c *Client) readPump() {
	defer func() {
		c.hub.Unregister(c)
		c.conn.Close()
	}()

	c.conn.SetReadLimit(maxMessageSize)
	_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				logging.Debug().Uint64("client_id", c.id).Err(err).Msg("websocket read failed")
			}
			return
		}
	}
}

// writePump serializes queued messages onto the wire and keeps the
// connection alive with pings. A closed send channel means the hub dropped
// us; send the peer a close frame and stop.
func (c *Client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case msg, ok := <-c.send:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				_ = c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}

			payload, err := json.Marshal(msg)
			if err != nil {
				logging.Error().Uint64("client_id", c.id).Err(err).Msg("failed to encode realtime message")
				continue
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, payload); err != nil {
				return
			}

		case <-ticker.C:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
