package websocket

import (
	"encoding/json"
	"time"

	"codeberg.org/colegiospro/server/internal/logger"
	"codeberg.org/colegiospro/server/internal/relay"
	"github.com/gorilla/websocket"
	"golang.org/x/time/rate"
)

// creates a new websocket client connection
func NewClient(id, sessionID, role, ipAddress string, conn *websocket.Conn) *Client {
	return &Client{
		ID:        id,
		SessionID: sessionID,
		Role:      role,
		IPAddress: ipAddress,
		conn:      conn,
		send:      make(chan []byte, sendBufferSize),
		limiter:   rate.NewLimiter(messagesPerSecond, messageBurst),
	}
}

// reads frames from the websocket connection and hands them to handle;
// onClose runs once the peer is gone
func (c *Client) ReadPump(handle MessageHandler, onClose func()) {
	defer func() {
		if onClose != nil {
			onClose()
		}

		c.Close()
		c.conn.Close() //nolint:errcheck,gosec // G104: defer cleanup
	}()

	c.conn.SetReadLimit(maxMessageSize)
	c.conn.SetReadDeadline(time.Now().Add(pongWait)) //nolint:errcheck,gosec // G104: websocket setup
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(pongWait)) //nolint:errcheck,gosec // G104: pong handler
		return nil
	})

	for {
		_, data, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				logger.Warn("websocket error",
					"client_id", c.ID,
					"session_id", c.SessionID,
					"error", err,
				)
			}

			break
		}

		if !c.Allow() {
			logger.Warn("websocket message dropped, rate limit exceeded",
				"client_id", c.ID,
				"session_id", c.SessionID,
				"ip", c.IPAddress,
			)
			continue
		}

		handle(data)
	}
}

// writes queued frames to the websocket connection and keeps it alive with pings
func (c *Client) WritePump() {
	ticker := time.NewTicker(pingPeriod)

	defer func() {
		ticker.Stop()
		c.conn.Close() //nolint:errcheck,gosec // G104: defer cleanup
	}()

	for {
		select {
		case message, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait)) //nolint:errcheck,gosec // G104: websocket timing

			if !ok {
				// relay closed the channel
				c.conn.WriteMessage(websocket.CloseMessage, []byte{}) //nolint:errcheck,gosec // G104: close message
				return
			}

			// one event per frame, clients parse each frame as a single JSON object
			if err := c.conn.WriteMessage(websocket.TextMessage, message); err != nil {
				return
			}

		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait)) //nolint:errcheck,gosec // G104: websocket ping timing

			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

// queues an event for the client; a full buffer closes the client
func (c *Client) Send(event any) (err error) {
	// recover from panic if channel is closed
	defer func() {
		if r := recover(); r != nil {
			err = relay.ErrConnectionClosed
		}
	}()

	if c.IsClosed() {
		return relay.ErrConnectionClosed
	}

	data, err := json.Marshal(event)
	if err != nil {
		return err
	}

	select {
	case c.send <- data:
		return nil
	default:
		logger.Warn("websocket send buffer full, closing client",
			"client_id", c.ID,
			"session_id", c.SessionID,
		)
		c.Close()
		return relay.ErrConnectionClosed
	}
}

// closes the client connection; safe to call more than once
func (c *Client) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.closed {
		c.closed = true
		close(c.send)
	}
}

// checks if the client is closed
func (c *Client) IsClosed() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return c.closed
}

// reports whether another inbound message fits the rate limit
func (c *Client) Allow() bool {
	if c.limiter == nil {
		return true
	}

	return c.limiter.Allow()
}

// sends a close frame with the given code and drops the connection
func CloseWithCode(conn *websocket.Conn, code int, reason string) {
	deadline := time.Now().Add(writeWait)
	msg := websocket.FormatCloseMessage(code, reason)

	conn.WriteControl(websocket.CloseMessage, msg, deadline) //nolint:errcheck,gosec // G104: best effort close
	conn.Close()                                             //nolint:errcheck,gosec // G104: cleanup
}
