/*
Package relay contains the core logic of the collaboration relay.

This file defines the Client struct, representing an active WebSocket connection. It manages the
connection's message loops (ReadPump and WritePump) and hands every decoded event to the Hub.
*/
package relay

import (
	"time"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"

	"codesync/internal/pkg/logx"
)

const (
	// timeout duration for writing to the WebSocket connection.
	writeWait = 10 * time.Second

	// maximum time allowed for the server to wait for a Pong message from the client.
	pongWait = 60 * time.Second

	// frequency at which the server sends a Ping message.
	pingPeriod = (pongWait * 9) / 10

	// maximum allowed size (in bytes) of a frame sent by the client.
	// Drawing snapshots and whole file trees travel in a single frame.
	maxMessageSize = 100_000_000

	// capacity of the per-client outbound queue.
	sendBufferSize = 256
)

// Client struct represents an active WebSocket connection.
type Client struct {
	// the hub routing this client's events.
	hub *Hub

	// underlying WebSocket connection object.
	conn *websocket.Conn

	// id is the connection id, stable for the lifetime of the connection.
	id string

	// a buffered channel used to queue frames waiting to be sent to the client.
	// Only the hub loop sends on or closes it.
	send chan []byte

	// structured logger with connection context.
	logger zerolog.Logger
}

// NewClient constructs and returns a new Client instance.
func NewClient(hub *Hub, wsConn *websocket.Conn, connID string) *Client {
	clientLogger := logx.Logger().With().
		Str("component", "Client").
		Str("connection_id", connID).
		Logger()

	return &Client{
		hub:    hub,
		conn:   wsConn,
		id:     connID,
		send:   make(chan []byte, sendBufferSize),
		logger: clientLogger,
	}
}

// ID returns the connection id.
func (c *Client) ID() string {
	return c.id
}

// ReadPump handles reading frames from the WebSocket connection.
// It handles heartbeats (Pong), envelope parsing, and starts the disconnect path when the connection ends.
func (c *Client) ReadPump() {
	defer c.cleanupOnDisconnect()

	c.conn.SetReadLimit(maxMessageSize)

	if err := c.conn.SetReadDeadline(time.Now().Add(pongWait)); err != nil {
		c.logger.Error().Err(err).Msg("Failed to set read deadline")
		return
	}

	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		_, frame, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				c.logger.Warn().Err(err).Msg("Socket error")
			}
			break
		}

		c.processInboundFrame(frame)
	}
}

// cleanupOnDisconnect notifies the hub and closes the connection once ReadPump terminates.
func (c *Client) cleanupOnDisconnect() {
	c.logger.Debug().Msg("Client connection cleanup starting.")

	c.hub.Unregister(c)

	if err := c.conn.Close(); err != nil {
		c.logger.Debug().Err(err).Msg("Client connection close error")
	}
}

// processInboundFrame decodes a raw frame and forwards it to the hub.
func (c *Client) processInboundFrame(frame []byte) {
	env, err := ParseEnvelope(frame)
	if err != nil {
		c.logger.Warn().Err(err).
			Int("frame_bytes", len(frame)).
			Msg("Client sent invalid frame")
		return
	}

	c.hub.Dispatch(c, env)
}

// WritePump handles writing frames from the Client.send channel to the WebSocket connection.
func (c *Client) WritePump() {
	ticker := time.NewTicker(pingPeriod)

	defer func() {
		ticker.Stop()

		if err := c.conn.Close(); err != nil {
			c.logger.Debug().Err(err).Msg("Client connection close error in WritePump")
		}
	}()

	for {
		select {
		case frame, ok := <-c.send:
			if !c.writeQueuedFrame(frame, ok) {
				return
			}

		case <-ticker.C:
			if !c.writePingMessage() {
				return
			}
		}
	}
}

// writeQueuedFrame writes a frame pulled from the send channel to the WebSocket.
// Returns true if the WritePump loop should continue, false if it should terminate.
func (c *Client) writeQueuedFrame(frame []byte, ok bool) bool {
	if err := c.conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
		c.logger.Error().Err(err).Msg("Failed to set write deadline")
		return false
	}

	if !ok {
		if err := c.conn.WriteMessage(websocket.CloseMessage, []byte{}); err != nil {
			c.logger.Debug().Err(err).Msg("Error writing close message")
		}
		return false
	}

	if err := c.conn.WriteMessage(websocket.TextMessage, frame); err != nil {
		c.logger.Warn().Err(err).Msg("Error writing message")
		return false
	}

	return true
}

// writePingMessage sends a periodic WebSocket Ping message to maintain the connection heartbeat.
// Returns false if the WritePump loop should terminate due to write failure.
func (c *Client) writePingMessage() bool {
	if err := c.conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
		c.logger.Error().Err(err).Msg("Failed to set write deadline on ping")
		return false
	}

	if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
		c.logger.Debug().Err(err).Msg("Error writing ping")
		return false
	}

	return true
}

// enqueue attempts a non-blocking push onto the send channel. Delivery is best-effort:
// a full queue drops the frame. Must only be called from the hub loop.
func (c *Client) enqueue(frame []byte) bool {
	select {
	case c.send <- frame:
		return true
	default:
		c.logger.Warn().Int("queue_len", len(c.send)).Msg("Client send channel full, dropping message")
		return false
	}
}
