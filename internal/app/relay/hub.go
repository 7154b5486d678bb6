/*
Package relay contains the core logic of the collaboration relay.

This file defines the Hub, the single owner of all relay state. Connection lifecycle changes and
inbound events are funnelled through one channel and processed one at a time by Run, so every
handler sees the registry and the broadcast groups in a consistent state without locking.
*/
package relay

import (
	"encoding/json"
	"errors"
	"sync"

	"github.com/rs/zerolog"

	"codesync/internal/pkg/logx"
)

const eventChannelBuffer = 1024

type hubEventKind int

const (
	kindConnect hubEventKind = iota
	kindDisconnect
	kindMessage
)

// hubEvent is one unit of work for the hub loop.
type hubEvent struct {
	kind     hubEventKind
	client   *Client
	envelope Envelope
}

// eventHandler processes the data of one inbound event sent by c.
type eventHandler func(c *Client, data json.RawMessage) error

// Hub struct owns the registry, the live connections and the per-room broadcast groups.
type Hub struct {
	// registry maps joined connections to their user records.
	registry *Registry

	// clients holds every live connection, joined or not, keyed by connection id.
	clients map[string]*Client

	// groups holds the broadcast group of each room, keyed by room id then connection id.
	groups map[string]map[string]*Client

	// handlers is the dispatch table for inbound events.
	handlers map[EventName]eventHandler

	// events serializes connects, disconnects and inbound messages in arrival order.
	events chan hubEvent

	// used to signal the Run loop to stop.
	stopChan chan struct{}
	stopOnce sync.Once

	// closed once Run has returned.
	done chan struct{}

	// structured logger with hub context.
	logger zerolog.Logger
}

// NewHub constructs a Hub. Call Run in its own goroutine to start processing.
func NewHub() *Hub {
	h := &Hub{
		registry: NewRegistry(),
		clients:  make(map[string]*Client),
		groups:   make(map[string]map[string]*Client),
		events:   make(chan hubEvent, eventChannelBuffer),
		stopChan: make(chan struct{}),
		done:     make(chan struct{}),
		logger:   logx.Logger().With().Str("component", "Hub").Logger(),
	}

	h.handlers = h.routes()

	return h
}

// Run is the hub's event loop. It returns after Shutdown is called.
func (h *Hub) Run() {
	defer close(h.done)

	h.logger.Info().Msg("Hub loop started.")

	for {
		select {
		case ev := <-h.events:
			h.process(ev)

		case <-h.stopChan:
			h.closeAll()
			h.logger.Info().Msg("Hub loop stopped.")
			return
		}
	}
}

// Shutdown stops the Run loop, closes every client's send queue and waits for the loop to exit.
func (h *Hub) Shutdown() {
	h.stopOnce.Do(func() {
		h.logger.Info().Msg("Shutting down Hub...")
		close(h.stopChan)
	})
	<-h.done
}

// Register queues a newly upgraded connection. It reports false if the hub is shutting down.
func (h *Hub) Register(c *Client) bool {
	return h.submit(hubEvent{kind: kindConnect, client: c})
}

// Unregister queues the disconnect of a connection.
func (h *Hub) Unregister(c *Client) {
	h.submit(hubEvent{kind: kindDisconnect, client: c})
}

// Dispatch queues an inbound event received from c.
func (h *Hub) Dispatch(c *Client, env Envelope) {
	h.submit(hubEvent{kind: kindMessage, client: c, envelope: env})
}

func (h *Hub) submit(ev hubEvent) bool {
	select {
	case <-h.stopChan:
		return false
	default:
	}

	select {
	case h.events <- ev:
		return true
	case <-h.stopChan:
		return false
	}
}

// process runs one hub event to completion. A panicking handler is logged and does not stop the loop.
func (h *Hub) process(ev hubEvent) {
	defer func() {
		if rec := recover(); rec != nil {
			h.logger.Error().
				Interface("panic", rec).
				Str("connection_id", ev.client.id).
				Msg("Recovered from panic while processing hub event.")
		}
	}()

	switch ev.kind {
	case kindConnect:
		h.connect(ev.client)
	case kindDisconnect:
		h.disconnect(ev.client)
	case kindMessage:
		h.route(ev.client, ev.envelope)
	}
}

func (h *Hub) connect(c *Client) {
	h.clients[c.id] = c
	h.logger.Info().
		Str("connection_id", c.id).
		Int("total_connections", len(h.clients)).
		Msg("Socket connected.")
}

// disconnect runs the disconnecting path: the room is told first, then the record and the
// group membership are removed, and finally the client's send queue is closed.
func (h *Hub) disconnect(c *Client) {
	if current, ok := h.clients[c.id]; !ok || current != c {
		h.logger.Debug().Str("connection_id", c.id).Msg("Ignoring disconnect for unknown connection.")
		return
	}

	h.handleDisconnecting(c)

	delete(h.clients, c.id)
	close(c.send)

	h.logger.Info().
		Str("connection_id", c.id).
		Int("total_connections", len(h.clients)).
		Msg("Socket disconnected.")
}

// route looks up the handler for env and runs it. Errors are logged and never surfaced to clients.
func (h *Hub) route(c *Client, env Envelope) {
	if current, ok := h.clients[c.id]; !ok || current != c {
		h.logger.Debug().
			Str("connection_id", c.id).
			Str("event", string(env.Event)).
			Msg("Dropping event from a connection that is no longer registered.")
		return
	}

	handler, ok := h.handlers[env.Event]
	if !ok {
		h.logRouteError(c, env.Event, ErrUnknownEvent)
		return
	}

	if err := handler(c, env.Data); err != nil {
		h.logRouteError(c, env.Event, err)
	}
}

func (h *Hub) logRouteError(c *Client, event EventName, err error) {
	level := zerolog.ErrorLevel
	switch {
	case errors.Is(err, ErrSenderNotJoined),
		errors.Is(err, ErrUnknownTarget),
		errors.Is(err, ErrUnknownEvent),
		errors.Is(err, ErrInvalidPayload),
		errors.Is(err, ErrAlreadyJoined):
		level = zerolog.WarnLevel
	}

	h.logger.WithLevel(level).
		Err(err).
		Str("connection_id", c.id).
		Str("event", string(event)).
		Msg("Event dropped.")
}

// joinGroup adds c to the broadcast group of roomID.
func (h *Hub) joinGroup(roomID string, c *Client) {
	group, ok := h.groups[roomID]
	if !ok {
		group = make(map[string]*Client)
		h.groups[roomID] = group
	}
	group[c.id] = c
}

// leaveGroup removes connID from the broadcast group of roomID, dropping empty groups.
func (h *Hub) leaveGroup(roomID, connID string) {
	group, ok := h.groups[roomID]
	if !ok {
		return
	}

	delete(group, connID)
	if len(group) == 0 {
		delete(h.groups, roomID)
		h.logger.Debug().Str("room_id", roomID).Msg("Room is empty.")
	}
}

// encode builds the wire frame for an outbound event.
func (h *Hub) encode(event EventName, data any) ([]byte, error) {
	env, err := NewEnvelope(event, data)
	if err != nil {
		return nil, err
	}
	return json.Marshal(env)
}

// emit sends one event to the live connection connID.
func (h *Hub) emit(connID string, event EventName, data any) error {
	c, ok := h.clients[connID]
	if !ok {
		return ErrUnknownTarget
	}

	frame, err := h.encode(event, data)
	if err != nil {
		return err
	}

	c.enqueue(frame)
	return nil
}

// broadcast sends one event to every member of roomID's broadcast group except exceptID.
// It returns the number of recipients the frame was queued for.
func (h *Hub) broadcast(roomID, exceptID string, event EventName, data any) (int, error) {
	frame, err := h.encode(event, data)
	if err != nil {
		return 0, err
	}

	sent := 0
	for id, c := range h.groups[roomID] {
		if id == exceptID {
			continue
		}
		if c.enqueue(frame) {
			sent++
		}
	}

	h.logger.Debug().
		Str("room_id", roomID).
		Str("event", string(event)).
		Int("recipients", sent).
		Msg("Broadcast.")

	return sent, nil
}

// closeAll closes every client's send queue so their write pumps terminate.
func (h *Hub) closeAll() {
	for id, c := range h.clients {
		close(c.send)
		delete(h.clients, id)
	}
	h.groups = make(map[string]map[string]*Client)
	h.registry = NewRegistry()
}
