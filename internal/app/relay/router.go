package relay

import (
	"encoding/json"
	"fmt"

	"codesync/internal/app/user"
	"codesync/internal/pkg/randx"
)

// routes builds the dispatch table of inbound events.
func (h *Hub) routes() map[EventName]eventHandler {
	return map[EventName]eventHandler{
		EventJoinRequest: h.handleJoinRequest,

		EventSyncFileStructure: h.handleSyncFileStructure,
		EventDirectoryCreated:  relayAs[DirectoryCreatedPayload](h, EventDirectoryCreated),
		EventDirectoryUpdated:  relayAs[DirectoryUpdatedPayload](h, EventDirectoryUpdated),
		EventDirectoryRenamed:  relayAs[DirectoryRenamedPayload](h, EventDirectoryRenamed),
		EventDirectoryDeleted:  relayAs[DirectoryDeletedPayload](h, EventDirectoryDeleted),
		EventFileCreated:       relayAs[FileCreatedPayload](h, EventFileCreated),
		EventFileUpdated:       relayAs[FileUpdatedPayload](h, EventFileUpdated),
		EventFileRenamed:       relayAs[FileRenamedPayload](h, EventFileRenamed),
		EventFileDeleted:       relayAs[FileDeletedPayload](h, EventFileDeleted),

		EventUserOffline: h.statusHandler(EventUserOffline, user.StatusOffline),
		EventUserOnline:  h.statusHandler(EventUserOnline, user.StatusOnline),

		EventSendMessage: relayAs[MessagePayload](h, EventReceiveMessage),

		EventTypingStart: h.handleTypingStart,
		EventTypingPause: h.handleTypingPause,

		EventRequestDrawing: h.handleRequestDrawing,
		EventSyncDrawing:    h.handleSyncDrawing,
		EventDrawingUpdate:  relayAs[DrawingUpdatePayload](h, EventDrawingUpdate),
	}
}

// relayAs returns a handler that decodes the payload as P and rebroadcasts it under
// outbound to the rest of the sender's room. Fields outside P are not forwarded.
func relayAs[P any](h *Hub, outbound EventName) eventHandler {
	return func(c *Client, data json.RawMessage) error {
		var payload P
		if err := decodeData(outbound, data, &payload); err != nil {
			return err
		}

		roomID, err := h.senderRoom(c)
		if err != nil {
			return err
		}

		_, err = h.broadcast(roomID, c.id, outbound, payload)
		return err
	}
}

// senderRoom resolves the room of the sending connection.
func (h *Hub) senderRoom(c *Client) (string, error) {
	roomID, ok := h.registry.RoomOf(c.id)
	if !ok {
		return "", ErrSenderNotJoined
	}
	return roomID, nil
}

// handleJoinRequest admits a connection into a room unless its username is already taken there.
// The registry record is inserted before the connection joins the room's broadcast group.
func (h *Hub) handleJoinRequest(c *Client, data json.RawMessage) error {
	var req JoinRequestPayload
	if err := decodeData(EventJoinRequest, data, &req); err != nil {
		return err
	}

	if _, joined := h.registry.UserOf(c.id); joined {
		return ErrAlreadyJoined
	}

	if h.registry.UsernameTaken(req.RoomID, req.Username) {
		h.logger.Info().
			Str("connection_id", c.id).
			Str("room_id", req.RoomID).
			Str("username", req.Username).
			Msg("Join rejected: username already exists in room.")
		return h.emit(c.id, EventUsernameExists, nil)
	}

	newUser := user.New(c.id, req.RoomID, req.Username)
	if err := h.registry.Insert(newUser); err != nil {
		return err
	}
	h.joinGroup(req.RoomID, c)

	if _, err := h.broadcast(req.RoomID, c.id, EventUserJoined, UserPayload{User: newUser}); err != nil {
		return err
	}

	users := h.registry.UsersInRoom(req.RoomID)

	h.logger.Info().
		Str("connection_id", c.id).
		Str("room_id", req.RoomID).
		Str("username", req.Username).
		Int("room_size", len(users)).
		Msg("User joined room.")

	return h.emit(c.id, EventJoinAccepted, JoinAcceptedPayload{User: newUser, Users: users})
}

// handleDisconnecting tells the rest of the room that c is leaving, then forgets c.
// It is a no-op for connections that never joined.
func (h *Hub) handleDisconnecting(c *Client) {
	u, ok := h.registry.UserOf(c.id)
	if !ok {
		return
	}

	if _, err := h.broadcast(u.RoomID, c.id, EventUserDisconnected, UserPayload{User: u}); err != nil {
		h.logRouteError(c, EventUserDisconnected, err)
	}

	h.registry.Remove(c.id)
	h.leaveGroup(u.RoomID, c.id)

	h.logger.Info().
		Str("connection_id", c.id).
		Str("room_id", u.RoomID).
		Str("username", u.Username).
		Msg("User left room.")
}

// handleSyncFileStructure forwards the sender's file tree to one named connection.
func (h *Hub) handleSyncFileStructure(c *Client, data json.RawMessage) error {
	var payload SyncFileStructurePayload
	if err := decodeData(EventSyncFileStructure, data, &payload); err != nil {
		return err
	}

	target := payload.SocketID
	payload.SocketID = ""

	return h.unicast(target, EventSyncFileStructure, payload)
}

// unicast sends an event to the connection a client named in its payload.
func (h *Hub) unicast(target string, event EventName, data any) error {
	if !randx.IsValidConnectionID(target) {
		return fmt.Errorf("%w: malformed connection id %q", ErrUnknownTarget, target)
	}

	if err := h.emit(target, event, data); err != nil {
		return fmt.Errorf("%w: %q", err, target)
	}
	return nil
}

// statusHandler returns the handler for offline/online. The status of the connection named in the
// payload is updated first; the event then goes to the rest of that connection's room.
func (h *Hub) statusHandler(event EventName, status user.Status) eventHandler {
	return func(c *Client, data json.RawMessage) error {
		var payload SocketPayload
		if err := decodeData(event, data, &payload); err != nil {
			return err
		}

		u, ok := h.registry.UserOf(payload.SocketID)
		if !ok {
			return fmt.Errorf("%w: %q", ErrUnknownTarget, payload.SocketID)
		}

		u.Status = status
		h.registry.Replace(payload.SocketID, u)

		_, err := h.broadcast(u.RoomID, c.id, event, payload)
		return err
	}
}

// handleTypingStart records the typing flag and caret, then broadcasts the whole updated record.
func (h *Hub) handleTypingStart(c *Client, data json.RawMessage) error {
	var payload TypingPayload
	if err := decodeData(EventTypingStart, data, &payload); err != nil {
		return err
	}

	return h.updateTyping(c, EventTypingStart, func(u *user.User) {
		u.Typing = true
		u.CursorPosition = payload.CursorPosition
	})
}

// handleTypingPause clears the typing flag; the caret position is left as last reported.
func (h *Hub) handleTypingPause(c *Client, _ json.RawMessage) error {
	return h.updateTyping(c, EventTypingPause, func(u *user.User) {
		u.Typing = false
	})
}

func (h *Hub) updateTyping(c *Client, event EventName, mutate func(*user.User)) error {
	u, ok := h.registry.UserOf(c.id)
	if !ok {
		return ErrSenderNotJoined
	}

	mutate(&u)
	h.registry.Replace(c.id, u)

	_, err := h.broadcast(u.RoomID, c.id, event, UserPayload{User: u})
	return err
}

// handleRequestDrawing asks the rest of the room for the current drawing, naming the requester.
func (h *Hub) handleRequestDrawing(c *Client, _ json.RawMessage) error {
	roomID, err := h.senderRoom(c)
	if err != nil {
		return err
	}

	_, err = h.broadcast(roomID, c.id, EventRequestDrawing, SocketPayload{SocketID: c.id})
	return err
}

// handleSyncDrawing answers a drawing request by sending the drawing to the requester only.
// A connection cannot address itself.
func (h *Hub) handleSyncDrawing(c *Client, data json.RawMessage) error {
	var payload SyncDrawingPayload
	if err := decodeData(EventSyncDrawing, data, &payload); err != nil {
		return err
	}

	target := payload.SocketID
	if target == c.id {
		return nil
	}
	payload.SocketID = ""

	return h.unicast(target, EventSyncDrawing, payload)
}
