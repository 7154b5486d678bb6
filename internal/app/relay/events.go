/*
Package relay contains the core logic of the collaboration relay: the connection registry,
the per-connection read/write pumps, and the hub that routes events between room members.

This file defines the event names exchanged over the WebSocket and the payload structures
carried by each of them.
*/
package relay

import (
	"encoding/json"

	"codesync/internal/app/user"
)

// EventName identifies the kind of an event on the wire.
type EventName string

// Membership events.
const (
	EventJoinRequest      EventName = "join-request"
	EventUsernameExists   EventName = "username-exists"
	EventUserJoined       EventName = "user-joined"
	EventJoinAccepted     EventName = "join-accepted"
	EventUserDisconnected EventName = "user-disconnected"
)

// File system events.
const (
	EventSyncFileStructure EventName = "sync-file-structure"
	EventDirectoryCreated  EventName = "directory-created"
	EventDirectoryUpdated  EventName = "directory-updated"
	EventDirectoryRenamed  EventName = "directory-renamed"
	EventDirectoryDeleted  EventName = "directory-deleted"
	EventFileCreated       EventName = "file-created"
	EventFileUpdated       EventName = "file-updated"
	EventFileRenamed       EventName = "file-renamed"
	EventFileDeleted       EventName = "file-deleted"
)

// Presence, chat and cursor events.
const (
	EventUserOffline    EventName = "offline"
	EventUserOnline     EventName = "online"
	EventSendMessage    EventName = "send-message"
	EventReceiveMessage EventName = "receive-message"
	EventTypingStart    EventName = "typing-start"
	EventTypingPause    EventName = "typing-pause"
)

// Drawing events.
const (
	EventRequestDrawing EventName = "request-drawing"
	EventSyncDrawing    EventName = "sync-drawing"
	EventDrawingUpdate  EventName = "drawing-update"
)

// JoinRequestPayload is sent by a client asking to enter a room.
type JoinRequestPayload struct {
	RoomID   string `json:"roomId"`
	Username string `json:"username"`
}

// UserPayload carries a single user record (user-joined, user-disconnected, typing-*).
type UserPayload struct {
	User user.User `json:"user"`
}

// JoinAcceptedPayload is sent to a client once it has joined.
type JoinAcceptedPayload struct {
	User  user.User   `json:"user"`
	Users []user.User `json:"users"`
}

// SocketPayload names a connection (offline, online, request-drawing).
type SocketPayload struct {
	SocketID string `json:"socketId"`
}

// SyncFileStructurePayload is the inbound form of sync-file-structure.
// SocketID names the receiving connection and is not forwarded.
type SyncFileStructurePayload struct {
	FileStructure json.RawMessage `json:"fileStructure"`
	OpenFiles     json.RawMessage `json:"openFiles"`
	ActiveFile    json.RawMessage `json:"activeFile"`
	SocketID      string          `json:"socketId,omitempty"`
}

// DirectoryCreatedPayload relays a new directory below ParentDirID.
type DirectoryCreatedPayload struct {
	ParentDirID  json.RawMessage `json:"parentDirId"`
	NewDirectory json.RawMessage `json:"newDirectory"`
}

// DirectoryUpdatedPayload relays the new children of a directory.
type DirectoryUpdatedPayload struct {
	DirID    json.RawMessage `json:"dirId"`
	Children json.RawMessage `json:"children"`
}

// DirectoryRenamedPayload relays a directory rename.
type DirectoryRenamedPayload struct {
	DirID   json.RawMessage `json:"dirId"`
	NewName json.RawMessage `json:"newName"`
}

// DirectoryDeletedPayload relays a directory removal.
type DirectoryDeletedPayload struct {
	DirID json.RawMessage `json:"dirId"`
}

// FileCreatedPayload relays a new file below ParentDirID.
type FileCreatedPayload struct {
	ParentDirID json.RawMessage `json:"parentDirId"`
	NewFile     json.RawMessage `json:"newFile"`
}

// FileUpdatedPayload relays the full new content of a file.
type FileUpdatedPayload struct {
	FileID     json.RawMessage `json:"fileId"`
	NewContent json.RawMessage `json:"newContent"`
}

// FileRenamedPayload relays a file rename.
type FileRenamedPayload struct {
	FileID  json.RawMessage `json:"fileId"`
	NewName json.RawMessage `json:"newName"`
}

// FileDeletedPayload relays a file removal.
type FileDeletedPayload struct {
	FileID json.RawMessage `json:"fileId"`
}

// MessagePayload carries a chat message (send-message in, receive-message out).
type MessagePayload struct {
	Message json.RawMessage `json:"message"`
}

// TypingPayload is the inbound form of typing-start.
type TypingPayload struct {
	CursorPosition int `json:"cursorPosition"`
}

// SyncDrawingPayload is the inbound form of sync-drawing.
// SocketID names the receiving connection and is not forwarded.
type SyncDrawingPayload struct {
	DrawingData json.RawMessage `json:"drawingData"`
	SocketID    string          `json:"socketId,omitempty"`
}

// DrawingUpdatePayload relays a whiteboard snapshot.
type DrawingUpdatePayload struct {
	Snapshot json.RawMessage `json:"snapshot"`
}
