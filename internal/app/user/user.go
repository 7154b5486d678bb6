/*
Package user contains the data structures describing a participant of a collaboration room.

It defines the User record the relay keeps for every joined connection, and the
presence Status values reported by clients. Fields use JSON tags matching the
wire format of the WebSocket events.
*/
package user

// Status is the presence state a client reports for itself.
type Status string

const (
	// StatusOnline marks a participant whose editor tab is active.
	StatusOnline Status = "online"

	// StatusOffline marks a participant that is connected but away.
	StatusOffline Status = "offline"
)

// User represents one joined connection within a room.
type User struct {
	// Username is the display name, unique within the room at join time.
	Username string `json:"username"`

	// RoomID is the room the connection joined. It never changes afterwards.
	RoomID string `json:"roomId"`

	// Status is the last reported presence state.
	Status Status `json:"status"`

	// CursorPosition is the last reported caret offset.
	CursorPosition int `json:"cursorPosition"`

	// Typing is the last reported typing state.
	Typing bool `json:"typing"`

	// SocketID is the connection id and the registry key.
	SocketID string `json:"socketId"`

	// CurrentFile is the id of the file the user has open, or nil.
	CurrentFile *string `json:"currentFile"`
}

// New builds the record for a connection that has just been accepted into a room.
func New(socketID, roomID, username string) User {
	return User{
		Username:       username,
		RoomID:         roomID,
		Status:         StatusOnline,
		CursorPosition: 0,
		Typing:         false,
		SocketID:       socketID,
		CurrentFile:    nil,
	}
}
