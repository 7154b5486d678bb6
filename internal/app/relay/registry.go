package relay

import (
	"slices"

	"codesync/internal/app/user"
)

// Registry maps every joined connection id to its user record.
// It is not safe for concurrent use; the hub's event loop owns it.
type Registry struct {
	// users stores the records keyed by connection id.
	users map[string]user.User

	// order keeps connection ids in insertion order for UsersInRoom.
	order []string
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		users: make(map[string]user.User),
	}
}

// Len returns the number of joined connections across all rooms.
func (r *Registry) Len() int {
	return len(r.users)
}

// UsersInRoom returns every user whose room is roomID, in insertion order.
// The result is never nil.
func (r *Registry) UsersInRoom(roomID string) []user.User {
	users := make([]user.User, 0)
	for _, id := range r.order {
		if u := r.users[id]; u.RoomID == roomID {
			users = append(users, u)
		}
	}
	return users
}

// UsernameTaken reports whether username is already used in roomID.
func (r *Registry) UsernameTaken(roomID, username string) bool {
	for _, u := range r.users {
		if u.RoomID == roomID && u.Username == username {
			return true
		}
	}
	return false
}

// RoomOf returns the room of the given connection.
func (r *Registry) RoomOf(connID string) (string, bool) {
	u, ok := r.users[connID]
	if !ok {
		return "", false
	}
	return u.RoomID, true
}

// UserOf returns a copy of the record of the given connection.
func (r *Registry) UserOf(connID string) (user.User, bool) {
	u, ok := r.users[connID]
	return u, ok
}

// Insert adds a new record keyed by u.SocketID.
// Username uniqueness is the caller's responsibility.
func (r *Registry) Insert(u user.User) error {
	if _, ok := r.users[u.SocketID]; ok {
		return ErrAlreadyJoined
	}

	r.users[u.SocketID] = u
	r.order = append(r.order, u.SocketID)
	return nil
}

// Replace overwrites the record of connID with u. The stored room and
// connection id are kept, so a replacement can never move a user between rooms.
// It reports false when connID is unknown.
func (r *Registry) Replace(connID string, u user.User) bool {
	current, ok := r.users[connID]
	if !ok {
		return false
	}

	u.SocketID = current.SocketID
	u.RoomID = current.RoomID
	r.users[connID] = u
	return true
}

// Remove deletes the record of connID and returns it.
func (r *Registry) Remove(connID string) (user.User, bool) {
	u, ok := r.users[connID]
	if !ok {
		return user.User{}, false
	}

	delete(r.users, connID)
	if i := slices.Index(r.order, connID); i >= 0 {
		r.order = slices.Delete(r.order, i, i+1)
	}
	return u, true
}
