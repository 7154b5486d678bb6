/*
Package randx provides identifier generation for the relay.

Connection ids are standard UUID v4 strings; they are opaque to clients, which only echo them
back to address unicast events.
*/
package randx

import (
	"github.com/google/uuid"
)

// ConnectionID generates a new UUID v4 string identifying one WebSocket connection.
func ConnectionID() string {
	return uuid.New().String()
}

// IsValidConnectionID checks if the given string has the shape of an id produced by ConnectionID.
func IsValidConnectionID(id string) bool {
	parsed, err := uuid.Parse(id)
	if err != nil {
		return false
	}
	return parsed.Version() == 4 && parsed.String() == id
}
